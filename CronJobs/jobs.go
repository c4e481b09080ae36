package CronJobs

import (
	"fmt"
	"log"
	"os"
	"time"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/robfig/cron/v3"
)

// MaintenanceChecker runs the scheduled service-due check and stock reconciliation
type MaintenanceChecker struct {
	cronScheduler  *cron.Cron
	ledger         *Ledger.Ledger
	runImmediately bool
	jobID          cron.EntryID
}

// NewMaintenanceChecker creates a new maintenance checker with the given configuration
func NewMaintenanceChecker(runImmediately bool) *MaintenanceChecker {
	return &MaintenanceChecker{
		cronScheduler:  cron.New(cron.WithSeconds()),
		ledger:         Ledger.NewLedger(Models.DB),
		runImmediately: runImmediately,
	}
}

// Start initiates the maintenance checker cron job
func (m *MaintenanceChecker) Start() error {
	var err error
	m.jobID, err = m.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled daily maintenance check")
		m.runCheck()
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	m.cronScheduler.Start()
	fmt.Println("Maintenance check scheduler started - will run daily at 1:00 AM")

	if m.runImmediately {
		fmt.Println("Running initial maintenance check")
		m.runCheck()
	}

	return nil
}

// Stop terminates the maintenance checker
func (m *MaintenanceChecker) Stop() {
	if m.cronScheduler != nil {
		m.cronScheduler.Stop()
		log.Println("Maintenance check scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the maintenance checker
// Format: "0 0 1 * * *" = At 01:00:00 AM every day
func (m *MaintenanceChecker) UpdateSchedule(schedule string) error {
	m.cronScheduler.Remove(m.jobID)

	var err error
	m.jobID, err = m.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled maintenance check")
		m.runCheck()
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Maintenance check schedule updated to: %s\n", schedule)
	return nil
}

// RunManualCheck executes a manual maintenance check
func (m *MaintenanceChecker) RunManualCheck() {
	log.Println("Running manual maintenance check")
	m.runCheck()
}

// runCheck evaluates service alerts and reconciles cached stock levels
func (m *MaintenanceChecker) runCheck() {
	m.setupRunLog()

	alerts, summary, err := m.ledger.ListServiceAlerts()
	if err != nil {
		log.Printf("Error evaluating service alerts: %v\n", err)
	} else if len(alerts) == 0 {
		log.Println("No equipment due for service")
	} else {
		log.Printf("Service alerts: %d total (%d high, %d medium, %d low)\n",
			len(alerts), summary.High, summary.Medium, summary.Low)
		for _, alert := range alerts {
			log.Printf("  [%s] %s %s: %s at threshold %.0f, current %.0f\n",
				alert.Priority, alert.Kind, alert.Name, alert.Status,
				alert.NextThreshold, alert.CurrentUsage)
		}
	}

	discrepancies, err := m.ledger.ReconcileStockLevels()
	if err != nil {
		log.Printf("Error reconciling stock levels: %v\n", err)
	} else if len(discrepancies) == 0 {
		log.Println("Stock levels consistent with transaction ledger")
	} else {
		log.Printf("Repaired %d stock level discrepancies\n", len(discrepancies))
		for _, d := range discrepancies {
			log.Printf("  item type %d: cached %.2f, ledger %.2f\n",
				d.ItemTypeID, d.CachedStock, d.LedgerStock)
		}
	}
}

// setupRunLog creates a log file specifically for this run
func (m *MaintenanceChecker) setupRunLog() {
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFile, err := os.OpenFile(fmt.Sprintf("logs/maintenance_check_%s.log", timestamp),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening run log file: %v\n", err)
		return
	}

	// We don't close the file because the log package will continue using it
	log.SetOutput(logFile)
}
