package Controllers

import (
	"fmt"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type ReportHandler struct {
	DB     *gorm.DB
	Ledger *Ledger.Ledger
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{DB: db, Ledger: Ledger.NewLedger(db)}
}

// ExportDailyEntries writes the entries of a date range to an xlsx sheet.
// GET /api/reports/daily-entries?from=2024-01-01&to=2024-01-31
func (h *ReportHandler) ExportDailyEntries(c *fiber.Ctx) error {
	query := h.DB.Preload("Site").Preload("Vehicle").Preload("Employee")
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}

	var entries []Models.DailyEntry
	if err := query.Order("date ASC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Daily Entries"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "Date", "Site", "Vehicle", "Operator",
		"Opening RPM", "Closing RPM", "Diesel (L)", "Meters", "Holes", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, entry := range entries {
		values := []interface{}{
			entry.Code,
			entry.Date.Format("2006-01-02"),
			entry.Site.Name,
			entry.Vehicle.PlateNo,
			entry.Employee.Name,
			entry.VehicleOpeningRPM,
			entry.VehicleClosingRPM,
			entry.DieselUsed,
			entry.MetersDrilled,
			entry.HolesDrilled,
			entry.Notes,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="daily_entries.xlsx"`)
	return c.Send(buffer.Bytes())
}

// ExportServiceAlerts writes the current alert list to an xlsx sheet.
// GET /api/reports/service-alerts
func (h *ReportHandler) ExportServiceAlerts(c *fiber.Ctx) error {
	alerts, summary, err := h.Ledger.ListServiceAlerts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Service Alerts"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Kind", "Name", "Status", "Priority",
		"Current Usage", "Next Threshold", "Overdue By", "Remaining"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	for row, alert := range alerts {
		values := []interface{}{
			alert.Kind,
			alert.Name,
			alert.Status,
			alert.Priority,
			alert.CurrentUsage,
			alert.NextThreshold,
			alert.OverdueAmount,
			alert.Remaining,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	summaryRow := len(alerts) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	f.SetCellValue(sheet, cell,
		fmt.Sprintf("High: %d  Medium: %d  Low: %d", summary.High, summary.Medium, summary.Low))

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="service_alerts.xlsx"`)
	return c.Send(buffer.Bytes())
}
