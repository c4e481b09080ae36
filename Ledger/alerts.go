package Ledger

import (
	"fmt"
	"sort"

	"DrillOps/Models"
)

const (
	AlertStatusOverdue  = "overdue"
	AlertStatusUpcoming = "upcoming"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// AlertThresholds are the per-kind classification constants. Vehicles and
// compressors rack up counter units much faster than individual spares, so
// their windows are wider.
type AlertThresholds struct {
	HighOverdue   float64
	MediumOverdue float64
	NearWindow    float64
}

var (
	equipmentAlertThresholds = AlertThresholds{HighOverdue: 1000, MediumOverdue: 500, NearWindow: 100}
	itemAlertThresholds      = AlertThresholds{HighOverdue: 500, MediumOverdue: 200, NearWindow: 50}
)

type ServiceAlert struct {
	Kind          string  `json:"kind"` // vehicle, compressor, item
	EntityID      uint    `json:"entity_id"`
	Name          string  `json:"name"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	CurrentUsage  float64 `json:"current_usage"`
	NextThreshold float64 `json:"next_threshold"`
	OverdueAmount float64 `json:"overdue_amount,omitempty"`
	Remaining     float64 `json:"remaining,omitempty"`
}

type AlertSummary struct {
	High   int            `json:"high"`
	Medium int            `json:"medium"`
	Low    int            `json:"low"`
	ByKind map[string]int `json:"by_type"`
}

// EvaluateSchedule classifies one counter against one schedule. It returns
// nil when no service is due or near. A threshold the counter has crossed
// keeps alerting until a completed service retires it via AdvanceSchedule;
// only the upcoming window of the next threshold takes precedence over that.
// Pure: callers may invoke it repeatedly and concurrently.
func EvaluateSchedule(currentUsage float64, schedule []float64, limits AlertThresholds) *ServiceAlert {
	if len(schedule) == 0 {
		return nil
	}

	thresholds := make([]float64, len(schedule))
	copy(thresholds, schedule)
	sort.Float64s(thresholds)

	// next is the first threshold still ahead of the counter; crossed is the
	// last one behind it. Completing a service rewrites the schedule, so a
	// crossed threshold means the service at it was never done.
	var next, crossed *float64
	for i := range thresholds {
		if thresholds[i] > currentUsage {
			next = &thresholds[i]
			break
		}
		crossed = &thresholds[i]
	}

	if next != nil {
		if remaining := *next - currentUsage; remaining <= limits.NearWindow {
			return &ServiceAlert{
				Status:        AlertStatusUpcoming,
				Priority:      PriorityLow,
				CurrentUsage:  currentUsage,
				NextThreshold: *next,
				Remaining:     remaining,
			}
		}
	}

	if crossed != nil {
		overdue := currentUsage - *crossed
		priority := PriorityLow
		if overdue > limits.HighOverdue {
			priority = PriorityHigh
		} else if overdue > limits.MediumOverdue {
			priority = PriorityMedium
		}
		return &ServiceAlert{
			Status:        AlertStatusOverdue,
			Priority:      priority,
			CurrentUsage:  currentUsage,
			NextThreshold: *crossed,
			OverdueAmount: overdue,
		}
	}

	return nil
}

// AdvanceSchedule returns the schedule with every threshold the counter has
// already crossed dropped. Completing a service applies this, which is what
// retires the overdue alert for the crossed thresholds.
func AdvanceSchedule(schedule []float64, currentUsage float64) []float64 {
	var remaining []float64
	for _, t := range schedule {
		if t > currentUsage {
			remaining = append(remaining, t)
		}
	}
	sort.Float64s(remaining)
	return remaining
}

// ListServiceAlerts evaluates every vehicle, compressor and item instance
// against its schedule. Read-only.
func (l *Ledger) ListServiceAlerts() ([]ServiceAlert, AlertSummary, error) {
	summary := AlertSummary{ByKind: map[string]int{}}
	var alerts []ServiceAlert

	var vehicles []Models.Vehicle
	if err := l.DB.Find(&vehicles).Error; err != nil {
		return nil, summary, dbError("Failed to load vehicles", err)
	}
	for _, v := range vehicles {
		if alert := EvaluateSchedule(v.RPM, v.ServiceSchedule, equipmentAlertThresholds); alert != nil {
			alert.Kind = Models.ServiceKindVehicle
			alert.EntityID = v.ID
			alert.Name = fmt.Sprintf("%s (%s)", v.Name, v.PlateNo)
			alerts = append(alerts, *alert)
		}
	}

	var compressors []Models.Compressor
	if err := l.DB.Find(&compressors).Error; err != nil {
		return nil, summary, dbError("Failed to load compressors", err)
	}
	for _, c := range compressors {
		if alert := EvaluateSchedule(c.RPM, c.ServiceSchedule, equipmentAlertThresholds); alert != nil {
			alert.Kind = Models.ServiceKindCompressor
			alert.EntityID = c.ID
			alert.Name = fmt.Sprintf("%s (%s)", c.Name, c.SerialNo)
			alerts = append(alerts, *alert)
		}
	}

	var instances []Models.ItemInstance
	if err := l.DB.Preload("ItemType").Find(&instances).Error; err != nil {
		return nil, summary, dbError("Failed to load item instances", err)
	}
	for _, i := range instances {
		if alert := EvaluateSchedule(i.CurrentRPM, i.ServiceSchedule, itemAlertThresholds); alert != nil {
			alert.Kind = Models.ServiceKindItem
			alert.EntityID = i.ID
			alert.Name = fmt.Sprintf("%s %s", i.ItemType.Name, i.Label)
			alerts = append(alerts, *alert)
		}
	}

	sort.SliceStable(alerts, func(a, b int) bool {
		if pr := priorityRank(alerts[a].Priority) - priorityRank(alerts[b].Priority); pr != 0 {
			return pr > 0
		}
		return alerts[a].OverdueAmount > alerts[b].OverdueAmount
	})

	for _, alert := range alerts {
		switch alert.Priority {
		case PriorityHigh:
			summary.High++
		case PriorityMedium:
			summary.Medium++
		default:
			summary.Low++
		}
		summary.ByKind[alert.Kind]++
	}

	return alerts, summary, nil
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}
