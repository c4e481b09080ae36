package Ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DrillOps/Models"
)

func TestEvaluateScheduleNothingDue(t *testing.T) {
	schedule := []float64{500, 1000, 2000}

	assert.Nil(t, EvaluateSchedule(100, schedule, equipmentAlertThresholds))
	assert.Nil(t, EvaluateSchedule(0, schedule, equipmentAlertThresholds))
	assert.Nil(t, EvaluateSchedule(300, nil, equipmentAlertThresholds))
}

func TestEvaluateScheduleUpcoming(t *testing.T) {
	schedule := []float64{500, 1000, 2000}

	alert := EvaluateSchedule(950, schedule, equipmentAlertThresholds)
	require.NotNil(t, alert)
	assert.Equal(t, AlertStatusUpcoming, alert.Status)
	assert.Equal(t, PriorityLow, alert.Priority)
	assert.Equal(t, 1000.0, alert.NextThreshold)
	assert.Equal(t, 50.0, alert.Remaining)
}

func TestEvaluateScheduleOverdue(t *testing.T) {
	schedule := []float64{500, 1000, 2000}

	// Crossing 1000 by 50 is overdue against 1000 even though 2000 is still
	// far off; only a completed service clears it.
	alert := EvaluateSchedule(1050, schedule, equipmentAlertThresholds)
	require.NotNil(t, alert)
	assert.Equal(t, AlertStatusOverdue, alert.Status)
	assert.Equal(t, PriorityLow, alert.Priority)
	assert.Equal(t, 1000.0, alert.NextThreshold)
	assert.Equal(t, 50.0, alert.OverdueAmount)
}

func TestEvaluateSchedulePastFinalThreshold(t *testing.T) {
	schedule := []float64{500, 1000, 2000}

	// Past the last threshold the counter is overdue against it for good.
	alert := EvaluateSchedule(2600, schedule, equipmentAlertThresholds)
	require.NotNil(t, alert)
	assert.Equal(t, AlertStatusOverdue, alert.Status)
	assert.Equal(t, PriorityMedium, alert.Priority)
	assert.Equal(t, 2000.0, alert.NextThreshold)
	assert.Equal(t, 600.0, alert.OverdueAmount)
}

func TestEvaluateSchedulePriorityBands(t *testing.T) {
	schedule := []float64{1000}

	low := EvaluateSchedule(1400, schedule, equipmentAlertThresholds)
	require.NotNil(t, low)
	assert.Equal(t, PriorityLow, low.Priority)

	medium := EvaluateSchedule(1700, schedule, equipmentAlertThresholds)
	require.NotNil(t, medium)
	assert.Equal(t, PriorityMedium, medium.Priority)

	high := EvaluateSchedule(2200, schedule, equipmentAlertThresholds)
	require.NotNil(t, high)
	assert.Equal(t, PriorityHigh, high.Priority)
}

func TestEvaluateScheduleUnsortedInput(t *testing.T) {
	// Schedules come from user-entered JSON; order must not matter.
	alert := EvaluateSchedule(950, []float64{2000, 500, 1000}, equipmentAlertThresholds)
	require.NotNil(t, alert)
	assert.Equal(t, 1000.0, alert.NextThreshold)
}

func TestListServiceAlerts(t *testing.T) {
	l := newTestLedger(t)

	// One healthy vehicle, one overdue, one upcoming compressor and one
	// heavily overdue item instance.
	seedVehicle(t, l.DB, "KA-35-1111", 200, []float64{1000})
	overdueVehicle := seedVehicle(t, l.DB, "KA-35-2222", 1600, []float64{1000})
	upcomingCompressor := seedCompressor(t, l.DB, "CMP-01", 980, []float64{1000})

	hammer := seedItemType(t, l.DB, "DTH Hammer", 1)
	overdueItem := seedItemInstance(t, l.DB, hammer.ID, "HMR-01", Models.ItemStatusFitted, 1200, []float64{500})

	alerts, summary, err := l.ListServiceAlerts()
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	// Highest priority first. The item crossed 500 by 700, past the high band
	// for items; the vehicle crossed 1000 by 600, medium band for equipment.
	assert.Equal(t, Models.ServiceKindItem, alerts[0].Kind)
	assert.Equal(t, overdueItem.ID, alerts[0].EntityID)
	assert.Equal(t, PriorityHigh, alerts[0].Priority)

	assert.Equal(t, Models.ServiceKindVehicle, alerts[1].Kind)
	assert.Equal(t, overdueVehicle.ID, alerts[1].EntityID)
	assert.Equal(t, PriorityMedium, alerts[1].Priority)

	assert.Equal(t, Models.ServiceKindCompressor, alerts[2].Kind)
	assert.Equal(t, upcomingCompressor.ID, alerts[2].EntityID)
	assert.Equal(t, AlertStatusUpcoming, alerts[2].Status)

	assert.Equal(t, 1, summary.High)
	assert.Equal(t, 1, summary.Medium)
	assert.Equal(t, 1, summary.Low)
	assert.Equal(t, 1, summary.ByKind[Models.ServiceKindVehicle])
	assert.Equal(t, 1, summary.ByKind[Models.ServiceKindCompressor])
	assert.Equal(t, 1, summary.ByKind[Models.ServiceKindItem])
}

func TestAdvanceSchedule(t *testing.T) {
	assert.Equal(t, []float64{2000}, AdvanceSchedule([]float64{500, 1000, 2000}, 1050))
	assert.Equal(t, []float64{500, 1000, 2000}, AdvanceSchedule([]float64{2000, 500, 1000}, 100))
	assert.Nil(t, AdvanceSchedule([]float64{500, 1000}, 2600))
	assert.Nil(t, AdvanceSchedule(nil, 100))
}

func TestListServiceAlertsEmptyFleet(t *testing.T) {
	l := newTestLedger(t)

	alerts, summary, err := l.ListServiceAlerts()
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Zero(t, summary.High+summary.Medium+summary.Low)
}
