package Ledger

import (
	"fmt"
	"testing"
	"time"

	"DrillOps/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitDailyEntry(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 100, nil)

	hammer := seedItemType(t, l.DB, "DTH Hammer", 2)
	instance := seedItemInstance(t, l.DB, hammer.ID, "HMR-01", Models.ItemStatusInStock, 0, nil)

	entry, outcomes, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:              date(2026, time.June, 10),
		SiteID:            site.ID,
		VehicleID:         vehicle.ID,
		VehicleOpeningRPM: 100,
		VehicleClosingRPM: 140,
		EmployeeID:        operator.ID,
		FittedItems: []ItemActionRequest{
			{ItemInstanceID: instance.ID, MeterIncrement: 10, RPMIncrement: 5},
		},
	}, "tester")
	require.NoError(t, err)
	require.NotNil(t, entry)

	assert.Equal(t, "DE-001-26", entry.Code)
	assert.Equal(t, "tester", entry.CreatedBy)

	// Vehicle counter advanced by the closing-minus-opening delta.
	var reloadedVehicle Models.Vehicle
	require.NoError(t, l.DB.First(&reloadedVehicle, vehicle.ID).Error)
	assert.Equal(t, 140.0, reloadedVehicle.RPM)

	// Instance fitted to the entry's vehicle with its increments applied.
	var reloadedInstance Models.ItemInstance
	require.NoError(t, l.DB.First(&reloadedInstance, instance.ID).Error)
	assert.Equal(t, Models.ItemStatusFitted, reloadedInstance.Status)
	require.NotNil(t, reloadedInstance.FittedVehicleID)
	assert.Equal(t, vehicle.ID, *reloadedInstance.FittedVehicleID)
	assert.Equal(t, 10.0, reloadedInstance.CurrentMeter)
	assert.Equal(t, 5.0, reloadedInstance.CurrentRPM)

	// One OUT movement for the fitting, and the cached stock level follows.
	var movements []Models.StockTransaction
	require.NoError(t, l.DB.Where("item_type_id = ?", hammer.ID).Find(&movements).Error)
	require.Len(t, movements, 1)
	assert.Equal(t, Models.StockDirectionOut, movements[0].Direction)
	assert.Equal(t, Models.StockRefFitting, movements[0].ReferenceType)
	assert.Equal(t, entry.ID, movements[0].ReferenceID)

	var reloadedType Models.ItemType
	require.NoError(t, l.DB.First(&reloadedType, hammer.ID).Error)
	assert.Equal(t, 1.0, reloadedType.Stock)

	// One join record for the primary operator.
	var joins []Models.DailyEntryEmployee
	require.NoError(t, l.DB.Where("daily_entry_id = ?", entry.ID).Find(&joins).Error)
	require.Len(t, joins, 1)
	assert.Equal(t, operator.ID, joins[0].EmployeeID)

	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Applied)
	assert.Equal(t, ItemActionFit, outcomes[0].Action)
}

func TestSubmitDailyEntryMissingVehicleLeavesNothing(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")

	_, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:       date(2026, time.June, 10),
		SiteID:     site.ID,
		VehicleID:  999,
		EmployeeID: operator.ID,
	}, "tester")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var count int64
	require.NoError(t, l.DB.Model(&Models.DailyEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitDailyEntryMissingEmployeeRollsBack(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 100, nil)

	_, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:              date(2026, time.June, 10),
		SiteID:            site.ID,
		VehicleID:         vehicle.ID,
		VehicleOpeningRPM: 100,
		VehicleClosingRPM: 140,
		EmployeeID:        42,
	}, "tester")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	// The entry row created before the participant check must not survive,
	// and the counter must not have moved.
	var count int64
	require.NoError(t, l.DB.Model(&Models.DailyEntry{}).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded Models.Vehicle
	require.NoError(t, l.DB.First(&reloaded, vehicle.ID).Error)
	assert.Equal(t, 100.0, reloaded.RPM)
}

func TestSubmitDailyEntryWithCompressorAndParticipants(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	helper := seedEmployee(t, l.DB, "Sandeep")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 100, nil)
	compressor := seedCompressor(t, l.DB, "CMP-01", 50, nil)

	entry, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:                 date(2026, time.June, 10),
		SiteID:               site.ID,
		VehicleID:            vehicle.ID,
		CompressorID:         &compressor.ID,
		VehicleOpeningRPM:    100,
		VehicleClosingRPM:    140,
		CompressorOpeningRPM: 50,
		CompressorClosingRPM: 62,
		EmployeeID:           operator.ID,
		// The primary operator repeated in the list must not double up.
		AdditionalEmployeeIDs: []uint{helper.ID, operator.ID},
	}, "tester")
	require.NoError(t, err)

	var reloadedCompressor Models.Compressor
	require.NoError(t, l.DB.First(&reloadedCompressor, compressor.ID).Error)
	assert.Equal(t, 62.0, reloadedCompressor.RPM)

	var joins []Models.DailyEntryEmployee
	require.NoError(t, l.DB.Where("daily_entry_id = ?", entry.ID).Find(&joins).Error)
	assert.Len(t, joins, 2)
}

func TestSubmitDailyEntryBackwardReadingIsClamped(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 500, nil)

	_, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:              date(2026, time.June, 10),
		SiteID:            site.ID,
		VehicleID:         vehicle.ID,
		VehicleOpeningRPM: 300,
		VehicleClosingRPM: 250,
		EmployeeID:        operator.ID,
	}, "tester")
	require.NoError(t, err)

	var reloaded Models.Vehicle
	require.NoError(t, l.DB.First(&reloaded, vehicle.ID).Error)
	assert.Equal(t, 500.0, reloaded.RPM)
}

func TestSubmitDailyEntrySkipsAlreadyFittedInstance(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 100, nil)
	other := seedVehicle(t, l.DB, "KA-35-0002", 0, nil)

	hammer := seedItemType(t, l.DB, "DTH Hammer", 1)
	fitted := seedItemInstance(t, l.DB, hammer.ID, "HMR-01", Models.ItemStatusFitted, 0, nil)
	require.NoError(t, l.DB.Model(&fitted).Update("fitted_vehicle_id", other.ID).Error)

	entry, outcomes, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:              date(2026, time.June, 10),
		SiteID:            site.ID,
		VehicleID:         vehicle.ID,
		VehicleOpeningRPM: 100,
		VehicleClosingRPM: 110,
		EmployeeID:        operator.ID,
		FittedItems: []ItemActionRequest{
			{ItemInstanceID: fitted.ID},
		},
	}, "tester")
	require.NoError(t, err)

	// The guard violation is a skip; the entry itself still commits.
	require.NotNil(t, entry)
	require.Len(t, outcomes, 1)
	assert.False(t, outcomes[0].Applied)
	assert.NotEmpty(t, outcomes[0].Reason)

	// No stock movement for the skipped fit.
	var count int64
	require.NoError(t, l.DB.Model(&Models.StockTransaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitDailyEntryRemoveItem(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 100, nil)

	hammer := seedItemType(t, l.DB, "DTH Hammer", 0)
	fitted := seedItemInstance(t, l.DB, hammer.ID, "HMR-01", Models.ItemStatusFitted, 100, nil)
	require.NoError(t, l.DB.Model(&fitted).Update("fitted_vehicle_id", vehicle.ID).Error)

	_, outcomes, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:              date(2026, time.June, 10),
		SiteID:            site.ID,
		VehicleID:         vehicle.ID,
		VehicleOpeningRPM: 100,
		VehicleClosingRPM: 110,
		EmployeeID:        operator.ID,
		RemovedItems: []ItemActionRequest{
			{ItemInstanceID: fitted.ID, RPMIncrement: 10},
		},
	}, "tester")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.True(t, outcomes[0].Applied)

	// Back in stock with the final day's usage still counted, and an IN
	// movement returning it to the pool.
	var reloaded Models.ItemInstance
	require.NoError(t, l.DB.First(&reloaded, fitted.ID).Error)
	assert.Equal(t, Models.ItemStatusInStock, reloaded.Status)
	assert.Nil(t, reloaded.FittedVehicleID)
	assert.NotNil(t, reloaded.RemovedDate)
	assert.Equal(t, 110.0, reloaded.CurrentRPM)

	var movement Models.StockTransaction
	require.NoError(t, l.DB.Where("item_type_id = ?", hammer.ID).First(&movement).Error)
	assert.Equal(t, Models.StockDirectionIn, movement.Direction)
	assert.Equal(t, Models.StockRefRemoval, movement.ReferenceType)

	var reloadedType Models.ItemType
	require.NoError(t, l.DB.First(&reloadedType, hammer.ID).Error)
	assert.Equal(t, 1.0, reloadedType.Stock)
}

func TestSubmitDailyEntryServiceDoneAdvancesSchedule(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 980, []float64{1000, 2000})

	_, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:               date(2026, time.June, 10),
		SiteID:             site.ID,
		VehicleID:          vehicle.ID,
		VehicleOpeningRPM:  980,
		VehicleClosingRPM:  1020,
		EmployeeID:         operator.ID,
		VehicleServiceDone: true,
	}, "tester")
	require.NoError(t, err)

	// Serviced at 1020: the 1000 threshold is retired, 2000 remains, and the
	// record pins the counter at the updated value.
	var reloaded Models.Vehicle
	require.NoError(t, l.DB.First(&reloaded, vehicle.ID).Error)
	assert.Equal(t, 1020.0, reloaded.RPM)
	assert.Equal(t, []float64{2000}, reloaded.ServiceSchedule)

	var record Models.ServiceRecord
	require.NoError(t, l.DB.Where("vehicle_id = ?", vehicle.ID).First(&record).Error)
	assert.Equal(t, Models.ServiceKindVehicle, record.Kind)
	assert.Equal(t, 1020.0, record.Reading)
}

func TestSubmitDailyEntryCallerSuppliedCode(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 0, nil)

	entry, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Code:       "DE-777-26",
		Date:       date(2026, time.June, 10),
		SiteID:     site.ID,
		VehicleID:  vehicle.ID,
		EmployeeID: operator.ID,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "DE-777-26", entry.Code)

	// Reusing the same code is a hard failure, never retried with a new one.
	_, _, err = l.SubmitDailyEntry(DailyEntryPayload{
		Code:       "DE-777-26",
		Date:       date(2026, time.June, 11),
		SiteID:     site.ID,
		VehicleID:  vehicle.ID,
		EmployeeID: operator.ID,
	}, "tester")
	require.Error(t, err)
}

func TestSubmitDailyEntryAfterSoftDeletes(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 0, nil)

	var entries []Models.DailyEntry
	for i := 1; i <= 4; i++ {
		entry := Models.DailyEntry{
			Code:       fmt.Sprintf("DE-%03d-26", i),
			Date:       date(2026, time.May, i),
			SiteID:     site.ID,
			VehicleID:  vehicle.ID,
			EmployeeID: operator.ID,
		}
		require.NoError(t, l.DB.Create(&entry).Error)
		entries = append(entries, entry)
	}
	for _, entry := range entries[:3] {
		require.NoError(t, l.DB.Delete(&entry).Error)
	}

	// Deleted entries leave their codes consumed; the next submission must
	// still converge on a fresh one.
	entry, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:       date(2026, time.June, 1),
		SiteID:     site.ID,
		VehicleID:  vehicle.ID,
		EmployeeID: operator.ID,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "DE-005-26", entry.Code)
}

func TestSubmitDailyEntryRetriesAfterCodeCollision(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 0, nil)

	// A gap in the sequence makes the count land on an occupied code: two
	// rows count to 2, so the first attempt computes DE-003-26 and collides.
	for _, code := range []string{"DE-001-26", "DE-003-26"} {
		entry := Models.DailyEntry{
			Code:       code,
			Date:       date(2026, time.May, 1),
			SiteID:     site.ID,
			VehicleID:  vehicle.ID,
			EmployeeID: operator.ID,
		}
		require.NoError(t, l.DB.Create(&entry).Error)
	}

	entry, _, err := l.SubmitDailyEntry(DailyEntryPayload{
		Date:       date(2026, time.June, 1),
		SiteID:     site.ID,
		VehicleID:  vehicle.ID,
		EmployeeID: operator.ID,
	}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "DE-004-26", entry.Code)
}

func TestSubmitDailyEntrySequentialCodes(t *testing.T) {
	l := newTestLedger(t)

	site := seedSite(t, l.DB, "Hospet Quarry")
	operator := seedEmployee(t, l.DB, "Ravi")
	vehicle := seedVehicle(t, l.DB, "KA-35-0001", 0, nil)

	for i, want := range []string{"DE-001-26", "DE-002-26", "DE-003-26"} {
		entry, _, err := l.SubmitDailyEntry(DailyEntryPayload{
			Date:       date(2026, time.June, 10+i),
			SiteID:     site.ID,
			VehicleID:  vehicle.ID,
			EmployeeID: operator.ID,
		}, "tester")
		require.NoError(t, err)
		assert.Equal(t, want, entry.Code)
	}
}
