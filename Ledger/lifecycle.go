package Ledger

import (
	"errors"
	"fmt"
	"time"

	"DrillOps/Models"

	"gorm.io/gorm"
)

const (
	ItemActionFit    = "fit"
	ItemActionRemove = "remove"
)

// ItemActionRequest names one tracked instance to fit to or remove from the
// entry's vehicle. Increments come straight from the payload; instances have
// no opening/closing readings of their own.
type ItemActionRequest struct {
	ItemInstanceID uint    `json:"item_instance_id" validate:"required"`
	MeterIncrement float64 `json:"meter_increment"`
	RPMIncrement   float64 `json:"rpm_increment"`
	ServiceDone    bool    `json:"service_done"`
}

// ItemOutcome reports what happened to one requested fit/remove. A guard
// violation is a skip, not a failure; the rest of the entry still commits.
type ItemOutcome struct {
	ItemInstanceID uint   `json:"item_instance_id"`
	Action         string `json:"action"`
	Applied        bool   `json:"applied"`
	Reason         string `json:"reason,omitempty"`
}

// fitItem moves an in-stock instance onto the entry's vehicle, applies the
// requested increments and appends the OUT movement. A missing instance
// aborts the transaction; a wrong-state instance is reported as skipped.
func fitItem(tx *gorm.DB, entry *Models.DailyEntry, req ItemActionRequest, actor string, when time.Time) (ItemOutcome, error) {
	outcome := ItemOutcome{ItemInstanceID: req.ItemInstanceID, Action: ItemActionFit}

	var instance Models.ItemInstance
	if err := tx.First(&instance, req.ItemInstanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return outcome, notFoundError("Item instance", req.ItemInstanceID)
		}
		return outcome, dbError("Failed to load item instance", err)
	}

	if instance.Status != Models.ItemStatusInStock {
		outcome.Reason = fmt.Sprintf("instance is %s, not %s", instance.Status, Models.ItemStatusInStock)
		return outcome, nil
	}

	instance.Status = Models.ItemStatusFitted
	instance.FittedVehicleID = &entry.VehicleID
	instance.FittedDate = &when
	instance.RemovedDate = nil
	instance.CurrentMeter += clampIncrement(req.MeterIncrement)
	instance.CurrentRPM += clampIncrement(req.RPMIncrement)

	if err := tx.Save(&instance).Error; err != nil {
		return outcome, dbError("Failed to update item instance", err)
	}

	if err := appendStockTransaction(tx, instance.ItemTypeID, Models.StockDirectionOut, 1, 0,
		Models.StockRefFitting, entry.ID, actor); err != nil {
		return outcome, err
	}

	if req.ServiceDone {
		if err := createItemServiceRecord(tx, &instance, entry, actor, when); err != nil {
			return outcome, err
		}
	}

	outcome.Applied = true
	return outcome, nil
}

// removeItem takes a fitted instance off the entry's vehicle and returns it
// to stock. Instances fitted to a different vehicle are skipped.
func removeItem(tx *gorm.DB, entry *Models.DailyEntry, req ItemActionRequest, actor string, when time.Time) (ItemOutcome, error) {
	outcome := ItemOutcome{ItemInstanceID: req.ItemInstanceID, Action: ItemActionRemove}

	var instance Models.ItemInstance
	if err := tx.First(&instance, req.ItemInstanceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return outcome, notFoundError("Item instance", req.ItemInstanceID)
		}
		return outcome, dbError("Failed to load item instance", err)
	}

	if instance.Status != Models.ItemStatusFitted {
		outcome.Reason = fmt.Sprintf("instance is %s, not %s", instance.Status, Models.ItemStatusFitted)
		return outcome, nil
	}
	if instance.FittedVehicleID == nil || *instance.FittedVehicleID != entry.VehicleID {
		outcome.Reason = "instance is fitted to a different vehicle"
		return outcome, nil
	}

	// The part ran on the vehicle until it came off, so the day's increments
	// still count toward its lifetime counters.
	instance.CurrentMeter += clampIncrement(req.MeterIncrement)
	instance.CurrentRPM += clampIncrement(req.RPMIncrement)
	instance.Status = Models.ItemStatusInStock
	instance.FittedVehicleID = nil
	instance.FittedDate = nil
	instance.RemovedDate = &when

	if err := tx.Save(&instance).Error; err != nil {
		return outcome, dbError("Failed to update item instance", err)
	}

	if err := appendStockTransaction(tx, instance.ItemTypeID, Models.StockDirectionIn, 1, 0,
		Models.StockRefRemoval, entry.ID, actor); err != nil {
		return outcome, err
	}

	if req.ServiceDone {
		if err := createItemServiceRecord(tx, &instance, entry, actor, when); err != nil {
			return outcome, err
		}
	}

	outcome.Applied = true
	return outcome, nil
}

// appendStockTransaction writes one immutable movement row and keeps the
// cached stock projection on the item type in step with it.
func appendStockTransaction(tx *gorm.DB, itemTypeID uint, direction string, quantity, rate float64, refType string, refID uint, actor string) error {
	movement := Models.StockTransaction{
		ItemTypeID:    itemTypeID,
		Direction:     direction,
		Quantity:      quantity,
		Rate:          rate,
		ReferenceType: refType,
		ReferenceID:   refID,
		CreatedBy:     actor,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return dbError("Failed to record stock transaction", err)
	}

	delta := movement.SignedQuantity()
	result := tx.Model(&Models.ItemType{}).
		Where("id = ?", itemTypeID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if result.Error != nil {
		return dbError("Failed to update cached stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFoundError("Item type", itemTypeID)
	}
	return nil
}

func createItemServiceRecord(tx *gorm.DB, instance *Models.ItemInstance, entry *Models.DailyEntry, actor string, when time.Time) error {
	instance.ServiceSchedule = AdvanceSchedule(instance.ServiceSchedule, instance.CurrentRPM)
	if err := tx.Save(instance).Error; err != nil {
		return dbError("Failed to advance item schedule", err)
	}
	record := Models.ServiceRecord{
		Kind:           Models.ServiceKindItem,
		ItemInstanceID: &instance.ID,
		DailyEntryID:   &entry.ID,
		Reading:        instance.CurrentRPM,
		Date:           when,
		CreatedBy:      actor,
	}
	if err := tx.Create(&record).Error; err != nil {
		return dbError("Failed to create item service record", err)
	}
	return nil
}
