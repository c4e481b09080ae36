package Ledger

import (
	"errors"
	"time"

	"DrillOps/Models"

	"gorm.io/gorm"
)

// CreatePurchaseOrder persists a pending order with its lines, allocating the
// code when the caller left it empty. A lost race on a generated code retries
// with a fresh number, the same policy daily entries follow; a caller-supplied
// code is never retried.
func (l *Ledger) CreatePurchaseOrder(order *Models.PurchaseOrder) error {
	supplied := order.Code != ""

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err := l.createOrderOnce(order, attempt)
		if err == nil {
			return nil
		}
		if supplied || !isDuplicateCode(err) {
			return err
		}
		lastErr = err

		// The failed Create assigned ids to the structs; clear them so the
		// retry inserts fresh rows.
		order.ID = 0
		order.Code = ""
		for i := range order.Lines {
			order.Lines[i].ID = 0
			order.Lines[i].PurchaseOrderID = 0
		}
	}
	return &OpError{
		Code:    ErrCodeSequence,
		Message: "Failed to allocate a unique order code",
		Detail:  lastErr.Error(),
	}
}

func (l *Ledger) createOrderOnce(order *Models.PurchaseOrder, attempt int) error {
	tx := l.DB.Begin()
	if tx.Error != nil {
		return dbError("Failed to begin transaction", tx.Error)
	}

	if order.Code == "" {
		code, err := nextPurchaseOrderCode(tx, order.OrderDate, attempt)
		if err != nil {
			tx.Rollback()
			return err
		}
		order.Code = code
	}

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return dbError("Failed to create purchase order", err)
	}

	if err := tx.Commit().Error; err != nil {
		return dbError("Failed to commit purchase order", err)
	}
	return nil
}

// MarkPurchaseOrderReceived applies a pending order to stock: every line
// raises its item type's level and appends an IN movement at the line rate,
// then the order flips to received with the receiver recorded. A second call
// on a received order is a conflict, not a no-op; replaying it would double
// the stock.
func (l *Ledger) MarkPurchaseOrderReceived(poID uint, actor string) (*Models.PurchaseOrder, error) {
	tx := l.DB.Begin()
	if tx.Error != nil {
		return nil, dbError("Failed to begin transaction", tx.Error)
	}

	var order Models.PurchaseOrder
	if err := tx.Preload("Lines").First(&order, poID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Purchase order", poID)
		}
		return nil, dbError("Failed to load purchase order", err)
	}

	if order.Status == Models.POStatusReceived {
		tx.Rollback()
		return nil, conflictError("Purchase order already received",
			"order "+order.Code+" was already marked received")
	}

	for _, line := range order.Lines {
		if err := appendStockTransaction(tx, line.ItemTypeID, Models.StockDirectionIn,
			line.Quantity, line.Rate, Models.StockRefPOReceipt, order.ID, actor); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	now := time.Now()
	order.Status = Models.POStatusReceived
	order.ReceivedBy = actor
	order.ReceivedAt = &now
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		return nil, dbError("Failed to update purchase order", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, dbError("Failed to commit purchase order receipt", err)
	}

	if err := l.DB.Preload("Supplier").Preload("Lines.ItemType").
		First(&order, order.ID).Error; err != nil {
		return nil, dbError("Failed to reload purchase order", err)
	}
	return &order, nil
}
