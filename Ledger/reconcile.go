package Ledger

import (
	"DrillOps/Models"

	"gorm.io/gorm"
)

// StockDiscrepancy is one item type whose cached level drifted from the
// signed sum of its ledger transactions.
type StockDiscrepancy struct {
	ItemTypeID  uint    `json:"item_type_id"`
	Name        string  `json:"name"`
	CachedStock float64 `json:"cached_stock"`
	LedgerStock float64 `json:"ledger_stock"`
}

// ReconcileStockLevels repairs the cached stock projection from the ledger.
// The ledger is authoritative; any drift is fixed in place and reported. The
// read and the repair run in one transaction so a movement landing in between
// cannot have its cached increment overwritten.
func (l *Ledger) ReconcileStockLevels() ([]StockDiscrepancy, error) {
	var discrepancies []StockDiscrepancy

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		var itemTypes []Models.ItemType
		if err := tx.Find(&itemTypes).Error; err != nil {
			return dbError("Failed to load item types", err)
		}

		type ledgerSum struct {
			ItemTypeID uint
			Total      float64
		}
		var sums []ledgerSum
		err := tx.Model(&Models.StockTransaction{}).
			Select("item_type_id, SUM(CASE WHEN direction = ? THEN -quantity ELSE quantity END) AS total",
				Models.StockDirectionOut).
			Group("item_type_id").
			Scan(&sums).Error
		if err != nil {
			return dbError("Failed to sum stock transactions", err)
		}

		totals := map[uint]float64{}
		for _, s := range sums {
			totals[s.ItemTypeID] = s.Total
		}

		for _, it := range itemTypes {
			ledgerStock := totals[it.ID]
			if it.Stock == ledgerStock {
				continue
			}
			discrepancies = append(discrepancies, StockDiscrepancy{
				ItemTypeID:  it.ID,
				Name:        it.Name,
				CachedStock: it.Stock,
				LedgerStock: ledgerStock,
			})
			if err := tx.Model(&Models.ItemType{}).
				Where("id = ?", it.ID).
				UpdateColumn("stock", ledgerStock).Error; err != nil {
				return dbError("Failed to repair cached stock", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return discrepancies, nil
}

// AddStock registers freshly purchased trackable units: one instance per
// label, each backed by an IN movement in the ledger.
func (l *Ledger) AddStock(itemTypeID uint, labels []string, rate float64, schedule []float64, actor string) ([]Models.ItemInstance, error) {
	tx := l.DB.Begin()
	if tx.Error != nil {
		return nil, dbError("Failed to begin transaction", tx.Error)
	}

	var itemType Models.ItemType
	if err := tx.First(&itemType, itemTypeID).Error; err != nil {
		tx.Rollback()
		return nil, notFoundError("Item type", itemTypeID)
	}

	var instances []Models.ItemInstance
	for _, label := range labels {
		instance := Models.ItemInstance{
			ItemTypeID:      itemTypeID,
			Label:           label,
			Status:          Models.ItemStatusInStock,
			ServiceSchedule: schedule,
		}
		if err := tx.Create(&instance).Error; err != nil {
			tx.Rollback()
			return nil, dbError("Failed to create item instance", err)
		}
		if err := appendStockTransaction(tx, itemTypeID, Models.StockDirectionIn, 1, rate,
			Models.StockRefStockAdd, instance.ID, actor); err != nil {
			tx.Rollback()
			return nil, err
		}
		instances = append(instances, instance)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, dbError("Failed to commit stock addition", err)
	}
	return instances, nil
}
