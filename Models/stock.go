package Models

import (
	"gorm.io/gorm"
)

const (
	StockDirectionIn  = "IN"
	StockDirectionOut = "OUT"
)

// Reference tags identifying the event that caused a stock movement.
const (
	StockRefFitting   = "fitting"
	StockRefRemoval   = "removal"
	StockRefPOReceipt = "po_receipt"
	StockRefStockAdd  = "stock_add"
)

// StockTransaction is an append-only inventory movement. Rows are never
// updated or deleted; the running stock level of an item type is the signed
// sum of its transactions.
type StockTransaction struct {
	gorm.Model
	ItemTypeID    uint    `json:"item_type_id" gorm:"not null;index"`
	Direction     string  `json:"direction" gorm:"not null"` // IN or OUT
	Quantity      float64 `json:"quantity" gorm:"not null"`
	Rate          float64 `json:"rate" gorm:"not null;default:0"`
	ReferenceType string  `json:"reference_type" gorm:"not null;index"`
	ReferenceID   uint    `json:"reference_id" gorm:"not null;index"`
	CreatedBy     string  `json:"created_by"`

	ItemType ItemType `json:"item_type,omitempty" gorm:"foreignKey:ItemTypeID"`
}

// SignedQuantity folds the direction into the quantity.
func (s *StockTransaction) SignedQuantity() float64 {
	if s.Direction == StockDirectionOut {
		return -s.Quantity
	}
	return s.Quantity
}
