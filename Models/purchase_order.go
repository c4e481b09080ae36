package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	POStatusPending  = "pending"
	POStatusReceived = "received"
)

const (
	POTaxModeNone = "none"
	POTaxModeGST  = "gst" // 18% on the subtotal
)

type PurchaseOrder struct {
	gorm.Model
	Code       string    `json:"code" gorm:"not null;uniqueIndex"`
	SupplierID uint      `json:"supplier_id" gorm:"not null;index"`
	OrderDate  time.Time `json:"order_date" gorm:"not null"`
	TaxMode    string    `json:"tax_mode" gorm:"not null;default:none"`

	SubTotal   float64 `json:"sub_total" gorm:"not null;default:0"`
	TaxAmount  float64 `json:"tax_amount" gorm:"not null;default:0"`
	GrandTotal float64 `json:"grand_total" gorm:"not null;default:0"`

	Status     string     `json:"status" gorm:"not null;default:pending"`
	ReceivedBy string     `json:"received_by"`
	ReceivedAt *time.Time `json:"received_at"`

	Supplier Supplier            `json:"supplier,omitempty" gorm:"foreignKey:SupplierID"`
	Lines    []PurchaseOrderLine `json:"lines,omitempty" gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

type PurchaseOrderLine struct {
	gorm.Model
	PurchaseOrderID uint    `json:"purchase_order_id" gorm:"not null;index"`
	ItemTypeID      uint    `json:"item_type_id" gorm:"not null;index"`
	Quantity        float64 `json:"quantity" gorm:"not null"`
	Rate            float64 `json:"rate" gorm:"not null"`
	LineTotal       float64 `json:"line_total" gorm:"not null"`

	ItemType ItemType `json:"item_type,omitempty" gorm:"foreignKey:ItemTypeID"`
}
