// Package Ledger holds the transactional core of the operations backend:
// daily entry submission, the item instance lifecycle, the append-only stock
// ledger, purchase order receipt and the service-due evaluator. Everything
// that writes runs inside a single database transaction per invocation.
package Ledger

import (
	"gorm.io/gorm"
)

type Ledger struct {
	DB *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}
