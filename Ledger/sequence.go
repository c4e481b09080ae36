package Ledger

import (
	"fmt"
	"time"

	"DrillOps/Models"

	"gorm.io/gorm"
)

const (
	dailyEntryCodePrefix    = "DE"
	purchaseOrderCodePrefix = "PO"
)

// How many times a submission retries after losing a code race. The unique
// index on the code column is what actually detects the collision.
const maxCodeAttempts = 3

// nextDailyEntryCode allocates the next DE-NNN-YY code for the calendar year
// of now. attempt offsets the number so a retry after a duplicate-key failure
// does not recompute the same code. Soft-deleted entries keep their codes
// consumed, so the count is unscoped.
func nextDailyEntryCode(tx *gorm.DB, now time.Time, attempt int) (string, error) {
	year := now.Format("06")
	pattern := fmt.Sprintf("%s-%%-%s", dailyEntryCodePrefix, year)

	var count int64
	if err := tx.Unscoped().Model(&Models.DailyEntry{}).
		Where("code LIKE ?", pattern).
		Count(&count).Error; err != nil {
		return "", dbError("Failed to count daily entry codes", err)
	}

	return fmt.Sprintf("%s-%03d-%s", dailyEntryCodePrefix, count+1+int64(attempt), year), nil
}

// nextPurchaseOrderCode allocates the next PO/YY-YY/NNN code. The straddle is
// the April-to-March fiscal year.
func nextPurchaseOrderCode(tx *gorm.DB, now time.Time, attempt int) (string, error) {
	straddle := fiscalYearStraddle(now)
	pattern := fmt.Sprintf("%s/%s/%%", purchaseOrderCodePrefix, straddle)

	var count int64
	if err := tx.Unscoped().Model(&Models.PurchaseOrder{}).
		Where("code LIKE ?", pattern).
		Count(&count).Error; err != nil {
		return "", dbError("Failed to count purchase order codes", err)
	}

	return fmt.Sprintf("%s/%s/%03d", purchaseOrderCodePrefix, straddle, count+1+int64(attempt)), nil
}

func fiscalYearStraddle(now time.Time) string {
	year := now.Year()
	if now.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%02d-%02d", year%100, (year+1)%100)
}

// GenerateDailyEntryCode previews the next daily entry reference without
// reserving it; the submission path allocates its own.
func (l *Ledger) GenerateDailyEntryCode() (string, error) {
	return nextDailyEntryCode(l.DB, time.Now(), 0)
}

// GeneratePurchaseOrderCode previews the next purchase order reference.
func (l *Ledger) GeneratePurchaseOrderCode() (string, error) {
	return nextPurchaseOrderCode(l.DB, time.Now(), 0)
}
