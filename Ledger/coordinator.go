package Ledger

import (
	"errors"
	"time"

	"DrillOps/Models"

	"gorm.io/gorm"
)

// DailyEntryPayload is one reported operational day. Code is normally left
// empty and allocated server side.
type DailyEntryPayload struct {
	Code         string    `json:"code"`
	Date         time.Time `json:"date" validate:"required"`
	SiteID       uint      `json:"site_id" validate:"required"`
	VehicleID    uint      `json:"vehicle_id" validate:"required"`
	CompressorID *uint     `json:"compressor_id"`

	VehicleOpeningRPM    float64 `json:"vehicle_opening_rpm" validate:"gte=0"`
	VehicleClosingRPM    float64 `json:"vehicle_closing_rpm" validate:"gte=0"`
	CompressorOpeningRPM float64 `json:"compressor_opening_rpm" validate:"gte=0"`
	CompressorClosingRPM float64 `json:"compressor_closing_rpm" validate:"gte=0"`

	DieselUsed    float64 `json:"diesel_used" validate:"gte=0"`
	MetersDrilled float64 `json:"meters_drilled" validate:"gte=0"`
	HolesDrilled  int     `json:"holes_drilled" validate:"gte=0"`

	EmployeeID            uint   `json:"employee_id" validate:"required"`
	AdditionalEmployeeIDs []uint `json:"additional_employee_ids"`

	FittedItems  []ItemActionRequest `json:"fitted_items" validate:"dive"`
	RemovedItems []ItemActionRequest `json:"removed_items" validate:"dive"`

	Notes                 string `json:"notes"`
	VehicleServiceDone    bool   `json:"vehicle_service_done"`
	CompressorServiceDone bool   `json:"compressor_service_done"`
}

// SubmitDailyEntry executes one reported day as a single unit of work: code
// allocation, the entry row, participant joins, item fits/removals with their
// stock movements, counter updates and service records. Either all of it
// commits or none of it does. A lost race on the generated code retries with
// a fresh number; a caller-supplied code is never retried.
func (l *Ledger) SubmitDailyEntry(payload DailyEntryPayload, actor string) (*Models.DailyEntry, []ItemOutcome, error) {
	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		entry, outcomes, err := l.submitOnce(payload, actor, attempt)
		if err == nil {
			return entry, outcomes, nil
		}
		if payload.Code != "" || !isDuplicateCode(err) {
			return nil, nil, err
		}
		lastErr = err
	}
	return nil, nil, &OpError{
		Code:    ErrCodeSequence,
		Message: "Failed to allocate a unique entry code",
		Detail:  lastErr.Error(),
	}
}

func (l *Ledger) submitOnce(payload DailyEntryPayload, actor string, attempt int) (*Models.DailyEntry, []ItemOutcome, error) {
	tx := l.DB.Begin()
	if tx.Error != nil {
		return nil, nil, dbError("Failed to begin transaction", tx.Error)
	}

	code := payload.Code
	if code == "" {
		var err error
		if code, err = nextDailyEntryCode(tx, payload.Date, attempt); err != nil {
			tx.Rollback()
			return nil, nil, err
		}
	}

	// Referenced records must exist; a partially applied entry would be a
	// misleading record, so any missing reference aborts the submission.
	var vehicle Models.Vehicle
	if err := tx.First(&vehicle, payload.VehicleID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError("Vehicle", payload.VehicleID)
		}
		return nil, nil, dbError("Failed to load vehicle", err)
	}

	var compressor *Models.Compressor
	if payload.CompressorID != nil {
		compressor = &Models.Compressor{}
		if err := tx.First(compressor, *payload.CompressorID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, notFoundError("Compressor", *payload.CompressorID)
			}
			return nil, nil, dbError("Failed to load compressor", err)
		}
	}

	var site Models.Site
	if err := tx.First(&site, payload.SiteID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, notFoundError("Site", payload.SiteID)
		}
		return nil, nil, dbError("Failed to load site", err)
	}

	entry := Models.DailyEntry{
		Code:                  code,
		Date:                  payload.Date,
		SiteID:                payload.SiteID,
		VehicleID:             payload.VehicleID,
		CompressorID:          payload.CompressorID,
		VehicleOpeningRPM:     payload.VehicleOpeningRPM,
		VehicleClosingRPM:     payload.VehicleClosingRPM,
		CompressorOpeningRPM:  payload.CompressorOpeningRPM,
		CompressorClosingRPM:  payload.CompressorClosingRPM,
		DieselUsed:            payload.DieselUsed,
		MetersDrilled:         payload.MetersDrilled,
		HolesDrilled:          payload.HolesDrilled,
		EmployeeID:            payload.EmployeeID,
		Notes:                 payload.Notes,
		VehicleServiceDone:    payload.VehicleServiceDone,
		CompressorServiceDone: payload.CompressorServiceDone,
		CreatedBy:             actor,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, nil, dbError("Failed to create daily entry", err)
	}

	if err := attachParticipants(tx, &entry, payload); err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	var outcomes []ItemOutcome
	for _, req := range payload.FittedItems {
		outcome, err := fitItem(tx, &entry, req, actor, payload.Date)
		if err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		outcomes = append(outcomes, outcome)
	}
	for _, req := range payload.RemovedItems {
		outcome, err := removeItem(tx, &entry, req, actor, payload.Date)
		if err != nil {
			tx.Rollback()
			return nil, nil, err
		}
		outcomes = append(outcomes, outcome)
	}

	vehicle.RPM += UsageDelta(payload.VehicleOpeningRPM, payload.VehicleClosingRPM)
	if err := tx.Save(&vehicle).Error; err != nil {
		tx.Rollback()
		return nil, nil, dbError("Failed to update vehicle counter", err)
	}

	if compressor != nil {
		compressor.RPM += UsageDelta(payload.CompressorOpeningRPM, payload.CompressorClosingRPM)
		if err := tx.Save(compressor).Error; err != nil {
			tx.Rollback()
			return nil, nil, dbError("Failed to update compressor counter", err)
		}
	}

	// Service flags pin the record at the counter as updated above and retire
	// the crossed schedule thresholds.
	if payload.VehicleServiceDone {
		vehicle.ServiceSchedule = AdvanceSchedule(vehicle.ServiceSchedule, vehicle.RPM)
		if err := tx.Save(&vehicle).Error; err != nil {
			tx.Rollback()
			return nil, nil, dbError("Failed to advance vehicle schedule", err)
		}
		record := Models.ServiceRecord{
			Kind:         Models.ServiceKindVehicle,
			VehicleID:    &vehicle.ID,
			DailyEntryID: &entry.ID,
			Reading:      vehicle.RPM,
			Date:         payload.Date,
			CreatedBy:    actor,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, nil, dbError("Failed to create vehicle service record", err)
		}
	}
	if payload.CompressorServiceDone && compressor != nil {
		compressor.ServiceSchedule = AdvanceSchedule(compressor.ServiceSchedule, compressor.RPM)
		if err := tx.Save(compressor).Error; err != nil {
			tx.Rollback()
			return nil, nil, dbError("Failed to advance compressor schedule", err)
		}
		record := Models.ServiceRecord{
			Kind:         Models.ServiceKindCompressor,
			CompressorID: &compressor.ID,
			DailyEntryID: &entry.ID,
			Reading:      compressor.RPM,
			Date:         payload.Date,
			CreatedBy:    actor,
		}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return nil, nil, dbError("Failed to create compressor service record", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, nil, dbError("Failed to commit daily entry", err)
	}

	// Reload with relationships outside the transaction.
	if err := l.DB.Preload("Site").Preload("Vehicle").Preload("Compressor").
		Preload("Employee").Preload("Participants.Employee").
		First(&entry, entry.ID).Error; err != nil {
		return nil, nil, dbError("Failed to reload daily entry", err)
	}

	return &entry, outcomes, nil
}

// attachParticipants writes one join row per distinct employee on the entry,
// the primary operator always included.
func attachParticipants(tx *gorm.DB, entry *Models.DailyEntry, payload DailyEntryPayload) error {
	seen := map[uint]bool{}
	ids := append([]uint{payload.EmployeeID}, payload.AdditionalEmployeeIDs...)

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		var employee Models.Employee
		if err := tx.First(&employee, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundError("Employee", id)
			}
			return dbError("Failed to load employee", err)
		}

		join := Models.DailyEntryEmployee{DailyEntryID: entry.ID, EmployeeID: id}
		if err := tx.Create(&join).Error; err != nil {
			return dbError("Failed to attach participant", err)
		}
	}
	return nil
}
