package Controllers

import (
	"strconv"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DailyEntryHandler exposes the daily operations ledger over HTTP.
type DailyEntryHandler struct {
	DB     *gorm.DB
	Ledger *Ledger.Ledger
}

func NewDailyEntryHandler(db *gorm.DB) *DailyEntryHandler {
	return &DailyEntryHandler{DB: db, Ledger: Ledger.NewLedger(db)}
}

// GenerateReference previews the next entry code for the current year.
// GET /api/daily-entries/reference
func (h *DailyEntryHandler) GenerateReference(c *fiber.Ctx) error {
	code, err := h.Ledger.GenerateDailyEntryCode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"code": code})
}

// Create submits one reported day through the transaction coordinator.
// POST /api/daily-entries
func (h *DailyEntryHandler) Create(c *fiber.Ctx) error {
	var payload Ledger.DailyEntryPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if messages := validateStruct(payload); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	entry, outcomes, err := h.Ledger.SubmitDailyEntry(payload, actorName(c))
	if err != nil {
		return ledgerErrorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"entry":         entry,
		"item_outcomes": outcomes,
	})
}

// GetAll lists entries, optionally filtered by date range, site or vehicle.
// GET /api/daily-entries?from=2024-01-01&to=2024-01-31&site_id=1&vehicle_id=2
func (h *DailyEntryHandler) GetAll(c *fiber.Ctx) error {
	query := h.DB.Model(&Models.DailyEntry{}).
		Preload("Site").Preload("Vehicle").Preload("Employee")

	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}
	if siteID := c.Query("site_id"); siteID != "" {
		query = query.Where("site_id = ?", siteID)
	}
	if vehicleID := c.Query("vehicle_id"); vehicleID != "" {
		query = query.Where("vehicle_id = ?", vehicleID)
	}

	var entries []Models.DailyEntry
	if err := query.Order("date DESC, id DESC").Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve entries"})
	}
	return c.JSON(entries)
}

// Get returns one entry with everything preloaded.
// GET /api/daily-entries/:id
func (h *DailyEntryHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry Models.DailyEntry
	if err := h.DB.Preload("Site").Preload("Vehicle").Preload("Compressor").
		Preload("Employee").Preload("Participants.Employee").
		First(&entry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Daily entry not found"})
	}
	return c.JSON(entry)
}

type DailyEntryUpdateInput struct {
	Notes         *string  `json:"notes"`
	DieselUsed    *float64 `json:"diesel_used"`
	MetersDrilled *float64 `json:"meters_drilled"`
	HolesDrilled  *int     `json:"holes_drilled"`
}

// Update edits the descriptive fields of an entry. Counters, item states and
// stock movements are not replayed; corrections to those need a fresh entry.
// PUT /api/daily-entries/:id
func (h *DailyEntryHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry Models.DailyEntry
	if err := h.DB.First(&entry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Daily entry not found"})
	}

	var input DailyEntryUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if input.DieselUsed != nil {
		updates["diesel_used"] = *input.DieselUsed
	}
	if input.MetersDrilled != nil {
		updates["meters_drilled"] = *input.MetersDrilled
	}
	if input.HolesDrilled != nil {
		updates["holes_drilled"] = *input.HolesDrilled
	}
	if len(updates) > 0 {
		if err := h.DB.Model(&entry).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
		}
	}

	return c.JSON(entry)
}

// Delete soft-deletes an entry. The code stays consumed and the side effects
// it produced stay on the books.
// DELETE /api/daily-entries/:id
func (h *DailyEntryHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var entry Models.DailyEntry
	if err := h.DB.First(&entry, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Daily entry not found"})
	}

	if err := h.DB.Delete(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete entry"})
	}
	return c.JSON(fiber.Map{"message": "Daily entry deleted successfully"})
}

// ledgerErrorResponse maps ledger error codes onto HTTP statuses.
func ledgerErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	if Ledger.IsNotFound(err) {
		status = fiber.StatusNotFound
	} else if Ledger.IsConflict(err) {
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
