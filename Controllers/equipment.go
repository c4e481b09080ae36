package Controllers

import (
	"strconv"
	"time"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type EquipmentHandler struct {
	DB *gorm.DB
}

func NewEquipmentHandler(db *gorm.DB) *EquipmentHandler {
	return &EquipmentHandler{DB: db}
}

// GetVehicles lists all vehicles.
// GET /api/vehicles
func (h *EquipmentHandler) GetVehicles(c *fiber.Ctx) error {
	var vehicles []Models.Vehicle
	if err := h.DB.Preload("Brand").Find(&vehicles).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(vehicles)
}

type VehicleInput struct {
	Name            string    `json:"name" validate:"required"`
	PlateNo         string    `json:"plate_no" validate:"required"`
	BrandID         *uint     `json:"brand_id"`
	ServiceSchedule []float64 `json:"service_schedule"`
}

// POST /api/vehicles
func (h *EquipmentHandler) CreateVehicle(c *fiber.Ctx) error {
	var input VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	vehicle := Models.Vehicle{
		Name:            input.Name,
		PlateNo:         input.PlateNo,
		BrandID:         input.BrandID,
		ServiceSchedule: input.ServiceSchedule,
	}
	if err := h.DB.Create(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// UpdateVehicle edits name, plate, brand and schedule. The RPM counter is
// not editable; it only moves through daily entry submission.
// PUT /api/vehicles/:id
func (h *EquipmentHandler) UpdateVehicle(c *fiber.Ctx) error {
	var vehicle Models.Vehicle
	if err := h.DB.First(&vehicle, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}

	var input VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	vehicle.Name = input.Name
	vehicle.PlateNo = input.PlateNo
	vehicle.BrandID = input.BrandID
	vehicle.ServiceSchedule = input.ServiceSchedule
	if err := h.DB.Save(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(vehicle)
}

// DELETE /api/vehicles/:id
func (h *EquipmentHandler) DeleteVehicle(c *fiber.Ctx) error {
	var vehicle Models.Vehicle
	if err := h.DB.First(&vehicle, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
	}
	if err := h.DB.Delete(&vehicle).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Vehicle deleted successfully"})
}

// GetCompressors lists all compressors.
// GET /api/compressors
func (h *EquipmentHandler) GetCompressors(c *fiber.Ctx) error {
	var compressors []Models.Compressor
	if err := h.DB.Preload("Vehicle").Find(&compressors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(compressors)
}

type CompressorInput struct {
	Name            string    `json:"name" validate:"required"`
	SerialNo        string    `json:"serial_no" validate:"required"`
	VehicleID       *uint     `json:"vehicle_id"`
	ServiceSchedule []float64 `json:"service_schedule"`
}

// POST /api/compressors
func (h *EquipmentHandler) CreateCompressor(c *fiber.Ctx) error {
	var input CompressorInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	compressor := Models.Compressor{
		Name:            input.Name,
		SerialNo:        input.SerialNo,
		VehicleID:       input.VehicleID,
		ServiceSchedule: input.ServiceSchedule,
	}
	if err := h.DB.Create(&compressor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(compressor)
}

// PUT /api/compressors/:id
func (h *EquipmentHandler) UpdateCompressor(c *fiber.Ctx) error {
	var compressor Models.Compressor
	if err := h.DB.First(&compressor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Compressor not found"})
	}

	var input CompressorInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	compressor.Name = input.Name
	compressor.SerialNo = input.SerialNo
	compressor.VehicleID = input.VehicleID
	compressor.ServiceSchedule = input.ServiceSchedule
	if err := h.DB.Save(&compressor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(compressor)
}

// DELETE /api/compressors/:id
func (h *EquipmentHandler) DeleteCompressor(c *fiber.Ctx) error {
	var compressor Models.Compressor
	if err := h.DB.First(&compressor, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Compressor not found"})
	}
	if err := h.DB.Delete(&compressor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Compressor deleted successfully"})
}

type CompleteServiceInput struct {
	Kind  string `json:"kind" validate:"required,oneof=vehicle compressor"`
	Notes string `json:"notes"`
}

// CompleteService records an out-of-entry service completion for a vehicle
// or compressor at its current counter.
// POST /api/equipment/:id/service
func (h *EquipmentHandler) CompleteService(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid equipment ID"})
	}

	var input CompleteServiceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	record := Models.ServiceRecord{
		Kind:      input.Kind,
		Date:      time.Now(),
		Notes:     input.Notes,
		CreatedBy: actorName(c),
	}

	// Completing a service retires the schedule thresholds the counter has
	// crossed, which clears the overdue alert.
	switch input.Kind {
	case Models.ServiceKindVehicle:
		var vehicle Models.Vehicle
		if err := h.DB.First(&vehicle, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vehicle not found"})
		}
		vehicle.ServiceSchedule = Ledger.AdvanceSchedule(vehicle.ServiceSchedule, vehicle.RPM)
		if err := h.DB.Save(&vehicle).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		record.VehicleID = &vehicle.ID
		record.Reading = vehicle.RPM
	case Models.ServiceKindCompressor:
		var compressor Models.Compressor
		if err := h.DB.First(&compressor, id).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Compressor not found"})
		}
		compressor.ServiceSchedule = Ledger.AdvanceSchedule(compressor.ServiceSchedule, compressor.RPM)
		if err := h.DB.Save(&compressor).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		record.CompressorID = &compressor.ID
		record.Reading = compressor.RPM
	}

	if err := h.DB.Create(&record).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}
