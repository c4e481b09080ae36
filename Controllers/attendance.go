package Controllers

import (
	"time"

	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceInput struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required"`
	SiteID     *uint  `json:"site_id"`
	Status     string `json:"status" validate:"required,oneof=present absent half_day"`
	Notes      string `json:"notes"`
}

type AttendanceHandler struct {
	DB *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler {
	return &AttendanceHandler{DB: db}
}

// Mark records or corrects one employee's attendance for a day. Re-marking
// the same day overwrites the earlier row.
// POST /api/attendance
func (h *AttendanceHandler) Mark(c *fiber.Ctx) error {
	var input AttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	var employee Models.Employee
	if err := h.DB.First(&employee, input.EmployeeID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Employee not found"})
	}

	attendance := Models.Attendance{
		EmployeeID: input.EmployeeID,
		Date:       date,
		SiteID:     input.SiteID,
		Status:     input.Status,
		Notes:      input.Notes,
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"site_id", "status", "notes"}),
	}).Create(&attendance).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(attendance)
}

// List returns attendance in a date range, optionally for one employee.
// GET /api/attendance?from=2024-01-01&to=2024-01-31&employee_id=1
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	query := h.DB.Preload("Employee")
	if from := c.Query("from"); from != "" {
		query = query.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("date <= ?", to)
	}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		query = query.Where("employee_id = ?", employeeID)
	}

	var records []Models.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(records)
}
