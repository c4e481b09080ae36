package Controllers

import (
	"DrillOps/Ledger"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AlertHandler struct {
	Ledger *Ledger.Ledger
}

func NewAlertHandler(db *gorm.DB) *AlertHandler {
	return &AlertHandler{Ledger: Ledger.NewLedger(db)}
}

// List evaluates every vehicle, compressor and tracked item against its
// service schedule. Read-only.
// GET /api/service-alerts
func (h *AlertHandler) List(c *fiber.Ctx) error {
	alerts, summary, err := h.Ledger.ListServiceAlerts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if alerts == nil {
		alerts = []Ledger.ServiceAlert{}
	}
	return c.JSON(fiber.Map{
		"alerts":  alerts,
		"summary": summary,
	})
}
