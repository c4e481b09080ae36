package Controllers

import (
	"strconv"
	"time"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const gstRate = 0.18

type PurchaseOrderHandler struct {
	DB     *gorm.DB
	Ledger *Ledger.Ledger
}

func NewPurchaseOrderHandler(db *gorm.DB) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{DB: db, Ledger: Ledger.NewLedger(db)}
}

// GenerateReference previews the next order code for the fiscal year.
// GET /api/purchase-orders/reference
func (h *PurchaseOrderHandler) GenerateReference(c *fiber.Ctx) error {
	code, err := h.Ledger.GeneratePurchaseOrderCode()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"code": code})
}

type PurchaseOrderLineInput struct {
	ItemTypeID uint    `json:"item_type_id" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"required,gt=0"`
	Rate       float64 `json:"rate" validate:"gte=0"`
}

type PurchaseOrderInput struct {
	Code       string                   `json:"code"`
	SupplierID uint                     `json:"supplier_id" validate:"required"`
	OrderDate  string                   `json:"order_date" validate:"required"`
	TaxMode    string                   `json:"tax_mode" validate:"omitempty,oneof=none gst"`
	Lines      []PurchaseOrderLineInput `json:"lines" validate:"required,min=1,dive"`
}

// Create records a pending order with computed line and order totals.
// POST /api/purchase-orders
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var input PurchaseOrderInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body", "message": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	orderDate, err := time.Parse("2006-01-02", input.OrderDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	}

	var supplier Models.Supplier
	if err := h.DB.First(&supplier, input.SupplierID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
	}

	taxMode := input.TaxMode
	if taxMode == "" {
		taxMode = Models.POTaxModeNone
	}

	order := Models.PurchaseOrder{
		Code:       input.Code,
		SupplierID: input.SupplierID,
		OrderDate:  orderDate,
		TaxMode:    taxMode,
		Status:     Models.POStatusPending,
	}
	for _, line := range input.Lines {
		order.Lines = append(order.Lines, Models.PurchaseOrderLine{
			ItemTypeID: line.ItemTypeID,
			Quantity:   line.Quantity,
			Rate:       line.Rate,
			LineTotal:  line.Quantity * line.Rate,
		})
		order.SubTotal += line.Quantity * line.Rate
	}
	if taxMode == Models.POTaxModeGST {
		order.TaxAmount = order.SubTotal * gstRate
	}
	order.GrandTotal = order.SubTotal + order.TaxAmount

	if err := h.Ledger.CreatePurchaseOrder(&order); err != nil {
		return ledgerErrorResponse(c, err)
	}

	h.DB.Preload("Supplier").Preload("Lines.ItemType").First(&order, order.ID)
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetAll lists orders, optionally by status.
// GET /api/purchase-orders?status=pending
func (h *PurchaseOrderHandler) GetAll(c *fiber.Ctx) error {
	query := h.DB.Preload("Supplier").Preload("Lines.ItemType")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []Models.PurchaseOrder
	if err := query.Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve purchase orders"})
	}
	return c.JSON(orders)
}

// Get returns one order.
// GET /api/purchase-orders/:id
func (h *PurchaseOrderHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var order Models.PurchaseOrder
	if err := h.DB.Preload("Supplier").Preload("Lines.ItemType").First(&order, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Purchase order not found"})
	}
	return c.JSON(order)
}

// MarkReceived applies the order to stock through the receipt workflow.
// POST /api/purchase-orders/:id/receive
func (h *PurchaseOrderHandler) MarkReceived(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	order, err := h.Ledger.MarkPurchaseOrderReceived(uint(id), actorName(c))
	if err != nil {
		return ledgerErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"purchase_order": order})
}
