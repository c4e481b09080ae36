package Controllers

import (
	"strconv"

	"DrillOps/Ledger"
	"DrillOps/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InventoryHandler struct {
	DB     *gorm.DB
	Ledger *Ledger.Ledger
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler {
	return &InventoryHandler{DB: db, Ledger: Ledger.NewLedger(db)}
}

// GetItemTypes lists all item types.
// GET /api/item-types
func (h *InventoryHandler) GetItemTypes(c *fiber.Ctx) error {
	var itemTypes []Models.ItemType
	if err := h.DB.Preload("Brand").Find(&itemTypes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(itemTypes)
}

type ItemTypeInput struct {
	Name      string  `json:"name" validate:"required"`
	Unit      string  `json:"unit"`
	BrandID   *uint   `json:"brand_id"`
	MinStock  float64 `json:"min_stock" validate:"gte=0"`
	Trackable bool    `json:"trackable"`
}

// CreateItemType registers a spare-part type. Stock starts at zero and only
// moves through the ledger.
// POST /api/item-types
func (h *InventoryHandler) CreateItemType(c *fiber.Ctx) error {
	var input ItemTypeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	itemType := Models.ItemType{
		Name:      input.Name,
		Unit:      input.Unit,
		BrandID:   input.BrandID,
		MinStock:  input.MinStock,
		Trackable: input.Trackable,
	}
	if err := h.DB.Create(&itemType).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(itemType)
}

// UpdateItemType edits descriptive fields. The stock level is deliberately
// not editable here.
// PUT /api/item-types/:id
func (h *InventoryHandler) UpdateItemType(c *fiber.Ctx) error {
	id := c.Params("id")
	var itemType Models.ItemType
	if err := h.DB.First(&itemType, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item type not found"})
	}

	var input ItemTypeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"name":      input.Name,
		"unit":      input.Unit,
		"brand_id":  input.BrandID,
		"min_stock": input.MinStock,
		"trackable": input.Trackable,
	}
	if err := h.DB.Model(&itemType).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(itemType)
}

type AddStockInput struct {
	Labels          []string  `json:"labels" validate:"required,min=1"`
	Rate            float64   `json:"rate" validate:"gte=0"`
	ServiceSchedule []float64 `json:"service_schedule"`
}

// AddStock registers serialized units of a trackable type, one instance per
// label, each with its IN movement.
// POST /api/item-types/:id/stock
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item type ID"})
	}

	var input AddStockInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := validateStruct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": messages})
	}

	instances, err := h.Ledger.AddStock(uint(id), input.Labels, input.Rate, input.ServiceSchedule, actorName(c))
	if err != nil {
		return ledgerErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(instances)
}

// GetItemInstances lists instances, filtered by type or status.
// GET /api/item-instances?item_type_id=1&status=in_stock
func (h *InventoryHandler) GetItemInstances(c *fiber.Ctx) error {
	query := h.DB.Preload("ItemType").Preload("FittedVehicle")
	if itemTypeID := c.Query("item_type_id"); itemTypeID != "" {
		query = query.Where("item_type_id = ?", itemTypeID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var instances []Models.ItemInstance
	if err := query.Find(&instances).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(instances)
}

// GetItemInstance returns one instance with its service history.
// GET /api/item-instances/:id
func (h *InventoryHandler) GetItemInstance(c *fiber.Ctx) error {
	id := c.Params("id")
	var instance Models.ItemInstance
	if err := h.DB.Preload("ItemType").Preload("FittedVehicle").First(&instance, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item instance not found"})
	}

	var services []Models.ServiceRecord
	h.DB.Where("item_instance_id = ?", instance.ID).Order("date DESC").Find(&services)

	return c.JSON(fiber.Map{"instance": instance, "service_records": services})
}

// GetStockTransactions lists the movement ledger for one item type, newest
// first. There is no write surface here; movements only come from fits,
// removals, receipts and stock additions.
// GET /api/item-types/:id/transactions
func (h *InventoryHandler) GetStockTransactions(c *fiber.Ctx) error {
	id := c.Params("id")
	var itemType Models.ItemType
	if err := h.DB.First(&itemType, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item type not found"})
	}

	var movements []Models.StockTransaction
	if err := h.DB.Where("item_type_id = ?", itemType.ID).
		Order("created_at DESC, id DESC").Find(&movements).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"item_type": itemType, "transactions": movements})
}

// ReconcileStock repairs cached stock levels from the ledger.
// POST /api/stock/reconcile
func (h *InventoryHandler) ReconcileStock(c *fiber.Ctx) error {
	discrepancies, err := h.Ledger.ReconcileStockLevels()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if discrepancies == nil {
		discrepancies = []Ledger.StockDiscrepancy{}
	}
	return c.JSON(fiber.Map{"repaired": discrepancies})
}
