package FiberConfig

import (
	"fmt"
	"log"
	"os"

	"DrillOps/Controllers"
	"DrillOps/Models"
	"DrillOps/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	dailyEntryHandler := Controllers.NewDailyEntryHandler(db)
	purchaseOrderHandler := Controllers.NewPurchaseOrderHandler(db)
	alertHandler := Controllers.NewAlertHandler(db)
	inventoryHandler := Controllers.NewInventoryHandler(db)
	equipmentHandler := Controllers.NewEquipmentHandler(db)
	attendanceHandler := Controllers.NewAttendanceHandler(db)
	reportHandler := Controllers.NewReportHandler(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth
	app.Post("/api/register", middleware.Verify(4), Controllers.Register)
	app.Post("/api/login", Controllers.Login)
	app.Get("/api/user", middleware.Verify(0), Controllers.CurrentUser)
	app.Post("/api/logout", Controllers.Logout)

	api := app.Group("/api")

	// Daily entries - the operations ledger
	entries := api.Group("/daily-entries", middleware.Verify(1))
	entries.Get("/reference", dailyEntryHandler.GenerateReference)
	entries.Get("/", dailyEntryHandler.GetAll)
	entries.Post("/", dailyEntryHandler.Create)
	entries.Get("/:id", dailyEntryHandler.Get)
	entries.Put("/:id", middleware.Verify(3), dailyEntryHandler.Update)
	entries.Delete("/:id", middleware.Verify(3), dailyEntryHandler.Delete)

	// Purchase orders
	orders := api.Group("/purchase-orders", middleware.Verify(1))
	orders.Get("/reference", purchaseOrderHandler.GenerateReference)
	orders.Get("/", purchaseOrderHandler.GetAll)
	orders.Post("/", middleware.Verify(3), purchaseOrderHandler.Create)
	orders.Get("/:id", purchaseOrderHandler.Get)
	orders.Post("/:id/receive", middleware.Verify(3), purchaseOrderHandler.MarkReceived)

	// Service alerts
	api.Get("/service-alerts", middleware.Verify(1), alertHandler.List)

	// Inventory
	itemTypes := api.Group("/item-types", middleware.Verify(1))
	itemTypes.Get("/", inventoryHandler.GetItemTypes)
	itemTypes.Post("/", middleware.Verify(3), inventoryHandler.CreateItemType)
	itemTypes.Put("/:id", middleware.Verify(3), inventoryHandler.UpdateItemType)
	itemTypes.Post("/:id/stock", middleware.Verify(3), inventoryHandler.AddStock)
	itemTypes.Get("/:id/transactions", inventoryHandler.GetStockTransactions)

	instances := api.Group("/item-instances", middleware.Verify(1))
	instances.Get("/", inventoryHandler.GetItemInstances)
	instances.Get("/:id", inventoryHandler.GetItemInstance)

	api.Post("/stock/reconcile", middleware.Verify(3), inventoryHandler.ReconcileStock)

	// Equipment
	vehicles := api.Group("/vehicles", middleware.Verify(1))
	vehicles.Get("/", equipmentHandler.GetVehicles)
	vehicles.Post("/", middleware.Verify(3), equipmentHandler.CreateVehicle)
	vehicles.Put("/:id", middleware.Verify(3), equipmentHandler.UpdateVehicle)
	vehicles.Delete("/:id", middleware.Verify(3), equipmentHandler.DeleteVehicle)

	compressors := api.Group("/compressors", middleware.Verify(1))
	compressors.Get("/", equipmentHandler.GetCompressors)
	compressors.Post("/", middleware.Verify(3), equipmentHandler.CreateCompressor)
	compressors.Put("/:id", middleware.Verify(3), equipmentHandler.UpdateCompressor)
	compressors.Delete("/:id", middleware.Verify(3), equipmentHandler.DeleteCompressor)

	api.Post("/equipment/:id/service", middleware.Verify(3), equipmentHandler.CompleteService)

	// Reference data
	sites := api.Group("/sites", middleware.Verify(1))
	sites.Get("/", Controllers.GetSites)
	sites.Post("/", middleware.Verify(3), Controllers.CreateSite)
	sites.Put("/:id", middleware.Verify(3), Controllers.UpdateSite)
	sites.Delete("/:id", middleware.Verify(3), Controllers.DeleteSite)

	brands := api.Group("/brands", middleware.Verify(1))
	brands.Get("/", Controllers.GetBrands)
	brands.Post("/", middleware.Verify(3), Controllers.CreateBrand)
	brands.Delete("/:id", middleware.Verify(3), Controllers.DeleteBrand)

	suppliers := api.Group("/suppliers", middleware.Verify(1))
	suppliers.Get("/", Controllers.GetSuppliers)
	suppliers.Post("/", middleware.Verify(3), Controllers.CreateSupplier)
	suppliers.Put("/:id", middleware.Verify(3), Controllers.UpdateSupplier)
	suppliers.Delete("/:id", middleware.Verify(3), Controllers.DeleteSupplier)

	employees := api.Group("/employees", middleware.Verify(1))
	employees.Get("/", Controllers.GetEmployees)
	employees.Post("/", middleware.Verify(3), Controllers.CreateEmployee)
	employees.Put("/:id", middleware.Verify(3), Controllers.UpdateEmployee)
	employees.Delete("/:id", middleware.Verify(3), Controllers.DeleteEmployee)

	// Attendance
	attendance := api.Group("/attendance", middleware.Verify(1))
	attendance.Get("/", attendanceHandler.List)
	attendance.Post("/", attendanceHandler.Mark)

	// Reports
	reports := api.Group("/reports", middleware.Verify(1))
	reports.Get("/daily-entries", reportHandler.ExportDailyEntries)
	reports.Get("/service-alerts", reportHandler.ExportServiceAlerts)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
