package Models

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
}

// Migrate runs AutoMigrate ordered so foreign keys resolve.
func Migrate(db *gorm.DB) error {
	// 1. Base reference data with no dependencies
	if err := db.AutoMigrate(
		&User{},
		&Site{},
		&Brand{},
		&Supplier{},
		&Employee{},
	); err != nil {
		return err
	}

	// 2. Equipment and inventory masters
	if err := db.AutoMigrate(
		&Vehicle{},
		&Compressor{},
		&ItemType{},
		&ItemInstance{},
		&Attendance{},
	); err != nil {
		return err
	}

	// 3. Transactional records depending on the above
	return db.AutoMigrate(
		&DailyEntry{},
		&DailyEntryEmployee{},
		&StockTransaction{},
		&PurchaseOrder{},
		&PurchaseOrderLine{},
		&ServiceRecord{},
	)
}
