package Ledger

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"DrillOps/Models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestLedger opens a fresh in-memory database for one test. The shared
// cache keeps all pooled connections on the same database.
func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Models.Migrate(db))

	return NewLedger(db)
}

func seedSite(t *testing.T, db *gorm.DB, name string) Models.Site {
	t.Helper()
	site := Models.Site{Name: name, District: "Ballari"}
	require.NoError(t, db.Create(&site).Error)
	return site
}

func seedEmployee(t *testing.T, db *gorm.DB, name string) Models.Employee {
	t.Helper()
	employee := Models.Employee{Name: name, Role: "operator"}
	require.NoError(t, db.Create(&employee).Error)
	return employee
}

func seedVehicle(t *testing.T, db *gorm.DB, plateNo string, rpm float64, schedule []float64) Models.Vehicle {
	t.Helper()
	vehicle := Models.Vehicle{
		Name:            "Lorry " + plateNo,
		PlateNo:         plateNo,
		RPM:             rpm,
		ServiceSchedule: schedule,
	}
	require.NoError(t, db.Create(&vehicle).Error)
	return vehicle
}

func seedCompressor(t *testing.T, db *gorm.DB, serialNo string, rpm float64, schedule []float64) Models.Compressor {
	t.Helper()
	compressor := Models.Compressor{
		Name:            "Compressor " + serialNo,
		SerialNo:        serialNo,
		RPM:             rpm,
		ServiceSchedule: schedule,
	}
	require.NoError(t, db.Create(&compressor).Error)
	return compressor
}

func seedItemType(t *testing.T, db *gorm.DB, name string, stock float64) Models.ItemType {
	t.Helper()
	itemType := Models.ItemType{Name: name, Unit: "pcs", Stock: stock, Trackable: true}
	require.NoError(t, db.Create(&itemType).Error)
	return itemType
}

func seedItemInstance(t *testing.T, db *gorm.DB, itemTypeID uint, label, status string, rpm float64, schedule []float64) Models.ItemInstance {
	t.Helper()
	instance := Models.ItemInstance{
		ItemTypeID:      itemTypeID,
		Label:           label,
		Status:          status,
		CurrentRPM:      rpm,
		ServiceSchedule: schedule,
	}
	require.NoError(t, db.Create(&instance).Error)
	return instance
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) Models.Supplier {
	t.Helper()
	supplier := Models.Supplier{Name: name, GSTNumber: "29ABCDE1234F1Z5"}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
