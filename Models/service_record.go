package Models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ServiceKindVehicle    = "vehicle"
	ServiceKindCompressor = "compressor"
	ServiceKindItem       = "item"
)

// ServiceRecord marks a completed service, pinned to the counter reading the
// equipment carried at the time.
type ServiceRecord struct {
	gorm.Model
	Kind           string     `json:"kind" gorm:"not null;index"`
	VehicleID      *uint      `json:"vehicle_id"`
	CompressorID   *uint      `json:"compressor_id"`
	ItemInstanceID *uint      `json:"item_instance_id"`
	DailyEntryID   *uint      `json:"daily_entry_id"`
	Reading        float64    `json:"reading" gorm:"not null"`
	Date           time.Time  `json:"date" gorm:"not null"`
	Notes          string     `json:"notes"`
	CreatedBy      string     `json:"created_by"`

	Vehicle      *Vehicle      `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Compressor   *Compressor   `json:"compressor,omitempty" gorm:"foreignKey:CompressorID"`
	ItemInstance *ItemInstance `json:"item_instance,omitempty" gorm:"foreignKey:ItemInstanceID"`
}
