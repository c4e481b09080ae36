package Models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item instance lifecycle states. Removed instances are reusable, so removal
// returns them to in_stock rather than a terminal state.
const (
	ItemStatusInStock = "in_stock"
	ItemStatusFitted  = "fitted"
)

// ItemType is a spare-part type (hammer, bit, seal kit). Stock is a cached
// projection of the stock-transaction ledger; the ledger is authoritative.
type ItemType struct {
	gorm.Model
	Name      string  `json:"name" gorm:"not null;uniqueIndex"`
	Unit      string  `json:"unit"`
	BrandID   *uint   `json:"brand_id"`
	Stock     float64 `json:"stock" gorm:"not null;default:0"`
	MinStock  float64 `json:"min_stock" gorm:"not null;default:0"`
	Trackable bool    `json:"trackable" gorm:"not null;default:false"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

// ItemInstance is one physically serialized unit of a trackable item type.
// FittedVehicleID is non-nil exactly when Status is fitted.
type ItemInstance struct {
	gorm.Model
	ItemTypeID uint   `json:"item_type_id" gorm:"not null;index"`
	Label      string `json:"label" gorm:"not null;uniqueIndex"`
	Status     string `json:"status" gorm:"not null;default:in_stock"`

	CurrentMeter float64 `json:"current_meter" gorm:"not null;default:0"`
	CurrentRPM   float64 `json:"current_rpm" gorm:"not null;default:0"`

	FittedVehicleID *uint      `json:"fitted_vehicle_id"`
	FittedDate      *time.Time `json:"fitted_date"`
	RemovedDate     *time.Time `json:"removed_date"`

	ServiceSchedule     []float64      `json:"service_schedule" gorm:"-"`
	JSONServiceSchedule datatypes.JSON `json:"-" gorm:"column:service_schedule"`

	ItemType      ItemType `json:"item_type,omitempty" gorm:"foreignKey:ItemTypeID"`
	FittedVehicle *Vehicle `json:"fitted_vehicle,omitempty" gorm:"foreignKey:FittedVehicleID"`
}

func (i *ItemInstance) BeforeSave(tx *gorm.DB) error {
	data, err := json.Marshal(i.ServiceSchedule)
	if err != nil {
		return err
	}
	i.JSONServiceSchedule = data
	return nil
}

func (i *ItemInstance) AfterFind(tx *gorm.DB) error {
	if len(i.JSONServiceSchedule) == 0 {
		return nil
	}
	return json.Unmarshal(i.JSONServiceSchedule, &i.ServiceSchedule)
}
