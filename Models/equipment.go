package Models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Vehicle is a drilling lorry. RPM is the cumulative lifetime meter reading,
// the wear proxy every service schedule is expressed against.
type Vehicle struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	PlateNo string `json:"plate_no" gorm:"not null;uniqueIndex"`
	BrandID *uint  `json:"brand_id"`

	RPM                 float64        `json:"rpm" gorm:"not null;default:0"`
	ServiceSchedule     []float64      `json:"service_schedule" gorm:"-"`
	JSONServiceSchedule datatypes.JSON `json:"-" gorm:"column:service_schedule"`

	Brand *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
}

func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	data, err := json.Marshal(v.ServiceSchedule)
	if err != nil {
		return err
	}
	v.JSONServiceSchedule = data
	return nil
}

func (v *Vehicle) AfterFind(tx *gorm.DB) error {
	if len(v.JSONServiceSchedule) == 0 {
		return nil
	}
	return json.Unmarshal(v.JSONServiceSchedule, &v.ServiceSchedule)
}

// Compressor is tracked separately from the lorry carrying it; it wears on its
// own meter and has its own schedule.
type Compressor struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null"`
	SerialNo  string `json:"serial_no" gorm:"not null;uniqueIndex"`
	VehicleID *uint  `json:"vehicle_id"` // lorry it is currently mounted on

	RPM                 float64        `json:"rpm" gorm:"not null;default:0"`
	ServiceSchedule     []float64      `json:"service_schedule" gorm:"-"`
	JSONServiceSchedule datatypes.JSON `json:"-" gorm:"column:service_schedule"`

	Vehicle *Vehicle `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
}

func (c *Compressor) BeforeSave(tx *gorm.DB) error {
	data, err := json.Marshal(c.ServiceSchedule)
	if err != nil {
		return err
	}
	c.JSONServiceSchedule = data
	return nil
}

func (c *Compressor) AfterFind(tx *gorm.DB) error {
	if len(c.JSONServiceSchedule) == 0 {
		return nil
	}
	return json.Unmarshal(c.JSONServiceSchedule, &c.ServiceSchedule)
}
