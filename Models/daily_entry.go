package Models

import (
	"time"

	"gorm.io/gorm"
)

// DailyEntry is one reported operational day for a drilling lorry. Opening and
// closing RPM pairs are the raw meter readings; cumulative counters on the
// vehicle and compressor are updated once, at submission time.
type DailyEntry struct {
	gorm.Model
	Code       string    `json:"code" gorm:"not null;uniqueIndex"`
	Date       time.Time `json:"date" gorm:"not null;index"`
	SiteID     uint      `json:"site_id" gorm:"not null;index"`
	VehicleID  uint      `json:"vehicle_id" gorm:"not null;index"`
	CompressorID *uint   `json:"compressor_id"`

	VehicleOpeningRPM    float64 `json:"vehicle_opening_rpm"`
	VehicleClosingRPM    float64 `json:"vehicle_closing_rpm"`
	CompressorOpeningRPM float64 `json:"compressor_opening_rpm"`
	CompressorClosingRPM float64 `json:"compressor_closing_rpm"`

	DieselUsed    float64 `json:"diesel_used"`
	MetersDrilled float64 `json:"meters_drilled"`
	HolesDrilled  int     `json:"holes_drilled"`

	EmployeeID uint   `json:"employee_id" gorm:"not null"` // primary operator
	Notes      string `json:"notes" gorm:"type:text"`

	VehicleServiceDone    bool `json:"vehicle_service_done"`
	CompressorServiceDone bool `json:"compressor_service_done"`

	CreatedBy string `json:"created_by"`

	Site         Site                 `json:"site,omitempty" gorm:"foreignKey:SiteID"`
	Vehicle      Vehicle              `json:"vehicle,omitempty" gorm:"foreignKey:VehicleID"`
	Compressor   *Compressor          `json:"compressor,omitempty" gorm:"foreignKey:CompressorID"`
	Employee     Employee             `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Participants []DailyEntryEmployee `json:"participants,omitempty" gorm:"foreignKey:DailyEntryID;constraint:OnDelete:CASCADE"`
}

// DailyEntryEmployee links an entry to everyone who worked that day,
// the primary operator included.
type DailyEntryEmployee struct {
	gorm.Model
	DailyEntryID uint `json:"daily_entry_id" gorm:"not null;uniqueIndex:idx_entry_employee"`
	EmployeeID   uint `json:"employee_id" gorm:"not null;uniqueIndex:idx_entry_employee"`

	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}

func (DailyEntry) TableName() string {
	return "daily_entries"
}
