package Models

import (
	"time"

	"gorm.io/gorm"
)

// Site is a drilling location the fleet operates at.
type Site struct {
	gorm.Model
	Name     string `json:"name" gorm:"not null;uniqueIndex"`
	District string `json:"district"`
	Contact  string `json:"contact"`
}

type Brand struct {
	gorm.Model
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}

type Supplier struct {
	gorm.Model
	Name      string `json:"name" gorm:"not null;uniqueIndex"`
	Phone     string `json:"phone"`
	GSTNumber string `json:"gst_number"`
	Address   string `json:"address"`
}

type Employee struct {
	gorm.Model
	Name  string `json:"name" gorm:"not null"`
	Role  string `json:"role"` // driver, operator, helper
	Phone string `json:"phone"`
}

// Attendance is one employee's presence record for a day.
// One row per employee per day.
type Attendance struct {
	gorm.Model
	EmployeeID uint      `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date       time.Time `json:"date" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	SiteID     *uint     `json:"site_id"`
	Status     string    `json:"status" gorm:"not null"` // present, absent, half_day
	Notes      string    `json:"notes"`

	Employee Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
}
