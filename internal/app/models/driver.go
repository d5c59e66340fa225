package models

import "time"

// Driver defines the driver model based on the 'drivers' table.
// Read-only from the student-facing API surface.
type Driver struct {
	DriverNumber string    `json:"driverNumber" db:"driver_number" example:"DRV-001"`
	Name         string    `json:"name" db:"name" example:"Rajesh Kumar"`
	Gender       Gender    `json:"gender" db:"gender" example:"male"`
	Contact      string    `json:"contact" db:"contact" example:"+91-9876543210"`
	Email        string    `json:"email" db:"email" example:"rajesh.kumar@college.edu"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}
