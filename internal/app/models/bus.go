package models

import "time"

// Bus defines the bus model based on the 'buses' table. The business key
// bus_number is the primary key; the driver reference is by driver_number
// and is UNIQUE, so a driver can serve at most one bus.
type Bus struct {
	BusNumber          string     `json:"busNumber" db:"bus_number" example:"BUS-001"`
	NumberPlate        string     `json:"numberPlate" db:"number_plate" example:"MH12-AB-1234"`
	DriverNumber       *string    `json:"driverNumber,omitempty" db:"driver_number" example:"DRV-001"`
	IsActive           bool       `json:"isActive" db:"is_active" example:"true"`
	CurrentLatitude    *float64   `json:"currentLatitude,omitempty" db:"current_latitude"`
	CurrentLongitude   *float64   `json:"currentLongitude,omitempty" db:"current_longitude"`
	LastLocationUpdate *time.Time `json:"lastLocationUpdate,omitempty" db:"last_location_update"`
	StudentsAlloted    int        `json:"studentsAlloted" db:"students_alloted"`
	CreatedAt          time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time  `json:"updatedAt" db:"updated_at"`

	// Relation (populated when needed)
	Driver *Driver `json:"driver,omitempty"`
}

// HasLocation reports whether the bus carries a usable coordinate pair.
// Coordinates from a prior active period are not meaningful on their own;
// callers must also check IsActive.
func (b *Bus) HasLocation() bool {
	return b.CurrentLatitude != nil && b.CurrentLongitude != nil
}
