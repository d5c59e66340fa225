package models

import "time"

// Student defines the student model based on the 'students' table.
// PRN is the primary key and is immutable once assigned; it also serves as
// the student's initial login credential (hashed at seed time).
type Student struct {
	PRN       string    `json:"prn" db:"prn" example:"PRN001"`
	Name      string    `json:"name" db:"name" example:"Atharva Pawar"`
	Gender    Gender    `json:"gender" db:"gender" example:"male"`
	Email     string    `json:"email" db:"email" example:"atharva.pawar@college.edu"`
	Password  string    `json:"-" db:"password"` // bcrypt digest, excluded from JSON
	BusNumber *string   `json:"busNumber,omitempty" db:"bus_number" example:"BUS-001"`
	BusStop   *string   `json:"busStop,omitempty" db:"bus_stop" example:"Pune Station"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Bus *Bus `json:"bus,omitempty"`
}
