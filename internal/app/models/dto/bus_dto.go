package dto

import "time"

// BusDetailsResponse is returned by GET /bus/details. Driver fields are
// omitted when the bus has no assigned driver.
type BusDetailsResponse struct {
	BusNumber   string  `json:"busNumber"`
	NumberPlate string  `json:"numberPlate"`
	IsActive    bool    `json:"isActive"`
	DriverName  *string `json:"driverName,omitempty"`
	DriverPhone *string `json:"driverPhone,omitempty"`
}

// BusLocationResponse is returned by GET /bus/location. An inactive bus is a
// normal 200 response with IsActive false, never an error.
type BusLocationResponse struct {
	IsActive    bool       `json:"isActive"`
	HasLocation *bool      `json:"hasLocation,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	LastUpdate  *time.Time `json:"lastUpdate,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// ETAResponse is returned by GET /bus/eta.
type ETAResponse struct {
	IsActive bool   `json:"isActive"`
	ETA      *int   `json:"eta,omitempty"`
	BusStop  string `json:"busStop,omitempty"`
	Message  string `json:"message"`
}

// UpdateLocationRequest reports a bus position. Coordinates are pointers so
// that binding rejects missing fields without rejecting zero values.
type UpdateLocationRequest struct {
	BusNumber string   `json:"busNumber" binding:"required"`
	Latitude  *float64 `json:"latitude" binding:"required"`
	Longitude *float64 `json:"longitude" binding:"required"`
}

// CreateBusRequest registers a new bus.
type CreateBusRequest struct {
	BusNumber    string  `json:"busNumber" binding:"required"`
	NumberPlate  string  `json:"numberPlate" binding:"required"`
	DriverNumber *string `json:"driverNumber,omitempty"`
}

// CreateBusResponse confirms bus creation.
type CreateBusResponse struct {
	Message   string `json:"message"`
	BusNumber string `json:"busNumber"`
}
