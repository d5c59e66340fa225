package dto

// LoginRequest is the login payload. The secret field is named "prn" on the
// wire because the PRN doubles as the default credential.
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
	PRN   string `json:"prn" binding:"required"`
}

// LoginResponse is returned on successful authentication.
type LoginResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Student *StudentProfile `json:"student"`
}

// StudentProfile is the student view returned by login. It never carries
// credential material.
type StudentProfile struct {
	PRN     string         `json:"prn"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Gender  string         `json:"gender"`
	Bus     *BusSummary    `json:"bus,omitempty"`
	Driver  *DriverSummary `json:"driver,omitempty"`
	BusStop string         `json:"busStop,omitempty"`
}

// BusSummary is the compact bus view embedded in the login response.
type BusSummary struct {
	BusNumber   string `json:"busNumber"`
	NumberPlate string `json:"numberPlate"`
	IsActive    bool   `json:"isActive"`
}

// DriverSummary is the compact driver view embedded in the login response.
type DriverSummary struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ChangePasswordRequest updates the authenticated student's credential.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}
