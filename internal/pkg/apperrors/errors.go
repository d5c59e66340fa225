package apperrors

import "errors"

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Resource errors
var (
	ErrStudentNotFound     = errors.New("student not found")
	ErrBusNotFound         = errors.New("bus not found")
	ErrNoBusAssigned       = errors.New("no bus assigned to this student")
	ErrBusNumberExists     = errors.New("bus number already exists")
	ErrNumberPlateExists   = errors.New("number plate already exists")
	ErrDriverAlreadyOnBus  = errors.New("driver is already assigned to another bus")
	ErrEmailAlreadyExists  = errors.New("email already exists")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
)

// Is reports whether err matches target or any of the extra errors.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
