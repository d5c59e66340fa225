// Package models defines the database-backed entities of the bus tracking API.
package models

// Gender enumerates the gender values accepted for students and drivers.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)
