package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/atharvapawar/bustrack/internal/app/models"
	appRepos "github.com/atharvapawar/bustrack/internal/app/repositories"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
	"github.com/atharvapawar/bustrack/internal/pkg/auth"
	"github.com/atharvapawar/bustrack/internal/pkg/dberrors"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

// CreateDefaultData seeds demo drivers, buses and students if they don't
// exist. Students get their PRN as the initial credential, bcrypt-hashed.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data (drivers/buses/students)...")
	var finalErr error

	drivers := []appModels.Driver{
		{DriverNumber: "DRV-001", Name: "Rajesh Kumar", Gender: appModels.GenderMale, Contact: "+91-9876543210", Email: "rajesh.kumar@college.edu"},
		{DriverNumber: "DRV-002", Name: "Suresh Patil", Gender: appModels.GenderMale, Contact: "+91-9876543211", Email: "suresh.patil@college.edu"},
		{DriverNumber: "DRV-003", Name: "Mahesh Singh", Gender: appModels.GenderMale, Contact: "+91-9876543212", Email: "mahesh.singh@college.edu"},
	}
	for i := range drivers {
		if err := repos.DriverRepository.Create(ctx, &drivers[i]); err != nil &&
			!errors.Is(err, apperrors.ErrEmailAlreadyExists) && !isDuplicateKey(err) {
			lgr.Error().Err(err).Str("driverNumber", drivers[i].DriverNumber).Msg("Error seeding driver")
			finalErr = errors.Join(finalErr, err)
		}
	}

	now := time.Now()
	buses := []appModels.Bus{
		{
			BusNumber:          "BUS-001",
			NumberPlate:        "MH12-AB-1234",
			DriverNumber:       strPtr("DRV-001"),
			IsActive:           true,
			CurrentLatitude:    f64Ptr(18.5204),
			CurrentLongitude:   f64Ptr(73.8567),
			LastLocationUpdate: &now,
		},
		{
			BusNumber:    "BUS-002",
			NumberPlate:  "MH12-CD-5678",
			DriverNumber: strPtr("DRV-002"),
		},
		{
			BusNumber:          "BUS-003",
			NumberPlate:        "MH12-EF-9012",
			DriverNumber:       strPtr("DRV-003"),
			IsActive:           true,
			CurrentLatitude:    f64Ptr(18.5314),
			CurrentLongitude:   f64Ptr(73.8446),
			LastLocationUpdate: &now,
		},
	}
	for i := range buses {
		if err := repos.BusRepository.Create(ctx, &buses[i]); err != nil &&
			!apperrors.Is(err, apperrors.ErrBusNumberExists, apperrors.ErrNumberPlateExists, apperrors.ErrDriverAlreadyOnBus) {
			lgr.Error().Err(err).Str("busNumber", buses[i].BusNumber).Msg("Error seeding bus")
			finalErr = errors.Join(finalErr, err)
		}
	}

	students := []struct {
		prn     string
		name    string
		gender  appModels.Gender
		email   string
		bus     string
		busStop string
	}{
		{"PRN001", "Atharva Pawar", appModels.GenderMale, "atharva.pawar@college.edu", "BUS-001", "Pune Station"},
		{"PRN002", "Yash Mulay", appModels.GenderMale, "yash.mulay@college.edu", "BUS-001", "Shivaji Nagar"},
		{"PRN003", "Vaishnavi Hajare", appModels.GenderFemale, "vaishnavi.hajare@college.edu", "BUS-003", "Kothrud"},
		{"PRN004", "Tanvi Patil", appModels.GenderFemale, "tanvi.patil@college.edu", "BUS-003", "Warje"},
	}
	for _, st := range students {
		exists, err := repos.StudentRepository.EmailExists(ctx, st.email)
		if err != nil {
			lgr.Error().Err(err).Str("email", st.email).Msg("Error checking seed student")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if exists {
			continue
		}

		// PRN doubles as the initial credential
		hash, err := auth.HashPassword(st.prn)
		if err != nil {
			lgr.Error().Err(err).Str("prn", st.prn).Msg("Error hashing seed credential")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		student := &appModels.Student{
			PRN:       st.prn,
			Name:      st.name,
			Gender:    st.gender,
			Email:     st.email,
			Password:  hash,
			BusNumber: strPtr(st.bus),
			BusStop:   strPtr(st.busStop),
		}
		if err := repos.StudentRepository.Create(ctx, student); err != nil &&
			!errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("prn", st.prn).Msg("Error seeding student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// isDuplicateKey matches primary-key conflicts on re-seeding
func isDuplicateKey(err error) bool {
	return dberrors.IsUniqueViolation(err)
}
