package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/app/repositories"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
)

const busInactiveMessage = "Your Bus isn't active right now"

// Estimator computes an arrival estimate in minutes for an active bus.
// The default is a placeholder; the contract is the [5, 35] range and the
// message format, not the algorithm.
type Estimator func(bus *models.Bus) int

// DefaultEstimator returns a pseudo-random estimate between 5 and 35 minutes.
func DefaultEstimator(_ *models.Bus) int {
	return rand.IntN(31) + 5
}

// BusService handles the student-facing bus read operations and the
// tracker-facing write operations.
type BusService struct {
	studentRepo repositories.IStudentRepository
	busRepo     repositories.IBusRepository
	resolver    *AssociationResolver
	estimator   Estimator
	logger      zerolog.Logger
}

// NewBusService creates a new BusService
func NewBusService(
	studentRepo repositories.IStudentRepository,
	busRepo repositories.IBusRepository,
	resolver *AssociationResolver,
	estimator Estimator,
	logger zerolog.Logger,
) *BusService {
	if estimator == nil {
		estimator = DefaultEstimator
	}
	return &BusService{
		studentRepo: studentRepo,
		busRepo:     busRepo,
		resolver:    resolver,
		estimator:   estimator,
		logger:      logger,
	}
}

// resolveStudentBus loads the student behind a token and resolves its bus
// and driver.
func (s *BusService) resolveStudentBus(ctx context.Context, prn string) (*models.Student, *models.Bus, *models.Driver, error) {
	student, err := s.studentRepo.GetByPRN(ctx, prn)
	if err != nil {
		return nil, nil, nil, err
	}

	bus, driver, err := s.resolver.Resolve(ctx, student)
	if err != nil {
		return nil, nil, nil, err
	}

	return student, bus, driver, nil
}

// GetBusDetails returns the assigned bus and its driver for a student.
func (s *BusService) GetBusDetails(ctx context.Context, prn string) (*dto.BusDetailsResponse, error) {
	_, bus, driver, err := s.resolveStudentBus(ctx, prn)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperrors.ErrNoBusAssigned
	}

	resp := &dto.BusDetailsResponse{
		BusNumber:   bus.BusNumber,
		NumberPlate: bus.NumberPlate,
		IsActive:    bus.IsActive,
	}
	if driver != nil {
		resp.DriverName = &driver.Name
		resp.DriverPhone = &driver.Contact
	}

	return resp, nil
}

// GetBusLocation returns the last reported position of the student's bus.
// An inactive bus or a bus without GPS data is a successful response, not an
// error; stale coordinates from a prior active period are never returned.
func (s *BusService) GetBusLocation(ctx context.Context, prn string) (*dto.BusLocationResponse, error) {
	_, bus, _, err := s.resolveStudentBus(ctx, prn)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperrors.ErrNoBusAssigned
	}

	if !bus.IsActive {
		return &dto.BusLocationResponse{
			IsActive: false,
			Message:  busInactiveMessage,
		}, nil
	}

	if !bus.HasLocation() {
		hasLocation := false
		return &dto.BusLocationResponse{
			IsActive:    true,
			HasLocation: &hasLocation,
			Message:     "GPS location not available",
		}, nil
	}

	hasLocation := true
	return &dto.BusLocationResponse{
		IsActive:    true,
		HasLocation: &hasLocation,
		Latitude:    bus.CurrentLatitude,
		Longitude:   bus.CurrentLongitude,
		LastUpdate:  bus.LastLocationUpdate,
	}, nil
}

// GetETA returns an arrival estimate for the student's bus.
func (s *BusService) GetETA(ctx context.Context, prn string) (*dto.ETAResponse, error) {
	student, bus, _, err := s.resolveStudentBus(ctx, prn)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		return nil, apperrors.ErrNoBusAssigned
	}

	if !bus.IsActive {
		return &dto.ETAResponse{
			IsActive: false,
			Message:  busInactiveMessage,
		}, nil
	}

	eta := s.estimator(bus)
	busStop := "Your Stop"
	if student.BusStop != nil && *student.BusStop != "" {
		busStop = *student.BusStop
	}

	return &dto.ETAResponse{
		IsActive: true,
		ETA:      &eta,
		BusStop:  busStop,
		Message:  fmt.Sprintf("Bus will arrive in approximately %d minutes", eta),
	}, nil
}

// UpdateLocation stores a tracker-reported position and marks the bus active.
func (s *BusService) UpdateLocation(ctx context.Context, req *dto.UpdateLocationRequest) error {
	err := s.busRepo.UpdateLocation(ctx, req.BusNumber, *req.Latitude, *req.Longitude, time.Now())
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("busNumber", req.BusNumber).
		Float64("latitude", *req.Latitude).
		Float64("longitude", *req.Longitude).
		Msg("Bus location reported")
	return nil
}

// CreateBus registers a new bus, inactive and without coordinates.
func (s *BusService) CreateBus(ctx context.Context, req *dto.CreateBusRequest) (*dto.CreateBusResponse, error) {
	bus := &models.Bus{
		BusNumber:    req.BusNumber,
		NumberPlate:  req.NumberPlate,
		DriverNumber: req.DriverNumber,
	}

	if err := s.busRepo.Create(ctx, bus); err != nil {
		return nil, err
	}

	return &dto.CreateBusResponse{
		Message:   "Bus created successfully",
		BusNumber: bus.BusNumber,
	}, nil
}
