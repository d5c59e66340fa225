package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/repositories"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
)

// AssociationResolver follows the foreign-key references from a student to
// its bus and from the bus to its driver. Resolution is total: a missing or
// dangling reference yields nil, never an error. Absence of a bus assignment
// is a normal state.
type AssociationResolver struct {
	busRepo    repositories.IBusRepository
	driverRepo repositories.IDriverRepository
	logger     zerolog.Logger
}

// NewAssociationResolver creates a new AssociationResolver
func NewAssociationResolver(
	busRepo repositories.IBusRepository,
	driverRepo repositories.IDriverRepository,
	logger zerolog.Logger,
) *AssociationResolver {
	return &AssociationResolver{
		busRepo:    busRepo,
		driverRepo: driverRepo,
		logger:     logger,
	}
}

// Resolve returns the student's bus and that bus's driver, either of which
// may be nil. Only unexpected store failures surface as errors.
func (r *AssociationResolver) Resolve(ctx context.Context, student *models.Student) (*models.Bus, *models.Driver, error) {
	if student.BusNumber == nil || *student.BusNumber == "" {
		return nil, nil, nil
	}

	bus, err := r.busRepo.GetByNumber(ctx, *student.BusNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrBusNotFound) {
			// Dangling reference, treated the same as no assignment
			r.logger.Warn().
				Str("prn", student.PRN).
				Str("busNumber", *student.BusNumber).
				Msg("Student references a bus that does not exist")
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to resolve bus: %w", err)
	}

	if bus.DriverNumber == nil || *bus.DriverNumber == "" {
		return bus, nil, nil
	}

	driver, err := r.driverRepo.GetByNumber(ctx, *bus.DriverNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrDriverNotFound) {
			r.logger.Warn().
				Str("busNumber", bus.BusNumber).
				Str("driverNumber", *bus.DriverNumber).
				Msg("Bus references a driver that does not exist")
			return bus, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to resolve driver: %w", err)
	}

	return bus, driver, nil
}
