package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
	"github.com/atharvapawar/bustrack/internal/pkg/dberrors"
	"github.com/atharvapawar/bustrack/internal/pkg/logger"
)

var busColumns = []string{
	"bus_number", "number_plate", "driver_number", "is_active",
	"current_latitude", "current_longitude", "last_location_update",
	"students_alloted", "created_at", "updated_at",
}

// BusRepository handles bus database operations
type BusRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBusRepository creates a new BusRepository
func NewBusRepository(db *pgxpool.Pool) *BusRepository {
	return &BusRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a new bus
func (r *BusRepository) Create(ctx context.Context, bus *models.Bus) error {
	sql, args, err := r.sb.Insert("buses").
		Columns("bus_number", "number_plate", "driver_number", "is_active",
			"current_latitude", "current_longitude", "last_location_update", "students_alloted").
		Values(bus.BusNumber, bus.NumberPlate, bus.DriverNumber, bus.IsActive,
			bus.CurrentLatitude, bus.CurrentLongitude, bus.LastLocationUpdate, bus.StudentsAlloted).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create bus query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "buses_pkey"):
			return apperrors.ErrBusNumberExists
		case dberrors.IsDuplicateConstraintError(err, "buses_number_plate_key"):
			return apperrors.ErrNumberPlateExists
		case dberrors.IsDuplicateConstraintError(err, "buses_driver_number_key"):
			// One driver serves at most one bus
			return apperrors.ErrDriverAlreadyOnBus
		}
		logger.Error().Err(err).Str("busNumber", bus.BusNumber).Msg("Error executing create bus query")
		return fmt.Errorf("error creating bus: %w", err)
	}

	logger.Info().Str("busNumber", bus.BusNumber).Msg("Bus created successfully")
	return nil
}

// GetByNumber retrieves a bus by its business key
func (r *BusRepository) GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error) {
	sql, args, err := r.sb.Select(busColumns...).
		From("buses").
		Where(squirrel.Eq{"bus_number": busNumber}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get bus query: %w", err)
	}

	var bus models.Bus
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&bus.BusNumber, &bus.NumberPlate, &bus.DriverNumber, &bus.IsActive,
		&bus.CurrentLatitude, &bus.CurrentLongitude, &bus.LastLocationUpdate,
		&bus.StudentsAlloted, &bus.CreatedAt, &bus.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBusNotFound
		}
		logger.Error().Err(err).Str("busNumber", busNumber).Msg("Error scanning bus row")
		return nil, fmt.Errorf("error retrieving bus: %w", err)
	}

	return &bus, nil
}

// UpdateLocation overwrites the bus coordinates and timestamp and forces the
// bus active. Concurrent updates race at last-write-wins granularity, which
// is acceptable since only the latest position matters.
func (r *BusRepository) UpdateLocation(ctx context.Context, busNumber string, latitude, longitude float64, at time.Time) error {
	sql, args, err := r.sb.Update("buses").
		Set("current_latitude", latitude).
		Set("current_longitude", longitude).
		Set("last_location_update", at).
		Set("is_active", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"bus_number": busNumber}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update location query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("busNumber", busNumber).Msg("Error updating bus location")
		return fmt.Errorf("error updating bus location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBusNotFound
	}

	logger.Info().
		Str("busNumber", busNumber).
		Float64("latitude", latitude).
		Float64("longitude", longitude).
		Msg("Bus location updated")
	return nil
}
