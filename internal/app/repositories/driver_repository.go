package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
	"github.com/atharvapawar/bustrack/internal/pkg/dberrors"
	"github.com/atharvapawar/bustrack/internal/pkg/logger"
)

// ErrDriverNotFound is returned when no driver matches the lookup key.
var ErrDriverNotFound = errors.New("driver not found")

// DriverRepository handles driver database operations
type DriverRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDriverRepository creates a new DriverRepository
func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create registers a new driver
func (r *DriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	sql, args, err := r.sb.Insert("drivers").
		Columns("driver_number", "name", "gender", "contact", "email").
		Values(driver.DriverNumber, driver.Name, driver.Gender, driver.Contact, driver.Email).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create driver query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "drivers_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("driverNumber", driver.DriverNumber).Msg("Error executing create driver query")
		return fmt.Errorf("error creating driver: %w", err)
	}

	logger.Info().Str("driverNumber", driver.DriverNumber).Msg("Driver created successfully")
	return nil
}

// GetByNumber retrieves a driver by its business key
func (r *DriverRepository) GetByNumber(ctx context.Context, driverNumber string) (*models.Driver, error) {
	sql, args, err := r.sb.Select("driver_number", "name", "gender", "contact", "email", "created_at", "updated_at").
		From("drivers").
		Where(squirrel.Eq{"driver_number": driverNumber}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get driver query: %w", err)
	}

	var driver models.Driver
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&driver.DriverNumber, &driver.Name, &driver.Gender, &driver.Contact,
		&driver.Email, &driver.CreatedAt, &driver.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDriverNotFound
		}
		logger.Error().Err(err).Str("driverNumber", driverNumber).Msg("Error scanning driver row")
		return nil, fmt.Errorf("error retrieving driver: %w", err)
	}

	return &driver, nil
}
