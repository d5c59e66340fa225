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

var studentColumns = []string{
	"prn", "name", "gender", "email", "password",
	"bus_number", "bus_stop", "created_at", "updated_at",
}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("prn", "name", "gender", "email", "password", "bus_number", "bus_stop").
		Values(student.PRN, student.Name, student.Gender, student.Email,
			student.Password, student.BusNumber, student.BusStop).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			logger.Warn().Str("email", student.Email).Msg("Attempted to create student with duplicate email")
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Str("prn", student.PRN).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	logger.Info().Str("prn", student.PRN).Msg("Student created successfully")
	return nil
}

// GetByEmail retrieves a student by email (exact, case-sensitive match)
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByPRN retrieves a student by PRN
func (r *StudentRepository) GetByPRN(ctx context.Context, prn string) (*models.Student, error) {
	return r.getOne(ctx, squirrel.Eq{"prn": prn})
}

func (r *StudentRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(pred).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.PRN, &student.Name, &student.Gender, &student.Email, &student.Password,
		&student.BusNumber, &student.BusStop, &student.CreatedAt, &student.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// UpdatePassword replaces the stored credential hash for a student
func (r *StudentRepository) UpdatePassword(ctx context.Context, prn, passwordHash string) error {
	sql, args, err := r.sb.Update("students").
		Set("password", passwordHash).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"prn": prn}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("prn", prn).Msg("Error updating student password")
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	logger.Info().Str("prn", prn).Msg("Student password updated")
	return nil
}

// EmailExists checks if an email is already registered
func (r *StudentRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("students").
		Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("failed to build email exists query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}

	return exists, nil
}
