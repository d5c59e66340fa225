package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/models/dto"
	"github.com/atharvapawar/bustrack/internal/app/repositories"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
	"github.com/atharvapawar/bustrack/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService struct {
	studentRepo repositories.IStudentRepository
	resolver    *AssociationResolver
	jwtService  *auth.JWTService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo repositories.IStudentRepository,
	resolver *AssociationResolver,
	jwtService *auth.JWTService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		resolver:    resolver,
		jwtService:  jwtService,
		logger:      logger,
	}
}

// Login authenticates a student by email and PRN credential and issues a
// bearer token. Unknown email and wrong secret are indistinguishable in the
// returned error.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.PRN) == "" {
		return nil, fmt.Errorf("%w: email and PRN are required", apperrors.ErrValidationFailed)
	}

	student, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up student: %w", err)
	}

	// Hash mode only; plaintext rows are migrated to bcrypt at startup
	if !auth.CheckPassword(student.Password, req.PRN) {
		return nil, apperrors.ErrInvalidCredentials
	}

	bus, driver, err := s.resolver.Resolve(ctx, student)
	if err != nil {
		return nil, err
	}

	token, _, err := s.jwtService.GenerateToken(student.PRN)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	s.logger.Info().Str("prn", student.PRN).Msg("Student logged in successfully")

	return &dto.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Student: buildStudentProfile(student, bus, driver),
	}, nil
}

// ChangePassword replaces the student's credential hash after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, prn string, req *dto.ChangePasswordRequest) error {
	student, err := s.studentRepo.GetByPRN(ctx, prn)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(student.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.studentRepo.UpdatePassword(ctx, prn, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	s.logger.Info().Str("prn", prn).Msg("Student password changed")
	return nil
}

// buildStudentProfile assembles the login profile view. The credential hash
// never leaves the service layer.
func buildStudentProfile(student *models.Student, bus *models.Bus, driver *models.Driver) *dto.StudentProfile {
	profile := &dto.StudentProfile{
		PRN:    student.PRN,
		Name:   student.Name,
		Email:  student.Email,
		Gender: string(student.Gender),
	}

	if student.BusStop != nil {
		profile.BusStop = *student.BusStop
	}

	if bus != nil {
		profile.Bus = &dto.BusSummary{
			BusNumber:   bus.BusNumber,
			NumberPlate: bus.NumberPlate,
			IsActive:    bus.IsActive,
		}
	}

	if driver != nil {
		profile.Driver = &dto.DriverSummary{
			Name:    driver.Name,
			Contact: driver.Contact,
		}
	}

	return profile
}
