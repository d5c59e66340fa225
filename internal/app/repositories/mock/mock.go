// Package mock provides in-memory repository implementations for tests.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/repositories"
	"github.com/atharvapawar/bustrack/internal/pkg/apperrors"
)

// StudentRepo is an in-memory IStudentRepository.
type StudentRepo struct {
	mu       sync.Mutex
	Students map[string]*models.Student // keyed by PRN
	Err      error                      // forced error for failure-path tests
}

func NewStudentRepo() *StudentRepo {
	return &StudentRepo{Students: make(map[string]*models.Student)}
}

func (r *StudentRepo) Create(ctx context.Context, student *models.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *student
	r.Students[student.PRN] = &cp
	return nil
}

func (r *StudentRepo) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, s := range r.Students {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (r *StudentRepo) GetByPRN(ctx context.Context, prn string) (*models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s, ok := r.Students[prn]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *StudentRepo) UpdatePassword(ctx context.Context, prn, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	s, ok := r.Students[prn]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.Password = passwordHash
	return nil
}

func (r *StudentRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	for _, s := range r.Students {
		if s.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// BusRepo is an in-memory IBusRepository.
type BusRepo struct {
	mu    sync.Mutex
	Buses map[string]*models.Bus // keyed by bus number
	Err   error
}

func NewBusRepo() *BusRepo {
	return &BusRepo{Buses: make(map[string]*models.Bus)}
}

func (r *BusRepo) Create(ctx context.Context, bus *models.Bus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.Buses[bus.BusNumber]; ok {
		return apperrors.ErrBusNumberExists
	}
	cp := *bus
	r.Buses[bus.BusNumber] = &cp
	return nil
}

func (r *BusRepo) GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	b, ok := r.Buses[busNumber]
	if !ok {
		return nil, apperrors.ErrBusNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *BusRepo) UpdateLocation(ctx context.Context, busNumber string, latitude, longitude float64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	b, ok := r.Buses[busNumber]
	if !ok {
		return apperrors.ErrBusNotFound
	}
	b.CurrentLatitude = &latitude
	b.CurrentLongitude = &longitude
	b.LastLocationUpdate = &at
	b.IsActive = true
	return nil
}

// DriverRepo is an in-memory IDriverRepository.
type DriverRepo struct {
	mu      sync.Mutex
	Drivers map[string]*models.Driver // keyed by driver number
	Err     error
}

func NewDriverRepo() *DriverRepo {
	return &DriverRepo{Drivers: make(map[string]*models.Driver)}
}

func (r *DriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	cp := *driver
	r.Drivers[driver.DriverNumber] = &cp
	return nil
}

func (r *DriverRepo) GetByNumber(ctx context.Context, driverNumber string) (*models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.Drivers[driverNumber]
	if !ok {
		return nil, repositories.ErrDriverNotFound
	}
	cp := *d
	return &cp, nil
}
