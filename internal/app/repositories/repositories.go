package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atharvapawar/bustrack/internal/app/models"
)

// IStudentRepository defines student-related database operations
type IStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	GetByPRN(ctx context.Context, prn string) (*models.Student, error)
	UpdatePassword(ctx context.Context, prn, passwordHash string) error
	EmailExists(ctx context.Context, email string) (bool, error)
}

// IBusRepository defines bus-related database operations
type IBusRepository interface {
	Create(ctx context.Context, bus *models.Bus) error
	GetByNumber(ctx context.Context, busNumber string) (*models.Bus, error)
	UpdateLocation(ctx context.Context, busNumber string, latitude, longitude float64, at time.Time) error
}

// IDriverRepository defines driver-related database operations
type IDriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByNumber(ctx context.Context, driverNumber string) (*models.Driver, error)
}

// Repositories bundles all repositories behind one constructor.
type Repositories struct {
	StudentRepository *StudentRepository
	BusRepository     *BusRepository
	DriverRepository  *DriverRepository
}

// NewRepositories creates the repository container
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		BusRepository:     NewBusRepository(db),
		DriverRepository:  NewDriverRepository(db),
	}
}
