package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/repositories/mock"
	"github.com/atharvapawar/bustrack/internal/app/services"
)

func TestResolveTotality(t *testing.T) {
	tests := []struct {
		name       string
		busNumber  *string
		buses      []*models.Bus
		drivers    []*models.Driver
		wantBus    bool
		wantDriver bool
	}{
		{
			name: "no assignment",
		},
		{
			name:      "empty assignment",
			busNumber: strPtr(""),
		},
		{
			name:      "dangling bus reference",
			busNumber: strPtr("BUS-GONE"),
		},
		{
			name:      "bus without driver",
			busNumber: strPtr("BUS-001"),
			buses:     []*models.Bus{{BusNumber: "BUS-001", NumberPlate: "MH12AB1234"}},
			wantBus:   true,
		},
		{
			name:      "dangling driver reference",
			busNumber: strPtr("BUS-001"),
			buses:     []*models.Bus{{BusNumber: "BUS-001", NumberPlate: "MH12AB1234", DriverNumber: strPtr("DRV-GONE")}},
			wantBus:   true,
		},
		{
			name:       "fully resolved",
			busNumber:  strPtr("BUS-001"),
			buses:      []*models.Bus{{BusNumber: "BUS-001", NumberPlate: "MH12AB1234", DriverNumber: strPtr("DRV-001")}},
			drivers:    []*models.Driver{{DriverNumber: "DRV-001", Name: "Ramesh Kulkarni"}},
			wantBus:    true,
			wantDriver: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			busRepo := mock.NewBusRepo()
			driverRepo := mock.NewDriverRepo()
			for _, b := range tt.buses {
				if err := busRepo.Create(context.Background(), b); err != nil {
					t.Fatalf("seed bus: %v", err)
				}
			}
			for _, d := range tt.drivers {
				if err := driverRepo.Create(context.Background(), d); err != nil {
					t.Fatalf("seed driver: %v", err)
				}
			}

			resolver := services.NewAssociationResolver(busRepo, driverRepo, zerolog.Nop())
			bus, driver, err := resolver.Resolve(context.Background(), &models.Student{
				PRN:       "PRN001",
				BusNumber: tt.busNumber,
			})
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if (bus != nil) != tt.wantBus {
				t.Errorf("bus = %+v, wantBus = %v", bus, tt.wantBus)
			}
			if (driver != nil) != tt.wantDriver {
				t.Errorf("driver = %+v, wantDriver = %v", driver, tt.wantDriver)
			}
		})
	}
}

func TestResolveStoreFailure(t *testing.T) {
	busRepo := mock.NewBusRepo()
	driverRepo := mock.NewDriverRepo()
	storeErr := errors.New("connection reset")
	busRepo.Err = storeErr

	resolver := services.NewAssociationResolver(busRepo, driverRepo, zerolog.Nop())
	_, _, err := resolver.Resolve(context.Background(), &models.Student{
		PRN:       "PRN001",
		BusNumber: strPtr("BUS-001"),
	})
	if !errors.Is(err, storeErr) {
		t.Fatalf("err = %v, want wrapped store error", err)
	}
}
