package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")

	// ErrInvalidSeries is returned when a chart series breaks its shape invariant
	ErrInvalidSeries = errors.New("invalid chart series")
)

// Names of the chart series kept in the store
const (
	SeriesProfitLoss        = "profitLoss"
	SeriesTruckPerformance  = "truckPerformance"
	SeriesDriverPerformance = "driverPerformance"
)

// Snapshot is the complete seed of a record store
type Snapshot struct {
	Summary DashboardSummary
	Trucks  []Truck
	Drivers []Driver
	Series  []ChartSeries
}

// RecordStore is the read-only source of fleet records.
// Every returned value is a copy; callers may modify it freely.
type RecordStore interface {
	// GetTrucks returns all trucks in seed order
	GetTrucks(ctx context.Context) ([]Truck, error)

	// GetTruck retrieves a truck by ID
	GetTruck(ctx context.Context, truckID string) (*Truck, error)

	// GetDrivers returns all drivers in seed order
	GetDrivers(ctx context.Context) ([]Driver, error)

	// GetDriver retrieves a driver by ID
	GetDriver(ctx context.Context, driverID string) (*Driver, error)

	// GetTrips returns the trips of every truck, truck by truck
	GetTrips(ctx context.Context) ([]Trip, error)

	// GetTrip retrieves a trip by ID
	GetTrip(ctx context.Context, tripID string) (*Trip, error)

	// GetChartSeries retrieves a chart series by name
	GetChartSeries(ctx context.Context, name string) (*ChartSeries, error)

	// GetSummary returns the dashboard header figures
	GetSummary(ctx context.Context) (*DashboardSummary, error)
}
