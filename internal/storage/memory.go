package storage

import (
	"context"
	"fmt"
)

// MemoryRecordStore implements RecordStore over a snapshot held in memory.
// The snapshot is never mutated after construction, so concurrent reads need no lock.
type MemoryRecordStore struct {
	snapshot Snapshot
	trucks   map[string]int
	drivers  map[string]int
	trips    map[string][2]int // truck index, trip index
	series   map[string]int
}

// NewMemoryRecordStore creates a store seeded with a copy of snapshot
func NewMemoryRecordStore(snapshot Snapshot) (*MemoryRecordStore, error) {
	m := &MemoryRecordStore{
		snapshot: cloneSnapshot(snapshot),
		trucks:   make(map[string]int),
		drivers:  make(map[string]int),
		trips:    make(map[string][2]int),
		series:   make(map[string]int),
	}

	for i, truck := range m.snapshot.Trucks {
		if _, exists := m.trucks[truck.ID]; exists {
			return nil, fmt.Errorf("truck %s already exists", truck.ID)
		}
		m.trucks[truck.ID] = i
		for j, trip := range truck.Trips {
			if _, exists := m.trips[trip.ID]; exists {
				return nil, fmt.Errorf("trip %s already exists", trip.ID)
			}
			m.trips[trip.ID] = [2]int{i, j}
		}
	}
	for i, driver := range m.snapshot.Drivers {
		if _, exists := m.drivers[driver.ID]; exists {
			return nil, fmt.Errorf("driver %s already exists", driver.ID)
		}
		m.drivers[driver.ID] = i
	}
	for i, series := range m.snapshot.Series {
		if err := series.Validate(); err != nil {
			return nil, err
		}
		m.series[series.Name] = i
	}

	return m, nil
}

// NewSeededMemoryRecordStore creates a store holding the built-in fleet fixture
func NewSeededMemoryRecordStore() *MemoryRecordStore {
	m, err := NewMemoryRecordStore(SeedSnapshot())
	if err != nil {
		panic(fmt.Sprintf("invalid seed data: %v", err))
	}
	return m
}

func (m *MemoryRecordStore) GetTrucks(ctx context.Context) ([]Truck, error) {
	result := make([]Truck, 0, len(m.snapshot.Trucks))
	for _, truck := range m.snapshot.Trucks {
		result = append(result, truck.Clone())
	}
	return result, nil
}

func (m *MemoryRecordStore) GetTruck(ctx context.Context, truckID string) (*Truck, error) {
	i, exists := m.trucks[truckID]
	if !exists {
		return nil, fmt.Errorf("truck %s: %w", truckID, ErrNotFound)
	}
	truck := m.snapshot.Trucks[i].Clone()
	return &truck, nil
}

func (m *MemoryRecordStore) GetDrivers(ctx context.Context) ([]Driver, error) {
	result := make([]Driver, 0, len(m.snapshot.Drivers))
	for _, driver := range m.snapshot.Drivers {
		result = append(result, driver.Clone())
	}
	return result, nil
}

func (m *MemoryRecordStore) GetDriver(ctx context.Context, driverID string) (*Driver, error) {
	i, exists := m.drivers[driverID]
	if !exists {
		return nil, fmt.Errorf("driver %s: %w", driverID, ErrNotFound)
	}
	driver := m.snapshot.Drivers[i].Clone()
	return &driver, nil
}

func (m *MemoryRecordStore) GetTrips(ctx context.Context) ([]Trip, error) {
	var result []Trip
	for _, truck := range m.snapshot.Trucks {
		for _, trip := range truck.Trips {
			result = append(result, trip.Clone())
		}
	}
	return result, nil
}

func (m *MemoryRecordStore) GetTrip(ctx context.Context, tripID string) (*Trip, error) {
	idx, exists := m.trips[tripID]
	if !exists {
		return nil, fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
	}
	trip := m.snapshot.Trucks[idx[0]].Trips[idx[1]].Clone()
	return &trip, nil
}

func (m *MemoryRecordStore) GetChartSeries(ctx context.Context, name string) (*ChartSeries, error) {
	i, exists := m.series[name]
	if !exists {
		return nil, fmt.Errorf("chart series %s: %w", name, ErrNotFound)
	}
	series := m.snapshot.Series[i].Clone()
	return &series, nil
}

func (m *MemoryRecordStore) GetSummary(ctx context.Context) (*DashboardSummary, error) {
	summary := m.snapshot.Summary
	return &summary, nil
}

func cloneSnapshot(s Snapshot) Snapshot {
	out := Snapshot{Summary: s.Summary}
	for _, truck := range s.Trucks {
		out.Trucks = append(out.Trucks, truck.Clone())
	}
	for _, driver := range s.Drivers {
		out.Drivers = append(out.Drivers, driver.Clone())
	}
	for _, series := range s.Series {
		out.Series = append(out.Series, series.Clone())
	}
	return out
}
