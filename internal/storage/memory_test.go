package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRecordStore_GetTruck(t *testing.T) {
	store := NewSeededMemoryRecordStore()
	ctx := context.Background()

	truck, err := store.GetTruck(ctx, "T001")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if truck.LicensePlate != "AA1234BB" {
		t.Errorf("Expected license plate AA1234BB, got %s", truck.LicensePlate)
	}
	if len(truck.Trips) != 2 {
		t.Errorf("Expected 2 trips, got %d", len(truck.Trips))
	}

	_, err = store.GetTruck(ctx, "T999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRecordStore_GetDriver(t *testing.T) {
	store := NewSeededMemoryRecordStore()
	ctx := context.Background()

	driver, err := store.GetDriver(ctx, "D004")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if driver.Status != DriverInactive {
		t.Errorf("Expected status %s, got %s", DriverInactive, driver.Status)
	}
	if driver.LeaveDate == nil {
		t.Error("Expected leave date for inactive driver")
	}

	_, err = store.GetDriver(ctx, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRecordStore_GetTrips(t *testing.T) {
	store := NewSeededMemoryRecordStore()
	ctx := context.Background()

	trips, err := store.GetTrips(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	expected := []string{"TR1001", "TR1002", "TR2001", "CURRENT_T004"}
	if len(trips) != len(expected) {
		t.Fatalf("Expected %d trips, got %d", len(expected), len(trips))
	}
	for i, id := range expected {
		if trips[i].ID != id {
			t.Errorf("Expected trip %d to be %s, got %s", i, id, trips[i].ID)
		}
	}

	trip, err := store.GetTrip(ctx, "TR2001")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if trip.TruckID != "T002" {
		t.Errorf("Expected truck T002, got %s", trip.TruckID)
	}
}

func TestMemoryRecordStore_ReturnsCopies(t *testing.T) {
	store := NewSeededMemoryRecordStore()
	ctx := context.Background()

	truck, _ := store.GetTruck(ctx, "T001")
	truck.LicensePlate = "CHANGED"
	truck.CurrentLocation.Lat = 0
	truck.Trips[0].Route[0].Name = "Nowhere"

	again, _ := store.GetTruck(ctx, "T001")
	if again.LicensePlate != "AA1234BB" {
		t.Errorf("Store was mutated through returned truck: %s", again.LicensePlate)
	}
	if again.CurrentLocation.Lat != 52.3702 {
		t.Errorf("Store was mutated through returned location: %f", again.CurrentLocation.Lat)
	}
	if again.Trips[0].Route[0].Name != "Kyiv, Ukraine" {
		t.Errorf("Store was mutated through returned route: %s", again.Trips[0].Route[0].Name)
	}

	series, _ := store.GetChartSeries(ctx, SeriesProfitLoss)
	series.Datasets[0].Data[0] = -1
	again2, _ := store.GetChartSeries(ctx, SeriesProfitLoss)
	if again2.Datasets[0].Data[0] != 38500 {
		t.Errorf("Store was mutated through returned series: %f", again2.Datasets[0].Data[0])
	}
}

func TestMemoryRecordStore_DuplicateIDs(t *testing.T) {
	snapshot := SeedSnapshot()
	snapshot.Trucks = append(snapshot.Trucks, snapshot.Trucks[0])

	if _, err := NewMemoryRecordStore(snapshot); err == nil {
		t.Fatal("Expected error for duplicate truck id")
	}
}

func TestMemoryRecordStore_InvalidSeries(t *testing.T) {
	snapshot := SeedSnapshot()
	snapshot.Series[0].Datasets[0].Data = snapshot.Series[0].Datasets[0].Data[:3]

	_, err := NewMemoryRecordStore(snapshot)
	if !errors.Is(err, ErrInvalidSeries) {
		t.Fatalf("Expected ErrInvalidSeries, got %v", err)
	}
}

func TestSeedSnapshot_Invariants(t *testing.T) {
	snapshot := SeedSnapshot()

	for _, series := range snapshot.Series {
		if err := series.Validate(); err != nil {
			t.Errorf("Series %s: %v", series.Name, err)
		}
	}

	for _, truck := range snapshot.Trucks {
		switch truck.Status {
		case TruckInTrip:
			if truck.CurrentTrip == nil || truck.CurrentLocation == nil {
				t.Errorf("Truck %s is in trip without current trip or location", truck.ID)
			}
		default:
			if truck.CurrentTrip != nil {
				t.Errorf("Truck %s is %s with a current trip", truck.ID, truck.Status)
			}
			if truck.CurrentLocation != nil {
				t.Errorf("Truck %s is %s with a current location", truck.ID, truck.Status)
			}
		}

		for _, trip := range truck.Trips {
			if trip.TruckID != truck.ID {
				t.Errorf("Trip %s points at truck %s, held by %s", trip.ID, trip.TruckID, truck.ID)
			}
			if trip.Status != TripCompleted {
				if trip.CurrentPosition == nil {
					t.Errorf("Trip %s is in progress without a current position", trip.ID)
				}
				continue
			}
			if trip.FuelCost+trip.OtherExpenses != trip.TotalExpenses {
				t.Errorf("Trip %s total expenses %f do not add up", trip.ID, trip.TotalExpenses)
			}
			if trip.Cost-trip.TotalExpenses != trip.Profit {
				t.Errorf("Trip %s profit %f does not match cost minus expenses", trip.ID, trip.Profit)
			}
		}
	}
}
