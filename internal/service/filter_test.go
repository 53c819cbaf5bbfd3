package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

func ids[T interface{ SearchFields() []string }](records []T) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.SearchFields()[0])
	}
	return out
}

func TestSearchByText_EmptyQueryReturnsInput(t *testing.T) {
	drivers := storage.SeedSnapshot().Drivers

	got := SearchByText(drivers, "")
	assert.Equal(t, drivers, got)
	assert.Len(t, got, len(drivers))
}

func TestSearchByText_Drivers(t *testing.T) {
	drivers := storage.SeedSnapshot().Drivers

	tests := []struct {
		query string
		want  []string
	}{
		{"petrov", []string{"D001"}},
		{"PETROV", []string{"D001"}},
		{"ivan", []string{"D001", "D004"}},
		{"IVAN", []string{"D001", "D004"}},
		{"d00", []string{"D001", "D002", "D003", "D004"}},
		{"petro", []string{"D001", "D002"}},
		{"nobody", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(SearchByText(drivers, tt.query)))
		})
	}
}

func TestSearchByText_TrucksAndTrips(t *testing.T) {
	snap := storage.SeedSnapshot()
	assert.Equal(t, []string{"T002"}, ids(SearchByText(snap.Trucks, "bb5678")))

	var trips []storage.Trip
	for _, truck := range snap.Trucks {
		trips = append(trips, truck.Trips...)
	}
	assert.Equal(t, []string{"TR2001", "CURRENT_T004"}, ids(SearchByText(trips, "ua-gb")))
	assert.Equal(t, []string{"TR1001"}, ids(SearchByText(trips, "techcorp")))
}

type place struct{ name string }

func (p place) SearchFields() []string { return []string{p.name} }

func TestSearchByText_UnicodeCaseFolding(t *testing.T) {
	places := []place{{"Київ"}, {"Львів"}, {"ÄRGER Straße"}}

	assert.Equal(t, []string{"Київ"}, ids(SearchByText(places, "КИЇВ")))
	assert.Equal(t, []string{"ÄRGER Straße"}, ids(SearchByText(places, "ärger")))
}

func TestFilterByStatus(t *testing.T) {
	trucks := storage.SeedSnapshot().Trucks

	assert.Equal(t, []string{"T001", "T004"}, ids(FilterByStatus(trucks, storage.TruckInTrip, truckStatus)))
	assert.Equal(t, []string{"T003"}, ids(FilterByStatus(trucks, storage.TruckMaintenance, truckStatus)))
	assert.Equal(t, trucks, FilterByStatus(trucks, "", truckStatus))
	// statuses match exactly
	assert.Empty(t, FilterByStatus(trucks, storage.TruckStatus("in trip"), truckStatus))
}

func TestMatch_CombinesPredicates(t *testing.T) {
	drivers := storage.SeedSnapshot().Drivers

	got := Match(drivers, StatusIs(storage.DriverActive, driverStatus), TextContains[storage.Driver]("ivan"))
	assert.Equal(t, []string{"D001"}, ids(got))

	got = Match(drivers, StatusIs(storage.ActivityInTrip, driverActivity), nil)
	assert.Equal(t, []string{"D001", "D003"}, ids(got))
}

func TestTripPredicates(t *testing.T) {
	store := storage.NewSeededMemoryRecordStore()
	trips, err := store.GetTrips(context.Background())
	assert.NoError(t, err)

	from := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 18, 30, 0, 0, time.UTC)
	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		pred Predicate[storage.Trip]
		want []string
	}{
		{"driver", DrivenBy("D001"), []string{"TR1001", "TR1002"}},
		{"all drivers", DrivenBy("all"), []string{"TR1001", "TR1002", "TR2001", "CURRENT_T004"}},
		{"truck", OnTruck("T002"), []string{"TR2001"}},
		{"inclusive range", StartedBetween(&from, &to), []string{"TR1001", "TR1002"}},
		{"open end", StartedBetween(&june, nil), []string{"CURRENT_T004"}},
		{"open start", StartedBetween(nil, &from), []string{"TR1002", "TR2001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Match(trips, tt.pred)))
		})
	}
}
