package service

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

// Predicate selects records. A nil predicate is inactive.
type Predicate[T any] func(T) bool

// Searchable records expose the fields free-text search looks at
type Searchable interface {
	SearchFields() []string
}

// Match keeps the records that satisfy every active predicate, in input
// order. With no active predicate the input is returned unchanged.
func Match[T any](records []T, preds ...Predicate[T]) []T {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return records
	}

	out := make([]T, 0, len(records))
next:
	for _, r := range records {
		for _, p := range active {
			if !p(r) {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// StatusIs matches records whose status equals status exactly. An empty
// status yields an inactive predicate.
func StatusIs[T any, S ~string](status S, statusOf func(T) S) Predicate[T] {
	if status == "" {
		return nil
	}
	return func(r T) bool { return statusOf(r) == status }
}

// TextContains matches records with query as a case-folded substring of any
// search field. An empty query yields an inactive predicate.
func TextContains[T Searchable](query string) Predicate[T] {
	if query == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(query)
	return func(r T) bool {
		for _, field := range r.SearchFields() {
			if strings.Contains(fold.String(field), needle) {
				return true
			}
		}
		return false
	}
}

func FilterByStatus[T any, S ~string](records []T, status S, statusOf func(T) S) []T {
	return Match(records, StatusIs(status, statusOf))
}

func SearchByText[T Searchable](records []T, query string) []T {
	return Match(records, TextContains[T](query))
}

func truckStatus(t storage.Truck) storage.TruckStatus { return t.Status }
func driverStatus(d storage.Driver) storage.DriverStatus { return d.Status }
func driverActivity(d storage.Driver) storage.DriverActivity { return d.CurrentStatus }
func tripStatus(t storage.Trip) storage.TripStatus { return t.Status }

// DrivenBy matches trips of one driver. Empty and "all" are inactive.
func DrivenBy(driverID string) Predicate[storage.Trip] {
	if driverID == "" || driverID == "all" {
		return nil
	}
	return func(t storage.Trip) bool { return t.Driver == driverID }
}

// OnTruck matches trips of one truck. Empty and "all" are inactive.
func OnTruck(truckID string) Predicate[storage.Trip] {
	if truckID == "" || truckID == "all" {
		return nil
	}
	return func(t storage.Trip) bool { return t.TruckID == truckID }
}

// StartedBetween matches trips whose start date falls within [from, to] by
// calendar day. Either bound may be nil.
func StartedBetween(from, to *time.Time) Predicate[storage.Trip] {
	if from == nil && to == nil {
		return nil
	}
	return func(t storage.Trip) bool {
		start := truncateDay(t.StartDate)
		if from != nil && start.Before(truncateDay(*from)) {
			return false
		}
		if to != nil && start.After(truncateDay(*to)) {
			return false
		}
		return true
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
