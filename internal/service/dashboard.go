package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/format"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/kinesis"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

// ErrEmptyNote is returned when a note has no text
var ErrEmptyNote = errors.New("note text is required")

// DashboardService builds the dashboard view models from the record store
type DashboardService struct {
	store     storage.RecordStore
	projector *mapview.Projector
	theme     *chart.ThemeNotifier
	streamer  *kinesis.Streamer
	strict    bool
	now       func() time.Time
}

// NewDashboardService creates a dashboard service. With strict set, unknown
// ids are reported as not found instead of falling back to the first record.
func NewDashboardService(store storage.RecordStore, projector *mapview.Projector, theme *chart.ThemeNotifier, strict bool) *DashboardService {
	return &DashboardService{
		store:     store,
		projector: projector,
		theme:     theme,
		strict:    strict,
		now:       time.Now,
	}
}

// SetKinesisStreamer sets the Kinesis streamer for dashboard events
func (s *DashboardService) SetKinesisStreamer(streamer *kinesis.Streamer) {
	s.streamer = streamer
}

func (s *DashboardService) publish(ctx context.Context, event kinesis.DashboardEvent) {
	s.streamer.Publish(ctx, event)
}

func (s *DashboardService) currentTheme() chart.Theme {
	if s.theme == nil {
		return chart.ThemeLight
	}
	return s.theme.Current()
}

// lookup resolves id with get. Under the fallback policy a missing or empty
// id resolves to the first record returned by all.
func lookup[T any](ctx context.Context, strict bool, kind, id string,
	get func(context.Context, string) (*T, error),
	all func(context.Context) ([]T, error),
) (*T, Lookup, error) {
	result := Lookup{RequestedID: id}

	if id != "" {
		record, err := get(ctx, id)
		if err == nil {
			return record, result, nil
		}
		if !errors.Is(err, storage.ErrNotFound) || strict {
			return nil, result, err
		}
	} else if strict {
		return nil, result, fmt.Errorf("%s id is required: %w", kind, storage.ErrNotFound)
	}

	records, err := all(ctx)
	if err != nil {
		return nil, result, fmt.Errorf("failed to list %ss: %w", kind, err)
	}
	if len(records) == 0 {
		return nil, result, fmt.Errorf("no %s records: %w", kind, storage.ErrNotFound)
	}

	result.Fallback = true
	return &records[0], result, nil
}

func (s *DashboardService) lookupTruck(ctx context.Context, id string) (*storage.Truck, Lookup, error) {
	truck, res, err := lookup(ctx, s.strict, "truck", id, s.store.GetTruck, s.store.GetTrucks)
	if err == nil && res.Fallback {
		slog.Info("Truck not found, using first truck", "requested_id", id, "truck_id", truck.ID)
	}
	return truck, res, err
}

func (s *DashboardService) lookupDriver(ctx context.Context, id string) (*storage.Driver, Lookup, error) {
	driver, res, err := lookup(ctx, s.strict, "driver", id, s.store.GetDriver, s.store.GetDrivers)
	if err == nil && res.Fallback {
		slog.Info("Driver not found, using first driver", "requested_id", id, "driver_id", driver.ID)
	}
	return driver, res, err
}

func (s *DashboardService) lookupTrip(ctx context.Context, id string) (*storage.Trip, Lookup, error) {
	trip, res, err := lookup(ctx, s.strict, "trip", id, s.store.GetTrip, s.store.GetTrips)
	if err == nil && res.Fallback {
		slog.Info("Trip not found, using first trip", "requested_id", id, "trip_id", trip.ID)
	}
	return trip, res, err
}

// driverNames maps driver ids to names
func (s *DashboardService) driverNames(ctx context.Context) (map[string]string, error) {
	drivers, err := s.store.GetDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}
	names := make(map[string]string, len(drivers))
	for _, d := range drivers {
		names[d.ID] = d.Name
	}
	return names, nil
}

// Chart builds the chart of kind in theme
func (s *DashboardService) Chart(ctx context.Context, kind chart.Kind, theme chart.Theme) (*chart.Config, error) {
	if _, err := chart.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	series, err := s.store.GetChartSeries(ctx, kind.SeriesName())
	if err != nil {
		return nil, fmt.Errorf("failed to get %s series: %w", kind, err)
	}
	return chart.BuildSeries(kind, *series, theme)
}

// Summary returns the dashboard header and the profit and loss chart
func (s *DashboardService) Summary(ctx context.Context) (*SummaryView, error) {
	summary, err := s.store.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	totals, err := s.FleetTotals(ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := s.Chart(ctx, chart.KindProfitLoss, s.currentTheme())
	if err != nil {
		return nil, err
	}

	return &SummaryView{
		Summary: *summary,
		Figures: SummaryFigures{
			FuelPerKm:         format.Number(summary.FuelPerKm) + " l/km",
			TotalDistance:     format.Distance(summary.TotalDistance),
			TripDays:          format.Number(float64(summary.TripDays)),
			FinancialDynamics: format.Number(summary.FinancialDynamics),
			NetProfit:         format.Currency(summary.NetProfit),
			Expenses:          format.Currency(summary.Expenses),
		},
		Totals: *totals,
		Chart:  cfg,
	}, nil
}

// FleetTotals sums every completed trip of the fleet
func (s *DashboardService) FleetTotals(ctx context.Context) (*FleetTotals, error) {
	trips, err := s.store.GetTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}
	totals := ComputeFleetTotals(trips)
	return &totals, nil
}

// ListTrucks returns the trucks matching q in seed order
func (s *DashboardService) ListTrucks(ctx context.Context, q TruckQuery) (*TruckList, error) {
	trucks, err := s.store.GetTrucks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trucks: %w", err)
	}
	names, err := s.driverNames(ctx)
	if err != nil {
		return nil, err
	}

	matched := Match(trucks, StatusIs(q.Status, truckStatus), TextContains[storage.Truck](q.Text))

	list := &TruckList{Trucks: make([]TruckRow, 0, len(matched)), Total: len(trucks)}
	for _, t := range matched {
		row := TruckRow{
			ID:            t.ID,
			LicensePlate:  t.LicensePlate,
			Status:        t.Status,
			DriverName:    names[t.CurrentDriver],
			CurrentTrip:   t.CurrentTrip,
			TotalDistance: format.Distance(t.Stats.TotalDistance),
			Profit:        format.Currency(t.Stats.Profit),
		}
		if t.CurrentLocation != nil {
			row.Address = t.CurrentLocation.Address
		}
		list.Trucks = append(list.Trucks, row)
	}
	if len(list.Trucks) == 0 {
		list.Message = NoTrucksFound
	}
	return list, nil
}

// ListDrivers returns the drivers matching q split into active and inactive
func (s *DashboardService) ListDrivers(ctx context.Context, q DriverQuery) (*DriverList, error) {
	drivers, err := s.store.GetDrivers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}

	matched := Match(drivers,
		StatusIs(q.Status, driverStatus),
		StatusIs(q.Activity, driverActivity),
		TextContains[storage.Driver](q.Text),
	)

	list := &DriverList{Active: []DriverRow{}, Inactive: []DriverRow{}}
	for _, d := range matched {
		row := driverRow(d)
		if d.Status == storage.DriverActive {
			list.Active = append(list.Active, row)
		} else {
			list.Inactive = append(list.Inactive, row)
		}
	}
	if len(list.Active) == 0 {
		list.ActiveMessage = NoActiveDrivers
	}
	if len(list.Inactive) == 0 {
		list.InactiveMessage = NoInactiveDrivers
	}
	return list, nil
}

func driverRow(d storage.Driver) DriverRow {
	row := DriverRow{
		ID:            d.ID,
		Name:          d.Name,
		Age:           d.Age,
		Status:        d.Status,
		CurrentStatus: d.CurrentStatus,
		StatusClass:   strings.ToLower(strings.ReplaceAll(string(d.CurrentStatus), " ", "-")),
		TotalKm:       format.Distance(d.TotalKm),
		HireDate:      format.Date(d.HireDate),
	}
	if d.LeaveDate != nil {
		row.LeaveDate = format.Date(*d.LeaveDate)
	}
	return row
}

// ListTrips returns every trip of the fleet matching q
func (s *DashboardService) ListTrips(ctx context.Context, q TripQuery) (*TripList, error) {
	trips, err := s.store.GetTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}
	names, err := s.driverNames(ctx)
	if err != nil {
		return nil, err
	}

	matched := filterTrips(trips, q)
	list := &TripList{Trips: tripRows(matched, names), Totals: ComputeFleetTotals(matched)}
	if len(list.Trips) == 0 {
		list.Message = NoTripsFound
	}
	return list, nil
}

func filterTrips(trips []storage.Trip, q TripQuery) []storage.Trip {
	return Match(trips,
		StatusIs(q.Status, tripStatus),
		TextContains[storage.Trip](q.Text),
		DrivenBy(q.DriverID),
		OnTruck(q.TruckID),
		StartedBetween(q.From, q.To),
	)
}

func tripRows(trips []storage.Trip, names map[string]string) []TripRow {
	rows := make([]TripRow, 0, len(trips))
	for _, t := range trips {
		rows = append(rows, tripRow(t, names[t.Driver]))
	}
	return rows
}

func tripRow(t storage.Trip, driverName string) TripRow {
	row := TripRow{
		Trip:       t,
		DriverName: driverName,
		Display: TripDisplay{
			StartDate:     format.Date(t.StartDate),
			EndDate:       format.DateOr(t.EndDate, NotAvailable),
			Days:          InProgress,
			StartKm:       format.Distance(float64(t.StartKm)),
			EndKm:         NotAvailable,
			Distance:      NotAvailable,
			Revenue:       format.Currency(t.Cost),
			FuelConsumed:  format.Number(t.FuelConsumed) + " l",
			FuelCost:      format.Currency(t.FuelCost),
			OtherExpenses: format.Currency(t.OtherExpenses),
			TotalExpenses: format.Currency(TripExpenses(t)),
			Profit:        format.Currency(TripProfit(t)),
			Consumption:   NotAvailable,
		},
	}
	if t.Days != nil {
		row.Display.Days = strconv.Itoa(*t.Days)
	}
	if t.EndKm != nil {
		row.Display.EndKm = format.Distance(float64(*t.EndKm))
	}
	if km, ok := TripDistance(t); ok {
		row.DistanceKm = &km
		row.Display.Distance = format.Distance(float64(km))
		row.Display.Consumption = format.Number(AverageConsumption(t.FuelConsumed, float64(km))) + " l/100km"
	}
	// expenses keep accruing until the trip completes
	if t.Status == storage.TripInProgress {
		row.Display.TotalExpenses = NotAvailable
		row.Display.Profit = NotAvailable
	}
	return row
}

// TruckMap projects the truck resolved from id
func (s *DashboardService) TruckMap(ctx context.Context, id string) (*mapview.View, Lookup, error) {
	truck, res, err := s.lookupTruck(ctx, id)
	if err != nil {
		return nil, res, err
	}
	view, err := s.projector.ProjectTruck(*truck, s.driverName(ctx, truck.CurrentDriver))
	return view, res, err
}

// TripMap projects the trip resolved from id
func (s *DashboardService) TripMap(ctx context.Context, id string) (*mapview.View, Lookup, error) {
	trip, res, err := s.lookupTrip(ctx, id)
	if err != nil {
		return nil, res, err
	}
	view, err := s.projector.ProjectTrip(*trip, s.truckPlate(ctx, trip.TruckID), s.driverName(ctx, trip.Driver))
	return view, res, err
}

// driverName resolves a driver reference, returning "" for unknown ids
func (s *DashboardService) driverName(ctx context.Context, id string) string {
	if id == "" {
		return ""
	}
	driver, err := s.store.GetDriver(ctx, id)
	if err != nil {
		slog.Warn("Driver reference not resolved", "driver_id", id, "error", err)
		return ""
	}
	return driver.Name
}

func (s *DashboardService) truckPlate(ctx context.Context, id string) string {
	truck, err := s.store.GetTruck(ctx, id)
	if err != nil {
		slog.Warn("Truck reference not resolved", "truck_id", id, "error", err)
		return ""
	}
	return truck.LicensePlate
}

// optionalMap drops the map when the provider is unavailable
func optionalMap(view *mapview.View, err error, attrs ...any) (*mapview.View, error) {
	if errors.Is(err, mapview.ErrMapUnavailable) {
		slog.Warn("Map projection skipped", append(attrs, "error", err)...)
		return nil, nil
	}
	return view, err
}

// TruckDetail builds the truck page. Trips are narrowed by q without changing
// the stored truck.
func (s *DashboardService) TruckDetail(ctx context.Context, id string, q TripQuery) (*TruckDetail, error) {
	truck, res, err := s.lookupTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	names, err := s.driverNames(ctx)
	if err != nil {
		return nil, err
	}
	driverName := names[truck.CurrentDriver]

	view, err := s.projector.ProjectTruck(*truck, driverName)
	view, err = optionalMap(view, err, "truck_id", truck.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to project truck %s: %w", truck.ID, err)
	}

	cfg, err := s.Chart(ctx, chart.KindTruckPerformance, s.currentTheme())
	if err != nil {
		return nil, err
	}

	detail := &TruckDetail{
		Lookup:     res,
		Truck:      *truck,
		DriverName: driverName,
		Figures: TruckFigures{
			TotalDistance:   format.Distance(truck.Stats.TotalDistance),
			TripDays:        strconv.Itoa(truck.Stats.TripDays) + " days",
			Profit:          format.Currency(truck.Stats.Profit),
			FuelConsumption: format.Number(truck.Stats.FuelConsumption) + " l/100km",
		},
		Map:         view,
		Trips:       tripRows(filterTrips(truck.Trips, q), names),
		Maintenance: MaintenancePending,
		Chart:       cfg,
	}
	if truck.CurrentTrip != nil {
		detail.Figures.CurrentTripCost = format.Currency(truck.CurrentTrip.Cost)
	}
	if len(detail.Trips) == 0 {
		detail.TripsMessage = NoTripHistory
	}
	return detail, nil
}

// DriverDetail builds the driver page
func (s *DashboardService) DriverDetail(ctx context.Context, id string) (*DriverDetail, error) {
	driver, res, err := s.lookupDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	trips, err := s.store.GetTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get trips: %w", err)
	}
	cfg, err := s.Chart(ctx, chart.KindDriverPerformance, s.currentTheme())
	if err != nil {
		return nil, err
	}

	st := driver.Stats
	until := driver.LastActive
	if driver.LeaveDate != nil {
		until = *driver.LeaveDate
	}
	detail := &DriverDetail{
		Lookup: res,
		Driver: *driver,
		Figures: DriverFigures{
			TotalKm:       format.Distance(st.TotalKm),
			TotalSpent:    format.Currency(st.TotalSpent),
			MoneyPerKm:    format.Number(st.MoneyPerKm) + " €/km",
			FuelExpenses:  format.Currency(st.FuelExpenses),
			MoneyPerLiter: format.Number(st.MoneyPerLiter) + " €/l",
			TotalEarned:   format.Currency(st.TotalEarned),
			TripDays:      strconv.Itoa(st.TripDays) + " days",
			UaNlKm:        format.Distance(st.UaNlKm),
			UaGbKm:        format.Distance(st.UaGbKm),
			HireDate:      format.Date(driver.HireDate),
			ServiceDays:   format.DaysBetween(driver.HireDate, until),
		},
		Notes: make([]NoteRow, 0, len(driver.Notes)),
		Trips: tripRows(Match(trips, DrivenBy(driver.ID)), map[string]string{driver.ID: driver.Name}),
		Chart: cfg,
	}
	if driver.LeaveDate != nil {
		detail.Figures.LeaveDate = format.Date(*driver.LeaveDate)
	}
	for _, n := range driver.Notes {
		detail.Notes = append(detail.Notes, NoteRow{Date: format.Date(n.Date), Author: n.Author, Text: n.Text})
	}
	if len(detail.Notes) == 0 {
		detail.NotesMessage = NoDriverNotes
	}
	return detail, nil
}

// TripDetail builds the trip page with its route map
func (s *DashboardService) TripDetail(ctx context.Context, id string) (*TripDetail, error) {
	trip, res, err := s.lookupTrip(ctx, id)
	if err != nil {
		return nil, err
	}
	driverName := s.driverName(ctx, trip.Driver)
	plate := s.truckPlate(ctx, trip.TruckID)

	view, err := s.projector.ProjectTrip(*trip, plate, driverName)
	view, err = optionalMap(view, err, "trip_id", trip.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to project trip %s: %w", trip.ID, err)
	}

	stops := make([]string, 0, len(trip.Route))
	for _, wp := range trip.Route {
		stops = append(stops, wp.Name)
	}

	return &TripDetail{
		Lookup:       res,
		Row:          tripRow(*trip, driverName),
		TruckPlate:   plate,
		Map:          view,
		RouteSummary: strings.Join(stops, " → "),
	}, nil
}

// SubmitNote accepts a note for a driver. The note is returned and published
// as an event but never stored.
func (s *DashboardService) SubmitNote(ctx context.Context, driverID, author, text string) (*storage.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyNote
	}

	driver, _, err := s.lookupDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if author = strings.TrimSpace(author); author == "" {
		author = "Fleet Manager"
	}
	note := &storage.Note{Date: s.now().UTC(), Author: author, Text: text}

	slog.Info("Driver note submitted", "driver_id", driver.ID, "author", author, "length", len(text))
	s.publish(ctx, kinesis.DashboardEvent{
		EventType:  kinesis.EventNoteSubmitted,
		ViewID:     "driver-" + driver.ID,
		EntityID:   driver.ID,
		Attributes: map[string]string{"author": author},
	})
	return note, nil
}
