package service

import (
	"time"

	"github.com/Vlad1s43nko/LogisticsSystem/internal/chart"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/mapview"
	"github.com/Vlad1s43nko/LogisticsSystem/internal/storage"
)

// Placeholder texts shown instead of missing content
const (
	NoTripHistory      = "No trip history available."
	NoDriverNotes      = "No notes available for this driver."
	NoActiveDrivers    = "No active drivers found matching your search."
	NoInactiveDrivers  = "No inactive drivers found matching your search."
	NoTrucksFound      = "No trucks found matching your search."
	NoTripsFound       = "No trips found matching your filters."
	MaintenancePending = "Maintenance records for this truck will be displayed here."
	NotAvailable       = "TBD"
	InProgress         = "In Progress"
)

// Lookup reports how a detail record was resolved
type Lookup struct {
	RequestedID string `json:"requested_id,omitempty"`
	Fallback    bool   `json:"fallback"`
}

type TruckQuery struct {
	Status storage.TruckStatus
	Text   string
}

type DriverQuery struct {
	Status   storage.DriverStatus
	Activity storage.DriverActivity
	Text     string
}

// TripQuery filters trips. DriverID and TruckID accept "all" for no filter.
type TripQuery struct {
	Status   storage.TripStatus
	Text     string
	DriverID string
	TruckID  string
	From     *time.Time
	To       *time.Time
}

type SummaryFigures struct {
	FuelPerKm         string `json:"fuel_per_km"`
	TotalDistance     string `json:"total_distance"`
	TripDays          string `json:"trip_days"`
	FinancialDynamics string `json:"financial_dynamics"`
	NetProfit         string `json:"net_profit"`
	Expenses          string `json:"expenses"`
}

type SummaryView struct {
	Summary storage.DashboardSummary `json:"summary"`
	Figures SummaryFigures           `json:"figures"`
	Totals  FleetTotals              `json:"totals"`
	Chart   *chart.Config            `json:"chart"`
}

type TruckRow struct {
	ID            string               `json:"id"`
	LicensePlate  string               `json:"license_plate"`
	Status        storage.TruckStatus  `json:"status"`
	DriverName    string               `json:"driver_name,omitempty"`
	CurrentTrip   *storage.TripSummary `json:"current_trip,omitempty"`
	Address       string               `json:"address,omitempty"`
	TotalDistance string               `json:"total_distance"`
	Profit        string               `json:"profit"`
}

type TruckList struct {
	Trucks  []TruckRow `json:"trucks"`
	Total   int        `json:"total"`
	Message string     `json:"message,omitempty"`
}

type DriverRow struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Age           int                    `json:"age"`
	Status        storage.DriverStatus   `json:"status"`
	CurrentStatus storage.DriverActivity `json:"current_status"`
	StatusClass   string                 `json:"status_class"`
	TotalKm       string                 `json:"total_km"`
	HireDate      string                 `json:"hire_date"`
	LeaveDate     string                 `json:"leave_date,omitempty"`
}

// DriverList splits the matching drivers into the active and inactive tabs
type DriverList struct {
	Active          []DriverRow `json:"active"`
	Inactive        []DriverRow `json:"inactive"`
	ActiveMessage   string      `json:"active_message,omitempty"`
	InactiveMessage string      `json:"inactive_message,omitempty"`
}

type TripDisplay struct {
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Days          string `json:"days"`
	StartKm       string `json:"start_km"`
	EndKm         string `json:"end_km"`
	Distance      string `json:"distance"`
	Revenue       string `json:"revenue"`
	FuelConsumed  string `json:"fuel_consumed"`
	FuelCost      string `json:"fuel_cost"`
	OtherExpenses string `json:"other_expenses"`
	TotalExpenses string `json:"total_expenses"`
	Profit        string `json:"profit"`
	Consumption   string `json:"consumption"`
}

type TripRow struct {
	Trip       storage.Trip `json:"trip"`
	DriverName string       `json:"driver_name"`
	DistanceKm *int         `json:"distance_km,omitempty"`
	Display    TripDisplay  `json:"display"`
}

type TripList struct {
	Trips   []TripRow   `json:"trips"`
	Totals  FleetTotals `json:"totals"`
	Message string      `json:"message,omitempty"`
}

type TruckFigures struct {
	TotalDistance   string `json:"total_distance"`
	TripDays        string `json:"trip_days"`
	Profit          string `json:"profit"`
	FuelConsumption string `json:"fuel_consumption"`
	CurrentTripCost string `json:"current_trip_cost,omitempty"`
}

// TruckDetail is the truck page. Map is nil when maps are switched off.
type TruckDetail struct {
	Lookup
	Truck        storage.Truck `json:"truck"`
	DriverName   string        `json:"driver_name"`
	Figures      TruckFigures  `json:"figures"`
	Map          *mapview.View `json:"map,omitempty"`
	Trips        []TripRow     `json:"trips"`
	TripsMessage string        `json:"trips_message,omitempty"`
	Maintenance  string        `json:"maintenance_message"`
	Chart        *chart.Config `json:"chart"`
}

type DriverFigures struct {
	TotalKm       string `json:"total_km"`
	TotalSpent    string `json:"total_spent"`
	MoneyPerKm    string `json:"money_per_km"`
	FuelExpenses  string `json:"fuel_expenses"`
	MoneyPerLiter string `json:"money_per_liter"`
	TotalEarned   string `json:"total_earned"`
	TripDays      string `json:"trip_days"`
	UaNlKm        string `json:"ua_nl_km"`
	UaGbKm        string `json:"ua_gb_km"`
	HireDate      string `json:"hire_date"`
	LeaveDate     string `json:"leave_date,omitempty"`
	ServiceDays   int    `json:"service_days"`
}

type NoteRow struct {
	Date   string `json:"date"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

type DriverDetail struct {
	Lookup
	Driver       storage.Driver `json:"driver"`
	Figures      DriverFigures  `json:"figures"`
	Notes        []NoteRow      `json:"notes"`
	NotesMessage string         `json:"notes_message,omitempty"`
	Trips        []TripRow      `json:"trips"`
	Chart        *chart.Config  `json:"chart"`
}

type TripDetail struct {
	Lookup
	Row          TripRow       `json:"row"`
	TruckPlate   string        `json:"truck_plate"`
	Map          *mapview.View `json:"map,omitempty"`
	RouteSummary string        `json:"route_summary"`
}
