package storage

import (
	"fmt"
	"time"
)

// TruckStatus is the operational state of a truck
type TruckStatus string

const (
	TruckInTrip      TruckStatus = "In Trip"
	TruckOnPark      TruckStatus = "On Park"
	TruckMaintenance TruckStatus = "Maintenance"
)

// TripStatus is the lifecycle state of a trip
type TripStatus string

const (
	TripCompleted  TripStatus = "Completed"
	TripInProgress TripStatus = "In Progress"
)

// DriverStatus is the employment state of a driver
type DriverStatus string

const (
	DriverActive   DriverStatus = "Active"
	DriverInactive DriverStatus = "Inactive"
)

// DriverActivity is what an active driver is doing right now
type DriverActivity string

const (
	ActivityInTrip    DriverActivity = "In Trip"
	ActivityAvailable DriverActivity = "Available"
	ActivityOnLeave   DriverActivity = "On Leave"
)

// Location is the last reported position of a truck
type Location struct {
	Lat       float64   `json:"lat" dynamodbav:"lat"`
	Lng       float64   `json:"lng" dynamodbav:"lng"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
	Address   string    `json:"address,omitempty" dynamodbav:"address,omitempty"`
}

// Position is the live position of an in-progress trip
type Position struct {
	Lat       float64   `json:"lat" dynamodbav:"lat"`
	Lng       float64   `json:"lng" dynamodbav:"lng"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// Waypoint is a named point of a display route
type Waypoint struct {
	Lat  float64 `json:"lat" dynamodbav:"lat"`
	Lng  float64 `json:"lng" dynamodbav:"lng"`
	Name string  `json:"name,omitempty" dynamodbav:"name,omitempty"`
}

// TripSummary is the short description of the trip a truck is on
type TripSummary struct {
	Direction string  `json:"direction" dynamodbav:"direction"`
	Cargo     string  `json:"cargo" dynamodbav:"cargo"`
	Cost      float64 `json:"cost" dynamodbav:"cost"`
}

type TruckStats struct {
	TotalDistance   float64 `json:"total_distance" dynamodbav:"total_distance"`
	TripDays        int     `json:"trip_days" dynamodbav:"trip_days"`
	Profit          float64 `json:"profit" dynamodbav:"profit"`
	FuelConsumption float64 `json:"fuel_consumption" dynamodbav:"fuel_consumption"`
}

// Truck represents a truck in the fleet together with its trip history
type Truck struct {
	ID              string       `json:"id" dynamodbav:"id"`
	LicensePlate    string       `json:"license_plate" dynamodbav:"license_plate"`
	Status          TruckStatus  `json:"status" dynamodbav:"status"`
	CurrentDriver   string       `json:"current_driver,omitempty" dynamodbav:"current_driver,omitempty"` // Driver.ID
	CurrentLocation *Location    `json:"current_location,omitempty" dynamodbav:"current_location,omitempty"`
	CurrentTrip     *TripSummary `json:"current_trip,omitempty" dynamodbav:"current_trip,omitempty"`
	Stats           TruckStats   `json:"stats" dynamodbav:"stats"`
	Trips           []Trip       `json:"trips" dynamodbav:"trips"`
}

// Trip is one haul. EndDate, EndKm and Days stay nil while the trip is in progress.
type Trip struct {
	ID              string     `json:"id" dynamodbav:"id"`
	TruckID         string     `json:"truck_id" dynamodbav:"truck_id"`
	Direction       string     `json:"direction" dynamodbav:"direction"`
	Driver          string     `json:"driver" dynamodbav:"driver"` // Driver.ID
	StartDate       time.Time  `json:"start_date" dynamodbav:"start_date"`
	EndDate         *time.Time `json:"end_date,omitempty" dynamodbav:"end_date,omitempty"`
	Cargo           string     `json:"cargo" dynamodbav:"cargo"`
	Client          string     `json:"client" dynamodbav:"client"`
	StartKm         int        `json:"start_km" dynamodbav:"start_km"`
	EndKm           *int       `json:"end_km,omitempty" dynamodbav:"end_km,omitempty"`
	Days            *int       `json:"days,omitempty" dynamodbav:"days,omitempty"`
	Cost            float64    `json:"cost" dynamodbav:"cost"`
	FuelConsumed    float64    `json:"fuel_consumed" dynamodbav:"fuel_consumed"`
	FuelCost        float64    `json:"fuel_cost" dynamodbav:"fuel_cost"`
	CostPerLiter    float64    `json:"cost_per_liter" dynamodbav:"cost_per_liter"`
	OtherExpenses   float64    `json:"other_expenses" dynamodbav:"other_expenses"`
	TotalExpenses   float64    `json:"total_expenses" dynamodbav:"total_expenses"`
	Profit          float64    `json:"profit" dynamodbav:"profit"`
	Route           []Waypoint `json:"route" dynamodbav:"route"`
	Status          TripStatus `json:"status" dynamodbav:"status"`
	CurrentPosition *Position  `json:"current_position,omitempty" dynamodbav:"current_position,omitempty"`
}

type DriverStats struct {
	TotalKm       float64 `json:"total_km" dynamodbav:"total_km"`
	TotalSpent    float64 `json:"total_spent" dynamodbav:"total_spent"`
	MoneyPerKm    float64 `json:"money_per_km" dynamodbav:"money_per_km"`
	FuelExpenses  float64 `json:"fuel_expenses" dynamodbav:"fuel_expenses"`
	MoneyPerLiter float64 `json:"money_per_liter" dynamodbav:"money_per_liter"`
	TotalEarned   float64 `json:"total_earned" dynamodbav:"total_earned"`
	TripDays      int     `json:"trip_days" dynamodbav:"trip_days"`
	UaNlKm        float64 `json:"ua_nl_km" dynamodbav:"ua_nl_km"`
	UaGbKm        float64 `json:"ua_gb_km" dynamodbav:"ua_gb_km"`
}

type Note struct {
	Date   time.Time `json:"date" dynamodbav:"date"`
	Author string    `json:"author" dynamodbav:"author"`
	Text   string    `json:"text" dynamodbav:"text"`
}

// Driver represents a driver employed by the fleet
type Driver struct {
	ID            string         `json:"id" dynamodbav:"id"`
	Name          string         `json:"name" dynamodbav:"name"`
	Age           int            `json:"age" dynamodbav:"age"`
	Status        DriverStatus   `json:"status" dynamodbav:"status"`
	CurrentStatus DriverActivity `json:"current_status" dynamodbav:"current_status"`
	TotalKm       float64        `json:"total_km" dynamodbav:"total_km"`
	HireDate      time.Time      `json:"hire_date" dynamodbav:"hire_date"`
	LeaveDate     *time.Time     `json:"leave_date,omitempty" dynamodbav:"leave_date,omitempty"`
	LastActive    time.Time      `json:"last_active" dynamodbav:"last_active"`
	Stats         DriverStats    `json:"stats" dynamodbav:"stats"`
	Notes         []Note         `json:"notes" dynamodbav:"notes"`
}

// Dataset is one named series of values. Key names the semantic role
// (revenue, expenses, distance, fuel, profit, earnings) used for coloring.
type Dataset struct {
	Key   string    `json:"key" dynamodbav:"key"`
	Label string    `json:"label" dynamodbav:"label"`
	Data  []float64 `json:"data" dynamodbav:"data"`
}

// ChartSeries is a labelled time series
type ChartSeries struct {
	Name     string    `json:"name" dynamodbav:"name"`
	Labels   []string  `json:"labels" dynamodbav:"labels"`
	Datasets []Dataset `json:"datasets" dynamodbav:"datasets"`
}

// DashboardSummary holds the header figures of the dashboard
type DashboardSummary struct {
	FuelPerKm         float64 `json:"fuel_per_km" dynamodbav:"fuel_per_km"`
	TotalDistance     float64 `json:"total_distance" dynamodbav:"total_distance"`
	TripDays          int     `json:"trip_days" dynamodbav:"trip_days"`
	FinancialDynamics float64 `json:"financial_dynamics" dynamodbav:"financial_dynamics"`
	NetProfit         float64 `json:"net_profit" dynamodbav:"net_profit"`
	Expenses          float64 `json:"expenses" dynamodbav:"expenses"`
}

// Validate checks that every dataset has one value per label
func (c ChartSeries) Validate() error {
	if len(c.Labels) == 0 {
		return fmt.Errorf("%w: series %q has no labels", ErrInvalidSeries, c.Name)
	}
	for _, ds := range c.Datasets {
		if len(ds.Data) != len(c.Labels) {
			return fmt.Errorf("%w: dataset %q has %d values for %d labels",
				ErrInvalidSeries, ds.Label, len(ds.Data), len(c.Labels))
		}
	}
	return nil
}

func (t Truck) SearchFields() []string { return []string{t.ID, t.LicensePlate} }

func (d Driver) SearchFields() []string { return []string{d.ID, d.Name} }

func (t Trip) SearchFields() []string { return []string{t.ID, t.Direction, t.Client} }

// Clone returns a deep copy of the truck
func (t Truck) Clone() Truck {
	out := t
	if t.CurrentLocation != nil {
		loc := *t.CurrentLocation
		out.CurrentLocation = &loc
	}
	if t.CurrentTrip != nil {
		sum := *t.CurrentTrip
		out.CurrentTrip = &sum
	}
	if t.Trips != nil {
		out.Trips = make([]Trip, len(t.Trips))
		for i, trip := range t.Trips {
			out.Trips[i] = trip.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the trip
func (t Trip) Clone() Trip {
	out := t
	if t.EndDate != nil {
		end := *t.EndDate
		out.EndDate = &end
	}
	if t.EndKm != nil {
		km := *t.EndKm
		out.EndKm = &km
	}
	if t.Days != nil {
		days := *t.Days
		out.Days = &days
	}
	if t.CurrentPosition != nil {
		pos := *t.CurrentPosition
		out.CurrentPosition = &pos
	}
	if t.Route != nil {
		out.Route = make([]Waypoint, len(t.Route))
		copy(out.Route, t.Route)
	}
	return out
}

// Clone returns a deep copy of the driver
func (d Driver) Clone() Driver {
	out := d
	if d.LeaveDate != nil {
		left := *d.LeaveDate
		out.LeaveDate = &left
	}
	if d.Notes != nil {
		out.Notes = make([]Note, len(d.Notes))
		copy(out.Notes, d.Notes)
	}
	return out
}

// Clone returns a deep copy of the series
func (c ChartSeries) Clone() ChartSeries {
	out := c
	out.Labels = append([]string(nil), c.Labels...)
	out.Datasets = make([]Dataset, len(c.Datasets))
	for i, ds := range c.Datasets {
		out.Datasets[i] = Dataset{Key: ds.Key, Label: ds.Label, Data: append([]float64(nil), ds.Data...)}
	}
	return out
}
