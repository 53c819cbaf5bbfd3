package storage

import "time"

// Named waypoints shared by the seeded routes
var (
	kyiv      = Waypoint{Lat: 50.4501, Lng: 30.5234, Name: "Kyiv, Ukraine"}
	prague    = Waypoint{Lat: 50.0755, Lng: 14.4378, Name: "Prague, Czech Republic"}
	brussels  = Waypoint{Lat: 50.8503, Lng: 4.3517, Name: "Brussels, Belgium"}
	amsterdam = Waypoint{Lat: 52.3676, Lng: 4.9041, Name: "Amsterdam, Netherlands"}
	berlin    = Waypoint{Lat: 52.5200, Lng: 13.4050, Name: "Berlin, Germany"}
	krakow    = Waypoint{Lat: 50.0647, Lng: 19.9450, Name: "Krakow, Poland"}
	warsaw    = Waypoint{Lat: 52.2297, Lng: 21.0122, Name: "Warsaw, Poland"}
	london    = Waypoint{Lat: 51.5074, Lng: -0.1278, Name: "London, UK"}
)

var months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func dayPtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func intPtr(v int) *int { return &v }

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedSnapshot returns the built-in fleet fixture
func SeedSnapshot() Snapshot {
	return Snapshot{
		Summary: DashboardSummary{
			FuelPerKm:         0.28,
			TotalDistance:     158425,
			TripDays:          583,
			FinancialDynamics: 1.76,
			NetProfit:         728350,
			Expenses:          412780,
		},
		Trucks:  seedTrucks(),
		Drivers: seedDrivers(),
		Series:  seedSeries(),
	}
}

func seedTrucks() []Truck {
	return []Truck{
		{
			ID:            "T001",
			LicensePlate:  "AA1234BB",
			Status:        TruckInTrip,
			CurrentDriver: "D001",
			CurrentLocation: &Location{
				Lat:       52.3702,
				Lng:       4.8951,
				Timestamp: mustTime("2025-06-04T10:30:00Z"),
				Address:   "Near Amsterdam, Netherlands",
			},
			CurrentTrip: &TripSummary{Direction: "UA-NL", Cargo: "Electronics", Cost: 3500},
			Stats:       TruckStats{TotalDistance: 45230, TripDays: 158, Profit: 182450, FuelConsumption: 27.3},
			Trips: []Trip{
				{
					ID: "TR1001", TruckID: "T001", Direction: "UA-NL", Driver: "D001",
					StartDate: day(2025, time.April, 1), EndDate: dayPtr(2025, time.April, 7),
					Cargo: "Electronics", Client: "TechCorp BV",
					StartKm: 120000, EndKm: intPtr(122500), Days: intPtr(7),
					Cost: 3500, FuelConsumed: 700, FuelCost: 1120, CostPerLiter: 1.6,
					OtherExpenses: 350, TotalExpenses: 1470, Profit: 2030,
					Route:  []Waypoint{kyiv, prague, brussels, amsterdam},
					Status: TripCompleted,
				},
				{
					ID: "TR1002", TruckID: "T001", Direction: "NL-UA", Driver: "D001",
					StartDate: day(2025, time.March, 20), EndDate: dayPtr(2025, time.March, 26),
					Cargo: "Agricultural Equipment", Client: "FarmTech UA",
					StartKm: 117500, EndKm: intPtr(120000), Days: intPtr(7),
					Cost: 3200, FuelConsumed: 680, FuelCost: 1088, CostPerLiter: 1.6,
					OtherExpenses: 280, TotalExpenses: 1368, Profit: 1832,
					Route:  []Waypoint{amsterdam, berlin, krakow, kyiv},
					Status: TripCompleted,
				},
			},
		},
		{
			ID:           "T002",
			LicensePlate: "BB5678CC",
			Status:       TruckOnPark,
			Stats:        TruckStats{TotalDistance: 38750, TripDays: 142, Profit: 152800, FuelConsumption: 29.1},
			Trips: []Trip{
				{
					ID: "TR2001", TruckID: "T002", Direction: "UA-GB", Driver: "D002",
					StartDate: day(2025, time.March, 10), EndDate: dayPtr(2025, time.March, 18),
					Cargo: "Textiles", Client: "FabricUK Ltd",
					StartKm: 87000, EndKm: intPtr(90200), Days: intPtr(9),
					Cost: 4200, FuelConsumed: 920, FuelCost: 1472, CostPerLiter: 1.6,
					OtherExpenses: 420, TotalExpenses: 1892, Profit: 2308,
					Route:  []Waypoint{kyiv, warsaw, berlin, london},
					Status: TripCompleted,
				},
			},
		},
		{
			ID:           "T003",
			LicensePlate: "CC9012DD",
			Status:       TruckMaintenance,
			Stats:        TruckStats{TotalDistance: 52120, TripDays: 183, Profit: 203500, FuelConsumption: 28.7},
			Trips:        []Trip{},
		},
		{
			ID:            "T004",
			LicensePlate:  "DD3456EE",
			Status:        TruckInTrip,
			CurrentDriver: "D003",
			CurrentLocation: &Location{
				Lat:       51.5074,
				Lng:       -0.1278,
				Timestamp: mustTime("2025-06-04T11:15:00Z"),
				Address:   "Near London, UK",
			},
			CurrentTrip: &TripSummary{Direction: "UA-GB", Cargo: "Furniture", Cost: 4100},
			Stats:       TruckStats{TotalDistance: 22325, TripDays: 100, Profit: 89600, FuelConsumption: 29.4},
			Trips: []Trip{
				{
					ID: "CURRENT_T004", TruckID: "T004", Direction: "UA-GB", Driver: "D003",
					StartDate: day(2025, time.June, 1),
					Cargo:     "Furniture", Client: "UK Furniture Ltd",
					StartKm: 22000,
					Cost:    4100,
					Route:   []Waypoint{kyiv, warsaw, berlin, london},
					Status:  TripInProgress,
					CurrentPosition: &Position{
						Lat:       51.5074,
						Lng:       -0.1278,
						Timestamp: mustTime("2025-06-04T11:15:00Z"),
					},
				},
			},
		},
	}
}

func seedDrivers() []Driver {
	return []Driver{
		{
			ID: "D001", Name: "Ivan Petrov", Age: 35,
			Status: DriverActive, CurrentStatus: ActivityInTrip, TotalKm: 145000,
			HireDate: day(2021, time.March, 15), LastActive: day(2025, time.April, 14),
			Stats: DriverStats{
				TotalKm: 145000, TotalSpent: 65450, MoneyPerKm: 0.45, FuelExpenses: 52360,
				MoneyPerLiter: 1.58, TotalEarned: 189500, TripDays: 536, UaNlKm: 85000, UaGbKm: 60000,
			},
			Notes: []Note{
				{Date: day(2025, time.April, 8), Author: "Dispatch", Text: "Delivered TR1001 to TechCorp BV on schedule."},
				{Date: day(2025, time.March, 27), Author: "Fleet Manager", Text: "Requested Prague rest stop for the next UA-NL run."},
			},
		},
		{
			ID: "D002", Name: "Petro Smirnov", Age: 42,
			Status: DriverActive, CurrentStatus: ActivityAvailable, TotalKm: 178500,
			HireDate: day(2019, time.August, 20), LastActive: day(2025, time.April, 10),
			Stats: DriverStats{
				TotalKm: 178500, TotalSpent: 77800, MoneyPerKm: 0.44, FuelExpenses: 62400,
				MoneyPerLiter: 1.56, TotalEarned: 234500, TripDays: 620, UaNlKm: 95000, UaGbKm: 83500,
			},
			Notes: []Note{
				{Date: day(2025, time.March, 19), Author: "Dispatch", Text: "Customs delay at the UK border, 6 hours."},
			},
		},
		{
			ID: "D003", Name: "Oleksandr Kozak", Age: 29,
			Status: DriverActive, CurrentStatus: ActivityInTrip, TotalKm: 85300,
			HireDate: day(2023, time.January, 10), LastActive: day(2025, time.April, 14),
			Stats: DriverStats{
				TotalKm: 85300, TotalSpent: 40250, MoneyPerKm: 0.47, FuelExpenses: 32100,
				MoneyPerLiter: 1.62, TotalEarned: 115200, TripDays: 325, UaNlKm: 38000, UaGbKm: 47300,
			},
			Notes: []Note{},
		},
		{
			ID: "D004", Name: "Mikhail Ivanenko", Age: 45,
			Status: DriverInactive, CurrentStatus: ActivityOnLeave, TotalKm: 210000,
			HireDate: day(2018, time.May, 12), LeaveDate: dayPtr(2025, time.March, 20),
			LastActive: day(2025, time.March, 20),
			Stats: DriverStats{
				TotalKm: 210000, TotalSpent: 92400, MoneyPerKm: 0.44, FuelExpenses: 73500,
				MoneyPerLiter: 1.54, TotalEarned: 278600, TripDays: 745, UaNlKm: 125000, UaGbKm: 85000,
			},
			Notes: []Note{},
		},
	}
}

func seedSeries() []ChartSeries {
	return []ChartSeries{
		{
			Name:   SeriesProfitLoss,
			Labels: append([]string(nil), months...),
			Datasets: []Dataset{
				{Key: "revenue", Label: "Revenue", Data: []float64{38500, 42300, 45800, 49200, 51000, 55400, 59800, 63200, 68500, 72300, 76800, 81200}},
				{Key: "expenses", Label: "Expenses", Data: []float64{22800, 24500, 26200, 27800, 29400, 31000, 32600, 34200, 35800, 37400, 39000, 40600}},
			},
		},
		{
			Name:   SeriesTruckPerformance,
			Labels: append([]string(nil), months...),
			Datasets: []Dataset{
				{Key: "distance", Label: "Distance (km)", Data: []float64{3200, 2900, 3500, 3100, 3600, 3400, 3800, 3500, 3700, 3900, 4100, 4200}},
				{Key: "fuel", Label: "Fuel Consumption (l/100km)", Data: []float64{28.2, 28.5, 27.9, 28.1, 28.4, 28.7, 28.2, 28.0, 28.3, 28.5, 28.7, 28.9}},
				{Key: "profit", Label: "Profit (€)", Data: []float64{5800, 5300, 6200, 5700, 6500, 6100, 6800, 6300, 6700, 7100, 7400, 7600}},
			},
		},
		{
			Name:   SeriesDriverPerformance,
			Labels: append([]string(nil), months...),
			Datasets: []Dataset{
				{Key: "distance", Label: "Distance (km)", Data: []float64{5200, 4800, 5500, 5100, 5600, 5300, 5800, 5400, 5700, 6000, 6200, 6400}},
				{Key: "expenses", Label: "Expenses (€)", Data: []float64{2300, 2100, 2400, 2200, 2500, 2300, 2600, 2400, 2500, 2700, 2800, 2900}},
				{Key: "earnings", Label: "Earnings (€)", Data: []float64{6800, 6300, 7200, 6700, 7500, 7000, 7800, 7200, 7600, 8000, 8300, 8500}},
			},
		},
	}
}
