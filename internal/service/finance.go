package service

import "github.com/Vlad1s43nko/LogisticsSystem/internal/storage"

// AverageConsumption returns liters per 100 km, or 0 without distance
func AverageConsumption(liters, km float64) float64 {
	if km <= 0 {
		return 0
	}
	return liters / km * 100
}

// TripDistance is endKm minus startKm. It is unknown while the trip runs.
func TripDistance(trip storage.Trip) (int, bool) {
	if trip.EndKm == nil {
		return 0, false
	}
	return *trip.EndKm - trip.StartKm, true
}

// TripExpenses sums fuel and other expenses
func TripExpenses(trip storage.Trip) float64 {
	return trip.FuelCost + trip.OtherExpenses
}

// TripProfit is revenue minus expenses
func TripProfit(trip storage.Trip) float64 {
	return trip.Cost - TripExpenses(trip)
}

// FleetTotals aggregates completed trips
type FleetTotals struct {
	Trips              int     `json:"trips"`
	Revenue            float64 `json:"revenue"`
	Expenses           float64 `json:"expenses"`
	Profit             float64 `json:"profit"`
	DistanceKm         int     `json:"distance_km"`
	FuelLiters         float64 `json:"fuel_liters"`
	AverageConsumption float64 `json:"average_consumption"`
}

// ComputeFleetTotals sums every completed trip. Trips still in progress have
// no final figures and are skipped.
func ComputeFleetTotals(trips []storage.Trip) FleetTotals {
	var totals FleetTotals
	for _, trip := range trips {
		if trip.Status != storage.TripCompleted {
			continue
		}
		totals.Trips++
		totals.Revenue += trip.Cost
		totals.Expenses += TripExpenses(trip)
		totals.Profit += TripProfit(trip)
		totals.FuelLiters += trip.FuelConsumed
		if km, ok := TripDistance(trip); ok {
			totals.DistanceKm += km
		}
	}
	totals.AverageConsumption = AverageConsumption(totals.FuelLiters, float64(totals.DistanceKm))
	return totals
}
