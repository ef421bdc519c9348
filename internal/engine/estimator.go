package engine

import (
	"fmt"
	"math"

	"tmhire-backend/internal/model"
)

// Unloading minutes indexed by vehicle capacity. Capacities are clamped to
// [6, 10] before lookup, so the outer entries only matter for callers that
// bypass the clamp.
var unloadingMinutes = map[int]int{
	4:  7,
	6:  10,
	7:  12,
	8:  14,
	9:  15,
	10: 17,
	12: 20,
}

// UnloadingTime returns the minutes a vehicle of the given capacity needs at
// the pump. The capacity is rounded to the nearest integer and clamped to
// [6, 10].
func UnloadingTime(capacity float64) (int, error) {
	rounded := int(math.Round(capacity))
	if rounded < 6 {
		rounded = 6
	}
	if rounded > 10 {
		rounded = 10
	}
	minutes, ok := unloadingMinutes[rounded]
	if !ok {
		return 0, fmt.Errorf("no unloading time for capacity %d", rounded)
	}
	return minutes, nil
}

// resolveUnloading honors an explicit unloading_time override, otherwise
// derives it from the capacity lookup.
func resolveUnloading(params model.InputParams, capacity float64) (int, error) {
	if params.UnloadingTime > 0 {
		return params.UnloadingTime, nil
	}
	return UnloadingTime(capacity)
}

// Estimate sizes a job before dispatch. It is advisory: the dispatcher works
// with whatever vehicle selection the caller supplies.
type Estimate struct {
	TMCount          int     `json:"tm_count"`
	TotalTrips       int     `json:"total_trips"`
	TripsPerTM       int     `json:"trips_per_tm"`
	RemainingTrips   int     `json:"remaining_trips"`
	CycleTime        float64 `json:"cycle_time"`   // hours
	PumpingTime      float64 `json:"pumping_time"` // hours
	UnloadingMinutes int     `json:"unloading_minutes"`
}

// EstimateFleet computes the minimum vehicle and trip counts for the order
// described by params, given the fleet-wide average capacity.
func EstimateFleet(params model.InputParams, avgCapacity float64) (*Estimate, error) {
	if avgCapacity == 0 {
		return nil, ErrInvalidFleet
	}
	if params.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive, got %v", params.Quantity)
	}
	if params.PumpingSpeed <= 0 {
		return nil, fmt.Errorf("pumping speed must be positive, got %v", params.PumpingSpeed)
	}

	unloading, err := resolveUnloading(params, avgCapacity)
	if err != nil {
		return nil, err
	}

	cycleTime := float64(params.OnwardTime+params.ReturnTime+params.BufferTime+unloading) / 60
	pumpingTime := params.Quantity / params.PumpingSpeed

	totalTrips := int(math.Ceil(params.Quantity / avgCapacity))
	tmCount := int(math.Ceil((params.Quantity * cycleTime) / (pumpingTime * avgCapacity)))
	if tmCount < 1 {
		tmCount = 1
	}

	return &Estimate{
		TMCount:          tmCount,
		TotalTrips:       totalTrips,
		TripsPerTM:       totalTrips / tmCount,
		RemainingTrips:   totalTrips % tmCount,
		CycleTime:        cycleTime,
		PumpingTime:      pumpingTime,
		UnloadingMinutes: unloading,
	}, nil
}
