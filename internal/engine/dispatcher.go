package engine

import (
	"time"

	"github.com/google/uuid"

	"tmhire-backend/internal/model"
	"tmhire-backend/internal/timeutil"
)

// VehicleSpec is a dispatch-time snapshot of a transit mixer. The dispatcher
// never mutates registry data; it works on these copies.
type VehicleSpec struct {
	ID         uuid.UUID
	Identifier string
	Capacity   float64
	PlantID    *uuid.UUID
	PlantName  string
}

// PumpSpec is the pump assigned to a pumping-mode job.
type PumpSpec struct {
	ID         uuid.UUID
	Identifier string
	Type       model.PumpType
	PlantName  string
}

// DispatchRequest carries everything one generation call needs. Vehicles keep
// their input order; it is the final tie-break of the greedy rule.
type DispatchRequest struct {
	Params   model.InputParams
	Type     model.ScheduleType
	Vehicles []VehicleSpec
	Pump     *PumpSpec
}

// vehicleState is the per-vehicle accumulator for one dispatch call. It is
// owned by GenerateTrips and never shared, so generation stays a pure
// function of its inputs.
type vehicleState struct {
	nextAvailable time.Time
	usageCount    int
	tripCount     int
}

// GenerateTrips produces the ordered trip table for a schedule. Generation is
// all-or-nothing: any error discards partial results.
func GenerateTrips(req DispatchRequest) (model.TripTable, error) {
	if len(req.Vehicles) == 0 {
		return nil, ErrNoSuitableVehicle
	}
	for _, v := range req.Vehicles {
		if v.Capacity <= 0 {
			return nil, ErrInvalidFleet
		}
	}
	if req.Type == model.ScheduleTypeSupply {
		return generateSupplyTrip(req)
	}
	return generatePumpingTrips(req)
}

// generateSupplyTrip handles supply-mode jobs: one vehicle, one trip, no
// multi-trip accumulation.
func generateSupplyTrip(req DispatchRequest) (model.TripTable, error) {
	params := req.Params
	vehicle := req.Vehicles[0]

	unloading, err := resolveUnloading(params, vehicle.Capacity)
	if err != nil {
		return nil, err
	}

	plantStart := params.PumpStart.Add(-timeutil.Minutes(params.OnwardTime))
	unloadingEnd := params.PumpStart.Add(timeutil.Minutes(unloading))
	returnAt := unloadingEnd.Add(timeutil.Minutes(params.ReturnTime))

	trip := model.Trip{
		TripNo:            1,
		TripNoForTM:       1,
		TMID:              vehicle.ID,
		TMNo:              vehicle.Identifier,
		PlantName:         vehicle.PlantName,
		PlantStart:        plantStart,
		PumpStart:         params.PumpStart,
		UnloadingTime:     unloadingEnd,
		Return:            returnAt,
		CompletedCapacity: vehicle.Capacity,
		CycleTime:         returnAt.Sub(plantStart).Seconds(),
	}
	return model.TripTable{trip}, nil
}

// generatePumpingTrips runs the greedy loop: the pump wants the next vehicle
// to arrive the minute it finishes the current unload, and each round picks
// the vehicle that can arrive earliest, breaking ties by lowest usage count
// and then by input order.
func generatePumpingTrips(req DispatchRequest) (model.TripTable, error) {
	if req.Pump == nil {
		return nil, ErrMissingPump
	}

	params := req.Params
	onward := timeutil.Minutes(params.OnwardTime)
	buffer := timeutil.Minutes(params.BufferTime)

	states := make([]vehicleState, len(req.Vehicles))
	dayStart := timeutil.DayStart(params.PumpStart)
	for i := range states {
		states[i].nextAvailable = dayStart
	}

	trips := make(model.TripTable, 0)
	targetArrival := params.PumpStart
	completed := 0.0
	tripNo := 1

	for completed < params.Quantity {
		best := -1
		var bestArrival time.Time
		for i := range req.Vehicles {
			arrival := targetArrival
			if earliest := states[i].nextAvailable.Add(buffer + onward); earliest.After(arrival) {
				arrival = earliest
			}
			switch {
			case best < 0:
				best, bestArrival = i, arrival
			case arrival.Before(bestArrival):
				best, bestArrival = i, arrival
			case arrival.Equal(bestArrival) && states[i].usageCount < states[best].usageCount:
				best, bestArrival = i, arrival
			}
		}
		if best < 0 {
			return nil, ErrNoSuitableVehicle
		}

		vehicle := req.Vehicles[best]
		unloading, err := resolveUnloading(params, vehicle.Capacity)
		if err != nil {
			return nil, err
		}

		plantStart := bestArrival.Add(-onward)
		unloadingEnd := bestArrival.Add(timeutil.Minutes(unloading))
		returnAt := unloadingEnd.Add(timeutil.Minutes(params.ReturnTime))

		cushion := 0
		if states[best].tripCount > 0 {
			cushion = int(plantStart.Sub(states[best].nextAvailable).Minutes())
		}

		remaining := params.Quantity - completed
		if remaining <= vehicle.Capacity {
			completed = params.Quantity
		} else {
			completed += vehicle.Capacity
		}

		states[best].nextAvailable = returnAt
		states[best].usageCount++
		states[best].tripCount++

		trips = append(trips, model.Trip{
			TripNo:            tripNo,
			TripNoForTM:       states[best].tripCount,
			TMID:              vehicle.ID,
			TMNo:              vehicle.Identifier,
			PlantName:         vehicle.PlantName,
			PlantStart:        plantStart,
			PumpStart:         bestArrival,
			UnloadingTime:     unloadingEnd,
			Return:            returnAt,
			CompletedCapacity: completed,
			CycleTime:         returnAt.Sub(plantStart).Seconds(),
			CushionTime:       cushion,
		})

		targetArrival = unloadingEnd.Add(time.Minute)
		tripNo++
	}

	return trips, nil
}
