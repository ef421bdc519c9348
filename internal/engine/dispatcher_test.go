package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmhire-backend/internal/model"
	"tmhire-backend/internal/timeutil"
)

func pumpingRequest() DispatchRequest {
	pumpStart := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	return DispatchRequest{
		Params: model.InputParams{
			Quantity:     60,
			PumpingSpeed: 30,
			OnwardTime:   30,
			ReturnTime:   25,
			BufferTime:   5,
			PumpStart:    pumpStart,
			ScheduleDate: timeutil.DayStart(pumpStart),
		},
		Type: model.ScheduleTypePumping,
		Vehicles: []VehicleSpec{
			{ID: uuid.New(), Identifier: "TM-A", Capacity: 8},
			{ID: uuid.New(), Identifier: "TM-B", Capacity: 6},
		},
		Pump: &PumpSpec{ID: uuid.New(), Identifier: "P-1", Type: model.PumpTypeLine},
	}
}

func TestGenerateTripsPumping(t *testing.T) {
	req := pumpingRequest()
	trips, err := GenerateTrips(req)
	require.NoError(t, err)
	require.Len(t, trips, 9)

	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	// First trip starts the pump on time and goes to the first vehicle.
	first := trips[0]
	assert.Equal(t, "TM-A", first.TMNo)
	assert.Equal(t, at(8, 0), first.PumpStart)
	assert.Equal(t, at(7, 30), first.PlantStart)
	assert.Equal(t, at(8, 14), first.UnloadingTime)
	assert.Equal(t, at(8, 39), first.Return)
	assert.Equal(t, 0, first.CushionTime)
	assert.Equal(t, 8.0, first.CompletedCapacity)

	// Second trip arrives one minute after the first unload ends.
	second := trips[1]
	assert.Equal(t, "TM-B", second.TMNo)
	assert.Equal(t, at(8, 15), second.PumpStart)
	assert.Equal(t, at(8, 25), second.UnloadingTime)
	assert.Equal(t, 0, second.CushionTime)

	// Third trip reuses TM-A after its return plus buffer; cushion is the idle
	// gap between its previous return and the next plant start.
	third := trips[2]
	assert.Equal(t, "TM-A", third.TMNo)
	assert.Equal(t, at(9, 14), third.PumpStart)
	assert.Equal(t, 5, third.CushionTime)

	fourth := trips[3]
	assert.Equal(t, "TM-B", fourth.TMNo)
	assert.Equal(t, 9, fourth.CushionTime)

	// The final trip closes the order exactly.
	assert.Equal(t, req.Params.Quantity, trips[len(trips)-1].CompletedCapacity)
}

func TestGenerateTripsInvariants(t *testing.T) {
	req := pumpingRequest()
	trips, err := GenerateTrips(req)
	require.NoError(t, err)

	buffer := timeutil.Minutes(req.Params.BufferTime)
	lastReturn := map[uuid.UUID]time.Time{}
	completed := 0.0

	for i, trip := range trips {
		assert.Equal(t, i+1, trip.TripNo)
		assert.True(t, trip.PlantStart.Before(trip.PumpStart))
		assert.True(t, trip.PumpStart.Before(trip.UnloadingTime))
		assert.True(t, trip.UnloadingTime.Before(trip.Return))
		assert.InDelta(t, trip.Return.Sub(trip.PlantStart).Seconds(), trip.CycleTime, 1e-9)

		if i > 0 {
			assert.False(t, trip.PumpStart.Before(trips[i-1].PumpStart), "pump arrivals must not regress")
		}

		// A vehicle's next trip starts no earlier than its previous return plus
		// the buffer.
		if prev, ok := lastReturn[trip.TMID]; ok {
			assert.False(t, trip.PlantStart.Before(prev.Add(buffer)),
				"trip %d starts before %s is ready", trip.TripNo, trip.TMNo)
		}
		lastReturn[trip.TMID] = trip.Return

		assert.Greater(t, trip.CompletedCapacity, completed)
		completed = trip.CompletedCapacity
	}

	assert.Equal(t, req.Params.Quantity, completed)
}

func TestGenerateTripsDeterministic(t *testing.T) {
	req := pumpingRequest()

	a, err := GenerateTrips(req)
	require.NoError(t, err)
	b, err := GenerateTrips(req)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerateTripsSupply(t *testing.T) {
	pumpStart := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	req := DispatchRequest{
		Params: model.InputParams{
			Quantity:     8,
			PumpingSpeed: 30,
			OnwardTime:   30,
			ReturnTime:   25,
			PumpStart:    pumpStart,
		},
		Type: model.ScheduleTypeSupply,
		Vehicles: []VehicleSpec{
			{ID: uuid.New(), Identifier: "TM-A", Capacity: 8},
		},
	}

	trips, err := GenerateTrips(req)
	require.NoError(t, err)
	require.Len(t, trips, 1)

	trip := trips[0]
	assert.Equal(t, pumpStart.Add(-30*time.Minute), trip.PlantStart)
	assert.Equal(t, pumpStart, trip.PumpStart)
	assert.Equal(t, pumpStart.Add(14*time.Minute), trip.UnloadingTime)
	assert.Equal(t, pumpStart.Add(39*time.Minute), trip.Return)
	assert.Equal(t, 8.0, trip.CompletedCapacity)
}

func TestGenerateTripsErrors(t *testing.T) {
	req := pumpingRequest()

	empty := req
	empty.Vehicles = nil
	_, err := GenerateTrips(empty)
	assert.ErrorIs(t, err, ErrNoSuitableVehicle)

	badFleet := req
	badFleet.Vehicles = []VehicleSpec{{ID: uuid.New(), Identifier: "TM-X", Capacity: 0}}
	_, err = GenerateTrips(badFleet)
	assert.ErrorIs(t, err, ErrInvalidFleet)

	noPump := req
	noPump.Pump = nil
	_, err = GenerateTrips(noPump)
	assert.ErrorIs(t, err, ErrMissingPump)
}
