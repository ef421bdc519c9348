package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmhire-backend/internal/model"
)

func TestUnloadingTime(t *testing.T) {
	cases := []struct {
		name     string
		capacity float64
		want     int
	}{
		{"below range clamps to 6", 3, 10},
		{"exact 6", 6, 10},
		{"rounds down", 7.4, 12},
		{"rounds up", 7.5, 14},
		{"exact 9", 9, 15},
		{"exact 10", 10, 17},
		{"above range clamps to 10", 15, 17},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := UnloadingTime(tc.capacity)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEstimateFleet(t *testing.T) {
	params := model.InputParams{
		Quantity:     60,
		PumpingSpeed: 30,
		OnwardTime:   30,
		ReturnTime:   25,
		BufferTime:   5,
	}

	est, err := EstimateFleet(params, 8)
	require.NoError(t, err)

	// cycle = (30+25+5+14)/60 hours, pumping = 60/30 hours.
	assert.Equal(t, 14, est.UnloadingMinutes)
	assert.InDelta(t, 74.0/60.0, est.CycleTime, 1e-9)
	assert.InDelta(t, 2.0, est.PumpingTime, 1e-9)
	assert.Equal(t, 8, est.TotalTrips)
	assert.Equal(t, 5, est.TMCount)
	assert.Equal(t, 1, est.TripsPerTM)
	assert.Equal(t, 3, est.RemainingTrips)
}

func TestEstimateFleetHonorsUnloadingOverride(t *testing.T) {
	params := model.InputParams{
		Quantity:      60,
		PumpingSpeed:  30,
		OnwardTime:    30,
		ReturnTime:    25,
		BufferTime:    5,
		UnloadingTime: 9,
	}

	est, err := EstimateFleet(params, 8)
	require.NoError(t, err)
	assert.Equal(t, 9, est.UnloadingMinutes)
}

func TestEstimateFleetMinimumOneVehicle(t *testing.T) {
	params := model.InputParams{
		Quantity:     6,
		PumpingSpeed: 10,
		OnwardTime:   5,
		ReturnTime:   5,
	}

	est, err := EstimateFleet(params, 8)
	require.NoError(t, err)
	assert.Equal(t, 1, est.TMCount)
	assert.Equal(t, 1, est.TotalTrips)
}

func TestEstimateFleetErrors(t *testing.T) {
	params := model.InputParams{Quantity: 60, PumpingSpeed: 30}

	_, err := EstimateFleet(params, 0)
	assert.ErrorIs(t, err, ErrInvalidFleet)

	_, err = EstimateFleet(model.InputParams{Quantity: 0, PumpingSpeed: 30}, 8)
	assert.Error(t, err)

	_, err = EstimateFleet(model.InputParams{Quantity: 60, PumpingSpeed: 0}, 8)
	assert.Error(t, err)
}
