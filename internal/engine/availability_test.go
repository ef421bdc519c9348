package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmhire-backend/internal/model"
)

func committedSchedule(trips ...model.Trip) model.Schedule {
	return model.Schedule{
		ID:          uuid.New(),
		Status:      model.ScheduleStatusGenerated,
		Variant:     model.TableVariantStandard,
		OutputTable: trips,
	}
}

func TestSlotsForVehicleEmptyDay(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tmID := uuid.New()

	slots := NewProjector().SlotsForVehicle(day, tmID, nil)
	require.Len(t, slots, 24)
	for _, slot := range slots {
		assert.Equal(t, model.SlotStatusAvailable, slot.Status)
		assert.Equal(t, tmID, slot.TMID)
		assert.Nil(t, slot.ScheduleID)
	}
}

func TestSlotsForVehicleBooksOverlappingSlotsOnly(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tmID := uuid.New()
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	sched := committedSchedule(model.Trip{
		TMID:       tmID,
		PlantStart: at(9, 0),
		Return:     at(9, 45),
	})

	slots := NewProjector().SlotsForVehicle(day, tmID, []model.Schedule{sched})
	require.Len(t, slots, 24)

	for i, slot := range slots {
		// Grid starts at 08:00; the 09:00-09:45 trip books slots 2 and 3.
		if i == 2 || i == 3 {
			assert.Equal(t, model.SlotStatusBooked, slot.Status, "slot %d", i)
			require.NotNil(t, slot.ScheduleID)
			assert.Equal(t, sched.ID, *slot.ScheduleID)
		} else {
			assert.Equal(t, model.SlotStatusAvailable, slot.Status, "slot %d", i)
		}
	}
}

func TestSlotsForVehicleIgnoresOtherVehicles(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tmID := uuid.New()
	other := uuid.New()

	sched := committedSchedule(model.Trip{
		TMID:       other,
		PlantStart: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC),
		Return:     time.Date(2025, 1, 15, 18, 0, 0, 0, time.UTC),
	})

	for _, slot := range NewProjector().SlotsForVehicle(day, tmID, []model.Schedule{sched}) {
		assert.Equal(t, model.SlotStatusAvailable, slot.Status)
	}
}

func TestSlotsForVehicleClipsMidnightSpillover(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	tmID := uuid.New()

	// Previous-day trip spilling past midnight into this day's 08:00 window
	// must not book anything here; it ends before the grid opens.
	sched := committedSchedule(model.Trip{
		TMID:       tmID,
		PlantStart: time.Date(2025, 1, 14, 22, 0, 0, 0, time.UTC),
		Return:     time.Date(2025, 1, 15, 1, 0, 0, 0, time.UTC),
	})

	for _, slot := range NewProjector().SlotsForVehicle(day, tmID, []model.Schedule{sched}) {
		assert.Equal(t, model.SlotStatusAvailable, slot.Status)
	}
}

func TestCheckAvailabilityLenient(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	busy := uuid.New()
	partiallyBusy := uuid.New()
	idle := uuid.New()

	schedules := []model.Schedule{
		// busy is blocked for the whole working window.
		committedSchedule(model.Trip{
			TMID:       busy,
			PlantStart: time.Date(2025, 1, 15, 7, 0, 0, 0, time.UTC),
			Return:     time.Date(2025, 1, 15, 21, 0, 0, 0, time.UTC),
		}),
		// partiallyBusy has one morning trip and free slots after.
		committedSchedule(model.Trip{
			TMID:       partiallyBusy,
			PlantStart: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC),
			Return:     time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		}),
	}

	p := NewProjector()

	result := p.CheckAvailability(day, []uuid.UUID{partiallyBusy, idle}, schedules)
	assert.True(t, result.AllAvailable)
	assert.Empty(t, result.Unavailable)

	result = p.CheckAvailability(day, []uuid.UUID{busy, partiallyBusy}, schedules)
	assert.False(t, result.AllAvailable)
	assert.Equal(t, []uuid.UUID{busy}, result.Unavailable)
}
