package engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tmhire-backend/internal/model"
)

func ganttFixture() (GanttInput, uuid.UUID, uuid.UUID) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	plantID := uuid.New()
	tmID := uuid.New()
	pumpID := uuid.New()

	sched := model.Schedule{
		ID:          uuid.New(),
		ScheduleNo:  "S-42",
		ClientName:  "Acme Constructions",
		ProjectName: "Tower B",
		PumpID:      &pumpID,
		Status:      model.ScheduleStatusGenerated,
		Variant:     model.TableVariantStandard,
		InputParams: model.InputParams{
			Quantity:        14,
			PumpingSpeed:    30,
			OnwardTime:      30,
			ReturnTime:      25,
			BufferTime:      5,
			PumpOnwardTime:  20,
			PumpFixingTime:  15,
			PumpRemovalTime: 10,
			PumpStart:       at(8, 0),
			ScheduleDate:    day,
		},
		OutputTable: model.TripTable{
			{
				TripNo: 1, TripNoForTM: 1, TMID: tmID, TMNo: "TM-A",
				PlantStart: at(7, 30), PumpStart: at(8, 0),
				UnloadingTime: at(8, 14), Return: at(8, 39),
			},
			{
				TripNo: 2, TripNoForTM: 2, TMID: tmID, TMNo: "TM-A",
				PlantStart: at(8, 50), PumpStart: at(9, 20),
				UnloadingTime: at(9, 34), Return: at(9, 59),
			},
		},
	}

	input := GanttInput{
		Day:       day,
		Schedules: []model.Schedule{sched},
		Mixers: []VehicleSpec{
			{ID: tmID, Identifier: "TM-A", PlantID: &plantID, PlantName: "North Plant"},
		},
		Pumps: []PumpSpec{
			{ID: pumpID, Identifier: "P-1", Type: model.PumpTypeBoom, PlantName: "North Plant"},
		},
		Plants: []PlantSpec{
			{ID: plantID, Name: "North Plant", CapacityPerHour: 30},
		},
		AvgCapacity: 8,
	}
	return input, tmID, pumpID
}

func taskByKindAndTrip(tasks []model.GanttTask, kind model.GanttTaskKind, tripNo int) (model.GanttTask, bool) {
	suffix := string(kind)
	for _, task := range tasks {
		if task.Kind == kind && containsTrip(task.ID, tripNo, suffix) {
			return task, true
		}
	}
	return model.GanttTask{}, false
}

func containsTrip(id string, tripNo int, suffix string) bool {
	want := "-trip" + string(rune('0'+tripNo)) + "-" + suffix
	return len(id) >= len(want) && id[len(id)-len(want):] == want
}

func TestBuildGanttMixerSegments(t *testing.T) {
	input, tmID, _ := ganttFixture()
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	result := BuildGantt(input)
	require.Len(t, result.Mixers, 1)

	mixer := result.Mixers[0]
	assert.Equal(t, tmID, mixer.ID)
	assert.Equal(t, "TM-A", mixer.Name)
	assert.Equal(t, "North Plant", mixer.Plant)

	// Two trips, five segments each, plus one cushion between them.
	require.Len(t, mixer.Tasks, 11)

	// Segments are sorted and contiguous for the first trip: the vehicle
	// buffers, loads for the default five minutes, drives, unloads, returns.
	buffer, ok := taskByKindAndTrip(mixer.Tasks, model.GanttTaskBuffer, 1)
	require.True(t, ok)
	assert.Equal(t, at(7, 20), buffer.Start)
	assert.Equal(t, at(7, 25), buffer.End)

	load, ok := taskByKindAndTrip(mixer.Tasks, model.GanttTaskLoad, 1)
	require.True(t, ok)
	assert.Equal(t, at(7, 25), load.Start)
	assert.Equal(t, at(7, 30), load.End)

	work, ok := taskByKindAndTrip(mixer.Tasks, model.GanttTaskWork, 1)
	require.True(t, ok)
	assert.Equal(t, at(8, 0), work.Start)
	assert.Equal(t, at(8, 14), work.End)

	// Cushion spans from the first return to the second trip's buffer start.
	cushion, ok := taskByKindAndTrip(mixer.Tasks, model.GanttTaskCushion, 1)
	require.True(t, ok)
	assert.Equal(t, at(8, 39), cushion.Start)
	assert.Equal(t, at(8, 40), cushion.End)

	for i := 1; i < len(mixer.Tasks); i++ {
		assert.False(t, mixer.Tasks[i].Start.Before(mixer.Tasks[i-1].Start))
	}
	for _, task := range mixer.Tasks {
		assert.Equal(t, "Acme Constructions", task.Client)
		assert.Equal(t, "S-42", task.ScheduleNo)
		assert.True(t, task.Start.Before(task.End))
	}
}

func TestBuildGanttPumpSegments(t *testing.T) {
	input, _, pumpID := ganttFixture()
	at := func(h, m int) time.Time {
		return time.Date(2025, 1, 15, h, m, 0, 0, time.UTC)
	}

	result := BuildGantt(input)
	require.Len(t, result.Pumps, 1)

	pump := result.Pumps[0]
	assert.Equal(t, pumpID, pump.ID)
	assert.Equal(t, "P-1", pump.Name)
	assert.Equal(t, model.PumpTypeBoom, pump.Type)
	require.Len(t, pump.Tasks, 5)

	// onward -> fixing -> work -> removal -> return, back to back.
	assert.Equal(t, model.GanttTaskOnward, pump.Tasks[0].Kind)
	assert.Equal(t, at(7, 25), pump.Tasks[0].Start)
	assert.Equal(t, at(7, 45), pump.Tasks[0].End)

	assert.Equal(t, model.GanttTaskFixing, pump.Tasks[1].Kind)
	assert.Equal(t, at(8, 0), pump.Tasks[1].End)

	assert.Equal(t, model.GanttTaskWork, pump.Tasks[2].Kind)
	assert.Equal(t, at(8, 0), pump.Tasks[2].Start)
	assert.Equal(t, at(9, 34), pump.Tasks[2].End)

	assert.Equal(t, model.GanttTaskRemoval, pump.Tasks[3].Kind)
	assert.Equal(t, at(9, 44), pump.Tasks[3].End)

	assert.Equal(t, model.GanttTaskReturn, pump.Tasks[4].Kind)
	assert.Equal(t, at(10, 4), pump.Tasks[4].End)
}

func TestBuildGanttPlantUtilization(t *testing.T) {
	input, tmID, _ := ganttFixture()

	result := BuildGantt(input)
	require.Len(t, result.Plants, 1)

	plant := result.Plants[0]
	assert.Equal(t, "North Plant", plant.PlantName)
	require.Len(t, plant.Hourly, 24)

	// Plant does 30 cu.m/h against an 8 cu.m average: one load takes 16
	// minutes, rounded up to 20, so three loads per hour are theoretically
	// possible. One actual load in hour 7 and one in hour 8.
	for hour, entry := range plant.Hourly {
		assert.Equal(t, hour, entry.Hour)
		switch hour {
		case 7, 8:
			assert.Equal(t, 1, entry.TMCount)
			assert.Equal(t, []uuid.UUID{tmID}, entry.TMIDs)
			assert.InDelta(t, 100.0/3.0, entry.Utilization, 1e-9)
		default:
			assert.Equal(t, 0, entry.TMCount)
			assert.Zero(t, entry.Utilization)
		}
	}
}

func TestBuildGanttSkipsScheduleWithoutTrips(t *testing.T) {
	input, _, _ := ganttFixture()
	input.Schedules[0].OutputTable = model.TripTable{}

	result := BuildGantt(input)
	assert.Empty(t, result.Mixers)
	assert.Empty(t, result.Pumps)
}

func TestTheoreticalVehiclesPerHour(t *testing.T) {
	assert.Equal(t, 3, theoreticalVehiclesPerHour(30, 8))
	assert.Equal(t, 0, theoreticalVehiclesPerHour(0, 8))
	assert.Equal(t, 0, theoreticalVehiclesPerHour(30, 0))
	// 60*8/60 = 8 minutes, rounded to 10: six loads per hour.
	assert.Equal(t, 6, theoreticalVehiclesPerHour(60, 8))
}
