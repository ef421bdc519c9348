package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"tmhire-backend/internal/model"
	"tmhire-backend/internal/timeutil"
)

// defaultLoadMinutes is used for the load segment when the order does not
// carry an explicit load_time.
const defaultLoadMinutes = 5

// PlantSpec is the gantt-time snapshot of a plant.
type PlantSpec struct {
	ID              uuid.UUID
	Name            string
	CapacityPerHour float64
}

// GanttInput is everything one gantt projection needs: the query day, the
// committed schedules touching it, and fleet snapshots for labeling.
type GanttInput struct {
	Day         time.Time
	Schedules   []model.Schedule
	Mixers      []VehicleSpec
	Pumps       []PumpSpec
	Plants      []PlantSpec
	AvgCapacity float64
}

// BuildGantt derives the visual segments for every mixer and pump with trips
// on the query day, plus per-plant hourly utilization. It is a projection
// only; nothing here is authoritative.
func BuildGantt(in GanttInput) *model.GanttResult {
	result := &model.GanttResult{
		Mixers: []model.GanttMixer{},
		Pumps:  []model.GanttPump{},
		Plants: []model.PlantUtilization{},
	}

	mixerTasks := make(map[uuid.UUID][]model.GanttTask)
	pumpTasks := make(map[uuid.UUID][]model.GanttTask)

	for i := range in.Schedules {
		sched := &in.Schedules[i]
		trips := sched.ActiveTrips()
		if len(trips) == 0 {
			continue
		}
		appendVehicleTasks(mixerTasks, sched, trips, in.Day)
		if sched.PumpID != nil {
			appendPumpTasks(pumpTasks, sched, trips, in.Day)
		}
	}

	for _, mixer := range in.Mixers {
		tasks, ok := mixerTasks[mixer.ID]
		if !ok {
			continue
		}
		sortTasks(tasks)
		result.Mixers = append(result.Mixers, model.GanttMixer{
			ID:    mixer.ID,
			Name:  mixer.Identifier,
			Plant: mixer.PlantName,
			Tasks: tasks,
		})
	}

	for _, pump := range in.Pumps {
		tasks, ok := pumpTasks[pump.ID]
		if !ok {
			continue
		}
		sortTasks(tasks)
		result.Pumps = append(result.Pumps, model.GanttPump{
			ID:    pump.ID,
			Name:  pump.Identifier,
			Plant: pump.PlantName,
			Type:  pump.Type,
			Tasks: tasks,
		})
	}

	result.Plants = buildPlantUtilization(in, mixerTasks)
	return result
}

// appendVehicleTasks walks each trip backward and forward from its anchors to
// derive the buffer/load/onward/work/return segments, plus a cushion segment
// when the vehicle idles before its next trip.
func appendVehicleTasks(out map[uuid.UUID][]model.GanttTask, sched *model.Schedule, trips model.TripTable, day time.Time) {
	loadMinutes := sched.InputParams.LoadTime
	if loadMinutes <= 0 {
		loadMinutes = defaultLoadMinutes
	}
	load := timeutil.Minutes(loadMinutes)
	buffer := timeutil.Minutes(sched.InputParams.BufferTime)

	// Next trip of the same vehicle, for cushion segments.
	nextByVehicle := make(map[uuid.UUID][]model.Trip)
	for _, trip := range trips {
		nextByVehicle[trip.TMID] = append(nextByVehicle[trip.TMID], trip)
	}

	for _, trip := range trips {
		plantLoad := trip.PlantStart.Add(-load)
		plantBuffer := plantLoad.Add(-buffer)

		segments := []model.GanttTask{
			segment(sched, trip, model.GanttTaskBuffer, plantBuffer, plantLoad),
			segment(sched, trip, model.GanttTaskLoad, plantLoad, trip.PlantStart),
			segment(sched, trip, model.GanttTaskOnward, trip.PlantStart, trip.PumpStart),
			segment(sched, trip, model.GanttTaskWork, trip.PumpStart, trip.UnloadingTime),
			segment(sched, trip, model.GanttTaskReturn, trip.UnloadingTime, trip.Return),
		}

		if next, ok := followingTrip(nextByVehicle[trip.TMID], trip); ok {
			nextBuffer := next.PlantStart.Add(-load).Add(-buffer)
			if nextBuffer.After(trip.Return) {
				segments = append(segments, segment(sched, trip, model.GanttTaskCushion, trip.Return, nextBuffer))
			}
		}

		for _, seg := range segments {
			if !onDay(seg, day) {
				continue
			}
			out[trip.TMID] = append(out[trip.TMID], seg)
		}
	}
}

// appendPumpTasks derives the pump's own timeline: travel and fixing before
// the first vehicle unloads, one continuous work block, then removal and the
// return leg. The return leg reuses pump_onward_time.
func appendPumpTasks(out map[uuid.UUID][]model.GanttTask, sched *model.Schedule, trips model.TripTable, day time.Time) {
	first := trips[0]
	last := trips[len(trips)-1]
	for _, trip := range trips {
		if trip.PumpStart.Before(first.PumpStart) {
			first = trip
		}
		if trip.UnloadingTime.After(last.UnloadingTime) {
			last = trip
		}
	}

	params := sched.InputParams
	fixingStart := first.PumpStart.Add(-timeutil.Minutes(params.PumpFixingTime))
	onwardStart := fixingStart.Add(-timeutil.Minutes(params.PumpOnwardTime))
	removalEnd := last.UnloadingTime.Add(timeutil.Minutes(params.PumpRemovalTime))
	returnEnd := removalEnd.Add(timeutil.Minutes(params.PumpOnwardTime))

	pumpID := *sched.PumpID
	segments := []model.GanttTask{
		pumpSegment(sched, model.GanttTaskOnward, onwardStart, fixingStart),
		pumpSegment(sched, model.GanttTaskFixing, fixingStart, first.PumpStart),
		pumpSegment(sched, model.GanttTaskWork, first.PumpStart, last.UnloadingTime),
		pumpSegment(sched, model.GanttTaskRemoval, last.UnloadingTime, removalEnd),
		pumpSegment(sched, model.GanttTaskReturn, removalEnd, returnEnd),
	}
	for _, seg := range segments {
		if !onDay(seg, day) {
			continue
		}
		out[pumpID] = append(out[pumpID], seg)
	}
}

// buildPlantUtilization aggregates, per plant and per hour of the day, how
// many distinct vehicles had a load segment in that hour against the plant's
// theoretical hourly throughput.
func buildPlantUtilization(in GanttInput, mixerTasks map[uuid.UUID][]model.GanttTask) []model.PlantUtilization {
	plantOf := make(map[uuid.UUID]uuid.UUID)
	for _, mixer := range in.Mixers {
		if mixer.PlantID != nil {
			plantOf[mixer.ID] = *mixer.PlantID
		}
	}

	utilization := make([]model.PlantUtilization, 0, len(in.Plants))
	for _, plant := range in.Plants {
		entry := model.PlantUtilization{
			PlantID:   plant.ID,
			PlantName: plant.Name,
			Hourly:    make([]model.HourUtilization, 0, 24),
		}

		theoretical := theoreticalVehiclesPerHour(plant.CapacityPerHour, in.AvgCapacity)

		for hour := 0; hour < 24; hour++ {
			hourStart := timeutil.At(in.Day, hour, 0)
			hourEnd := hourStart.Add(time.Hour)

			seen := map[uuid.UUID]bool{}
			for mixerID, tasks := range mixerTasks {
				if plantOf[mixerID] != plant.ID {
					continue
				}
				for _, task := range tasks {
					if task.Kind != model.GanttTaskLoad {
						continue
					}
					if timeutil.Overlaps(task.Start, task.End, hourStart, hourEnd) {
						seen[mixerID] = true
						break
					}
				}
			}

			hourEntry := model.HourUtilization{Hour: hour, TMCount: len(seen)}
			if theoretical > 0 {
				hourEntry.Utilization = float64(len(seen)) / float64(theoretical) * 100
			}
			for id := range seen {
				hourEntry.TMIDs = append(hourEntry.TMIDs, id)
			}
			sort.Slice(hourEntry.TMIDs, func(i, j int) bool {
				return hourEntry.TMIDs[i].String() < hourEntry.TMIDs[j].String()
			})
			entry.Hourly = append(entry.Hourly, hourEntry)
		}

		utilization = append(utilization, entry)
	}
	return utilization
}

// theoreticalVehiclesPerHour derives how many vehicles a plant can load per
// hour: minutes per load come from the plant throughput and the fleet average
// capacity, rounded up to 5-minute granularity.
func theoreticalVehiclesPerHour(plantCapacityPerHour, avgCapacity float64) int {
	if plantCapacityPerHour <= 0 || avgCapacity <= 0 {
		return 0
	}
	loadMinutes := timeutil.RoundUpMinutes(60*avgCapacity/plantCapacityPerHour, 5)
	return (60 + loadMinutes - 1) / loadMinutes
}

func segment(sched *model.Schedule, trip model.Trip, kind model.GanttTaskKind, start, end time.Time) model.GanttTask {
	return model.GanttTask{
		ID:         fmt.Sprintf("%s-trip%d-%s", sched.ID, trip.TripNo, kind),
		Start:      start,
		End:        end,
		Client:     sched.ClientName,
		Project:    sched.ProjectName,
		ScheduleNo: sched.ScheduleNo,
		Kind:       kind,
	}
}

func pumpSegment(sched *model.Schedule, kind model.GanttTaskKind, start, end time.Time) model.GanttTask {
	return model.GanttTask{
		ID:         fmt.Sprintf("%s-pump-%s", sched.ID, kind),
		Start:      start,
		End:        end,
		Client:     sched.ClientName,
		Project:    sched.ProjectName,
		ScheduleNo: sched.ScheduleNo,
		Kind:       kind,
	}
}

func followingTrip(vehicleTrips []model.Trip, current model.Trip) (model.Trip, bool) {
	for _, trip := range vehicleTrips {
		if trip.TripNoForTM == current.TripNoForTM+1 {
			return trip, true
		}
	}
	return model.Trip{}, false
}

func onDay(task model.GanttTask, day time.Time) bool {
	return timeutil.Overlaps(task.Start, task.End, timeutil.DayStart(day), timeutil.DayEnd(day))
}

func sortTasks(tasks []model.GanttTask) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Start.Equal(tasks[j].Start) {
			return tasks[i].ID < tasks[j].ID
		}
		return tasks[i].Start.Before(tasks[j].Start)
	})
}
