package engine

import (
	"time"

	"github.com/google/uuid"

	"tmhire-backend/internal/model"
	"tmhire-backend/internal/timeutil"
)

// Projector turns committed schedules into discretized per-vehicle booking
// slots for one calendar day.
type Projector struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
}

// NewProjector returns a projector over the standard working window of
// 08:00-20:00 in 30-minute slots.
func NewProjector() Projector {
	return Projector{StartHour: 8, EndHour: 20, SlotMinutes: 30}
}

// SlotsForVehicle projects the vehicle's booking slots for the given day. A
// slot is booked iff any committed trip of the vehicle overlaps it, with trips
// clipped to the day's boundaries first.
func (p Projector) SlotsForVehicle(day time.Time, vehicleID uuid.UUID, committed []model.Schedule) []model.CalendarSlot {
	grid := timeutil.SlotGrid(day, p.StartHour, p.EndHour, p.SlotMinutes)
	slots := make([]model.CalendarSlot, 0, len(grid))

	for _, interval := range grid {
		slot := model.CalendarSlot{
			Start:  interval.Start,
			End:    interval.End,
			TMID:   vehicleID,
			Status: model.SlotStatusAvailable,
		}
	schedules:
		for i := range committed {
			for _, trip := range committed[i].ActiveTrips() {
				if trip.TMID != vehicleID {
					continue
				}
				busyStart, busyEnd, ok := timeutil.ClipToDay(trip.PlantStart, trip.Return, day)
				if !ok {
					continue
				}
				if timeutil.Overlaps(busyStart, busyEnd, slot.Start, slot.End) {
					slot.Status = model.SlotStatusBooked
					scheduleID := committed[i].ID
					slot.ScheduleID = &scheduleID
					break schedules
				}
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// CheckAvailability is the pre-dispatch gate. A vehicle counts as available
// when it has at least one free slot that day. This deliberately does not
// check the specific window the new job needs; see DESIGN.md.
func (p Projector) CheckAvailability(day time.Time, vehicleIDs []uuid.UUID, committed []model.Schedule) model.AvailabilityResult {
	result := model.AvailabilityResult{AllAvailable: true, Unavailable: []uuid.UUID{}}
	for _, id := range vehicleIDs {
		if !p.hasFreeSlot(day, id, committed) {
			result.AllAvailable = false
			result.Unavailable = append(result.Unavailable, id)
		}
	}
	return result
}

func (p Projector) hasFreeSlot(day time.Time, vehicleID uuid.UUID, committed []model.Schedule) bool {
	for _, slot := range p.SlotsForVehicle(day, vehicleID, committed) {
		if slot.Status == model.SlotStatusAvailable {
			return true
		}
	}
	return false
}
