package model

import (
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
	SlotStatusBooked    SlotStatus = "booked"
)

// CalendarSlot is a fixed-width booking interval for one vehicle. Slots are
// derived from committed schedules on read and never stored.
type CalendarSlot struct {
	Start      time.Time  `json:"start"`
	End        time.Time  `json:"end"`
	TMID       uuid.UUID  `json:"tm_id"`
	Status     SlotStatus `json:"status"`
	ScheduleID *uuid.UUID `json:"schedule_id,omitempty"`
}

// TMDaySlots is one vehicle's slot row in a day calendar.
type TMDaySlots struct {
	TMID       uuid.UUID      `json:"tm_id"`
	Identifier string         `json:"tm_identifier"`
	PlantID    *uuid.UUID     `json:"plant_id,omitempty"`
	PlantName  string         `json:"plant_name,omitempty"`
	Slots      []CalendarSlot `json:"slots"`
}

type DaySchedule struct {
	Date time.Time    `json:"date"`
	TMs  []TMDaySlots `json:"tms"`
}

type AvailabilityResult struct {
	AllAvailable bool        `json:"all_available"`
	Unavailable  []uuid.UUID `json:"unavailable"`
}

type GanttTaskKind string

const (
	GanttTaskBuffer  GanttTaskKind = "buffer"
	GanttTaskLoad    GanttTaskKind = "load"
	GanttTaskOnward  GanttTaskKind = "onward"
	GanttTaskWork    GanttTaskKind = "work"
	GanttTaskReturn  GanttTaskKind = "return"
	GanttTaskCushion GanttTaskKind = "cushion"
	GanttTaskFixing  GanttTaskKind = "fixing"
	GanttTaskRemoval GanttTaskKind = "removal"
)

type GanttTask struct {
	ID         string        `json:"id"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Client     string        `json:"client,omitempty"`
	Project    string        `json:"project,omitempty"`
	ScheduleNo string        `json:"schedule_no,omitempty"`
	Kind       GanttTaskKind `json:"kind"`
}

type GanttMixer struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Plant string      `json:"plant"`
	Tasks []GanttTask `json:"tasks"`
}

type GanttPump struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Plant string      `json:"plant"`
	Type  PumpType    `json:"type"`
	Tasks []GanttTask `json:"tasks"`
}

type HourUtilization struct {
	Hour        int         `json:"hour"`
	TMCount     int         `json:"tm_count"`
	Utilization float64     `json:"utilization"`
	TMIDs       []uuid.UUID `json:"tm_ids,omitempty"`
}

type PlantUtilization struct {
	PlantID   uuid.UUID         `json:"plant_id"`
	PlantName string            `json:"plant_name"`
	Hourly    []HourUtilization `json:"hourly_utilization"`
}

type GanttResult struct {
	Mixers []GanttMixer       `json:"mixers"`
	Pumps  []GanttPump        `json:"pumps"`
	Plants []PlantUtilization `json:"plants"`
}
