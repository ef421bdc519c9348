package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tmhire-backend/internal/engine"
	"tmhire-backend/internal/model"
	"tmhire-backend/internal/repository"
)

// CalendarService renders the read-side projections: day calendars, per-TM
// availability and gantt charts. It degrades gracefully; a schedule that
// cannot be projected is logged and skipped, never fails the whole query.
type CalendarService struct {
	scheduleRepo *repository.ScheduleRepository
	tmRepo       *repository.TMRepository
	pumpRepo     *repository.PumpRepository
	plantRepo    *repository.PlantRepository
	projector    engine.Projector
	log          zerolog.Logger
}

func NewCalendarService(
	scheduleRepo *repository.ScheduleRepository,
	tmRepo *repository.TMRepository,
	pumpRepo *repository.PumpRepository,
	plantRepo *repository.PlantRepository,
	projector engine.Projector,
	log zerolog.Logger,
) *CalendarService {
	return &CalendarService{
		scheduleRepo: scheduleRepo,
		tmRepo:       tmRepo,
		pumpRepo:     pumpRepo,
		plantRepo:    plantRepo,
		projector:    projector,
		log:          log,
	}
}

type CalendarQuery struct {
	StartDate time.Time
	EndDate   time.Time
	PlantID   *uuid.UUID
	TMID      *uuid.UUID
}

// Range projects booking slots for every mixer over each day in the query
// range.
func (s *CalendarService) Range(ctx context.Context, principal model.Principal, query CalendarQuery) ([]model.DaySchedule, error) {
	tms, err := s.tmRepo.List(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	tms = filterTMs(tms, query.PlantID, query.TMID)

	days := make([]model.DaySchedule, 0)
	for day := query.StartDate; !day.After(query.EndDate); day = day.AddDate(0, 0, 1) {
		committed, err := s.scheduleRepo.ListCommittedAround(ctx, principal.UserID, day)
		if err != nil {
			s.log.Warn().Err(err).Time("day", day).Msg("skipping calendar day")
			continue
		}

		entry := model.DaySchedule{Date: day, TMs: make([]model.TMDaySlots, 0, len(tms))}
		for _, tm := range tms {
			row := model.TMDaySlots{
				TMID:       tm.ID,
				Identifier: tm.Identifier,
				PlantID:    tm.PlantID,
				Slots:      s.projector.SlotsForVehicle(day, tm.ID, committed),
			}
			if tm.Plant != nil {
				row.PlantName = tm.Plant.Name
			}
			entry.TMs = append(entry.TMs, row)
		}
		days = append(days, entry)
	}
	return days, nil
}

// TMAvailability returns one vehicle's slot statuses for a day.
func (s *CalendarService) TMAvailability(ctx context.Context, principal model.Principal, day time.Time, tmID uuid.UUID) ([]model.CalendarSlot, error) {
	committed, err := s.scheduleRepo.ListCommittedAround(ctx, principal.UserID, day)
	if err != nil {
		return nil, err
	}
	return s.projector.SlotsForVehicle(day, tmID, committed), nil
}

// CheckAvailability is the pre-dispatch gate exposed to the API.
func (s *CalendarService) CheckAvailability(ctx context.Context, principal model.Principal, day time.Time, tmIDs []uuid.UUID) (*model.AvailabilityResult, error) {
	committed, err := s.scheduleRepo.ListCommittedAround(ctx, principal.UserID, day)
	if err != nil {
		return nil, err
	}
	result := s.projector.CheckAvailability(day, tmIDs, committed)
	return &result, nil
}

// Gantt builds the full day chart: mixer rows, pump rows, and per-plant
// hourly utilization.
func (s *CalendarService) Gantt(ctx context.Context, principal model.Principal, day time.Time) (*model.GanttResult, error) {
	committed, err := s.scheduleRepo.ListCommittedAround(ctx, principal.UserID, day)
	if err != nil {
		return nil, err
	}
	tms, err := s.tmRepo.List(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	pumps, err := s.pumpRepo.List(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	plants, err := s.plantRepo.List(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	avgCapacity, err := s.tmRepo.AverageCapacity(ctx, principal.UserID)
	if err != nil {
		s.log.Warn().Err(err).Msg("average capacity lookup failed, plant utilization degraded")
		avgCapacity = 0
	}

	input := engine.GanttInput{
		Day:         day,
		Schedules:   committed,
		Mixers:      make([]engine.VehicleSpec, 0, len(tms)),
		Pumps:       make([]engine.PumpSpec, 0, len(pumps)),
		Plants:      make([]engine.PlantSpec, 0, len(plants)),
		AvgCapacity: avgCapacity,
	}
	for _, tm := range tms {
		spec := engine.VehicleSpec{ID: tm.ID, Identifier: tm.Identifier, Capacity: tm.Capacity, PlantID: tm.PlantID}
		if tm.Plant != nil {
			spec.PlantName = tm.Plant.Name
		}
		input.Mixers = append(input.Mixers, spec)
	}
	for _, pump := range pumps {
		spec := engine.PumpSpec{ID: pump.ID, Identifier: pump.Identifier, Type: pump.Type}
		if pump.Plant != nil {
			spec.PlantName = pump.Plant.Name
		}
		input.Pumps = append(input.Pumps, spec)
	}
	for _, plant := range plants {
		input.Plants = append(input.Plants, engine.PlantSpec{
			ID:              plant.ID,
			Name:            plant.Name,
			CapacityPerHour: plant.CapacityPerHour,
		})
	}

	return engine.BuildGantt(input), nil
}

func filterTMs(tms []model.TransitMixer, plantID, tmID *uuid.UUID) []model.TransitMixer {
	if plantID == nil && tmID == nil {
		return tms
	}
	out := make([]model.TransitMixer, 0, len(tms))
	for _, tm := range tms {
		if tmID != nil && tm.ID != *tmID {
			continue
		}
		if plantID != nil && (tm.PlantID == nil || *tm.PlantID != *plantID) {
			continue
		}
		out = append(out, tm)
	}
	return out
}
