package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/engine"
	"tmhire-backend/internal/model"
	"tmhire-backend/internal/repository"
)

// ScheduleService orchestrates one delivery order: estimator sizing on draft
// creation, the availability gate and trip generation on dispatch, and the
// update-resets-to-draft rule.
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	tmRepo       *repository.TMRepository
	pumpRepo     *repository.PumpRepository
	projector    engine.Projector
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	tmRepo *repository.TMRepository,
	pumpRepo *repository.PumpRepository,
	projector engine.Projector,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		tmRepo:       tmRepo,
		pumpRepo:     pumpRepo,
		projector:    projector,
	}
}

func (s *ScheduleService) List(ctx context.Context, principal model.Principal) ([]model.Schedule, error) {
	return s.scheduleRepo.List(ctx, principal.UserID)
}

func (s *ScheduleService) Get(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, principal.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	deleted, err := s.scheduleRepo.Delete(ctx, principal.UserID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

type CreateScheduleInput struct {
	ScheduleNo  string
	ClientName  string
	ProjectName string
	SiteAddress string
	PlantID     *uuid.UUID
	Type        model.ScheduleType
	InputParams model.InputParams
}

type DraftResult struct {
	Schedule *model.Schedule  `json:"schedule"`
	Estimate *engine.Estimate `json:"estimate"`
}

// CalculateTM sizes the job against the current fleet and creates the draft
// schedule the caller will later dispatch.
func (s *ScheduleService) CalculateTM(ctx context.Context, principal model.Principal, input CreateScheduleInput) (*DraftResult, error) {
	if err := validateParams(input.InputParams); err != nil {
		return nil, err
	}

	avgCapacity, err := s.tmRepo.AverageCapacity(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	estimate, err := engine.EstimateFleet(input.InputParams, avgCapacity)
	if err != nil {
		return nil, err
	}

	schedType := input.Type
	if schedType == "" {
		schedType = model.ScheduleTypePumping
	}

	schedule := &model.Schedule{
		UserID:       principal.UserID,
		ScheduleNo:   input.ScheduleNo,
		ClientName:   input.ClientName,
		ProjectName:  input.ProjectName,
		SiteAddress:  input.SiteAddress,
		PlantID:      input.PlantID,
		Type:         schedType,
		Variant:      model.TableVariantStandard,
		Status:       model.ScheduleStatusDraft,
		InputParams:  input.InputParams,
		OutputTable:  model.TripTable{},
		BurstTable:   model.TripTable{},
		ScheduleDate: input.InputParams.ScheduleDate,
		TMCount:      estimate.TMCount,
		TripCount:    estimate.TotalTrips,
		PumpingTime:  estimate.PumpingTime,
	}
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, err
	}

	return &DraftResult{Schedule: schedule, Estimate: estimate}, nil
}

type UpdateScheduleInput struct {
	ScheduleNo  *string
	ClientName  *string
	ProjectName *string
	SiteAddress *string
	InputParams *model.InputParams
}

// Update edits schedule metadata. Any change to input params resets the
// schedule to draft with an emptied trip table; there is no incremental
// patching of a generated table.
func (s *ScheduleService) Update(ctx context.Context, principal model.Principal, id uuid.UUID, input UpdateScheduleInput) (*model.Schedule, error) {
	schedule, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}

	if input.ScheduleNo != nil {
		schedule.ScheduleNo = *input.ScheduleNo
	}
	if input.ClientName != nil {
		schedule.ClientName = *input.ClientName
	}
	if input.ProjectName != nil {
		schedule.ProjectName = *input.ProjectName
	}
	if input.SiteAddress != nil {
		schedule.SiteAddress = *input.SiteAddress
	}
	if input.InputParams != nil {
		if err := validateParams(*input.InputParams); err != nil {
			return nil, err
		}
		schedule.InputParams = *input.InputParams
		schedule.ScheduleDate = input.InputParams.ScheduleDate
		schedule.PumpingTime = input.InputParams.Quantity / input.InputParams.PumpingSpeed
		schedule.Status = model.ScheduleStatusDraft
		schedule.OutputTable = model.TripTable{}
		schedule.BurstTable = model.TripTable{}
		schedule.TripCount = 0
	}

	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Generate runs the availability gate and the dispatch engine, then persists
// the trip table. All-or-nothing: any failure leaves the schedule in draft.
func (s *ScheduleService) Generate(ctx context.Context, principal model.Principal, id uuid.UUID, vehicleIDs []uuid.UUID, pumpID *uuid.UUID) (*model.Schedule, error) {
	schedule, err := s.Get(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	switch schedule.Status {
	case model.ScheduleStatusDraft, model.ScheduleStatusGenerated:
	default:
		return nil, ErrInvalidStatus
	}
	if len(vehicleIDs) == 0 {
		return nil, ErrInvalidInput
	}

	vehicles, err := s.loadVehicles(ctx, principal, vehicleIDs)
	if err != nil {
		return nil, err
	}

	committed, err := s.scheduleRepo.ListCommittedAround(ctx, principal.UserID, schedule.ScheduleDate)
	if err != nil {
		return nil, err
	}
	committed = excludeSchedule(committed, schedule.ID)

	availability := s.projector.CheckAvailability(schedule.ScheduleDate, vehicleIDs, committed)
	if !availability.AllAvailable {
		return nil, &engine.VehicleUnavailableError{
			Identifiers: identifiersFor(vehicles, availability.Unavailable),
		}
	}

	var pump *engine.PumpSpec
	if schedule.Type == model.ScheduleTypePumping {
		if pumpID == nil {
			return nil, engine.ErrMissingPump
		}
		p, err := s.pumpRepo.GetByID(ctx, principal.UserID, *pumpID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		pump = &engine.PumpSpec{ID: p.ID, Identifier: p.Identifier, Type: p.Type}
		if p.Plant != nil {
			pump.PlantName = p.Plant.Name
		}
	}

	trips, err := engine.GenerateTrips(engine.DispatchRequest{
		Params:   schedule.InputParams,
		Type:     schedule.Type,
		Vehicles: vehicles,
		Pump:     pump,
	})
	if err != nil {
		return nil, err
	}

	schedule.OutputTable = trips
	schedule.Status = model.ScheduleStatusGenerated
	schedule.TMCount = len(vehicles)
	schedule.TripCount = len(trips)
	schedule.PumpID = pumpID
	if err := s.scheduleRepo.Save(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// loadVehicles fetches the selected mixers and restores the caller's
// selection order, which the dispatcher uses as its final tie-break.
func (s *ScheduleService) loadVehicles(ctx context.Context, principal model.Principal, ids []uuid.UUID) ([]engine.VehicleSpec, error) {
	tms, err := s.tmRepo.GetByIDs(ctx, principal.UserID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.TransitMixer, len(tms))
	for _, tm := range tms {
		byID[tm.ID] = tm
	}

	vehicles := make([]engine.VehicleSpec, 0, len(ids))
	for _, id := range ids {
		tm, ok := byID[id]
		if !ok || tm.Status != model.FleetStatusActive {
			return nil, ErrInvalidInput
		}
		spec := engine.VehicleSpec{
			ID:         tm.ID,
			Identifier: tm.Identifier,
			Capacity:   tm.Capacity,
			PlantID:    tm.PlantID,
		}
		if tm.Plant != nil {
			spec.PlantName = tm.Plant.Name
		}
		vehicles = append(vehicles, spec)
	}
	return vehicles, nil
}

func validateParams(params model.InputParams) error {
	if params.Quantity <= 0 || params.PumpingSpeed <= 0 {
		return ErrInvalidInput
	}
	if params.OnwardTime < 0 || params.ReturnTime < 0 || params.BufferTime < 0 || params.UnloadingTime < 0 {
		return ErrInvalidInput
	}
	if params.PumpStart.IsZero() || params.ScheduleDate.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

func excludeSchedule(schedules []model.Schedule, id uuid.UUID) []model.Schedule {
	out := schedules[:0]
	for _, sched := range schedules {
		if sched.ID != id {
			out = append(out, sched)
		}
	}
	return out
}

func identifiersFor(vehicles []engine.VehicleSpec, ids []uuid.UUID) []string {
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	identifiers := make([]string, 0, len(ids))
	for _, v := range vehicles {
		if wanted[v.ID] {
			identifiers = append(identifiers, v.Identifier)
		}
	}
	return identifiers
}
