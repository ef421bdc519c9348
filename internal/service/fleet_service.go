package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/model"
	"tmhire-backend/internal/repository"
)

// FleetService owns the plant, transit mixer and pump registries. The dispatch
// engine only ever sees read-only snapshots of this data.
type FleetService struct {
	plantRepo *repository.PlantRepository
	tmRepo    *repository.TMRepository
	pumpRepo  *repository.PumpRepository
}

func NewFleetService(
	plantRepo *repository.PlantRepository,
	tmRepo *repository.TMRepository,
	pumpRepo *repository.PumpRepository,
) *FleetService {
	return &FleetService{
		plantRepo: plantRepo,
		tmRepo:    tmRepo,
		pumpRepo:  pumpRepo,
	}
}

func (s *FleetService) ListPlants(ctx context.Context, principal model.Principal) ([]model.Plant, error) {
	return s.plantRepo.List(ctx, principal.UserID)
}

func (s *FleetService) GetPlant(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Plant, error) {
	plant, err := s.plantRepo.GetByID(ctx, principal.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plant, nil
}

type CreatePlantInput struct {
	Name            string
	Location        string
	CapacityPerHour float64
}

func (s *FleetService) CreatePlant(ctx context.Context, principal model.Principal, input CreatePlantInput) (*model.Plant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}
	plant := &model.Plant{
		UserID:          principal.UserID,
		Name:            strings.TrimSpace(input.Name),
		Location:        input.Location,
		CapacityPerHour: input.CapacityPerHour,
	}
	if err := s.plantRepo.Create(ctx, plant); err != nil {
		return nil, err
	}
	return plant, nil
}

func (s *FleetService) DeletePlant(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	deleted, err := s.plantRepo.Delete(ctx, principal.UserID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *FleetService) ListTMs(ctx context.Context, principal model.Principal) ([]model.TransitMixer, error) {
	return s.tmRepo.List(ctx, principal.UserID)
}

func (s *FleetService) GetTM(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.TransitMixer, error) {
	tm, err := s.tmRepo.GetByID(ctx, principal.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tm, nil
}

type TMInput struct {
	Identifier string
	Capacity   float64
	PlantID    *uuid.UUID
	Status     model.FleetStatus
}

func (s *FleetService) CreateTM(ctx context.Context, principal model.Principal, input TMInput) (*model.TransitMixer, error) {
	if strings.TrimSpace(input.Identifier) == "" || input.Capacity <= 0 {
		return nil, ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = model.FleetStatusActive
	}
	tm := &model.TransitMixer{
		UserID:     principal.UserID,
		PlantID:    input.PlantID,
		Identifier: strings.TrimSpace(input.Identifier),
		Capacity:   input.Capacity,
		Status:     status,
	}
	if err := s.tmRepo.Create(ctx, tm); err != nil {
		return nil, err
	}
	return tm, nil
}

func (s *FleetService) UpdateTM(ctx context.Context, principal model.Principal, id uuid.UUID, input TMInput) (*model.TransitMixer, error) {
	tm, err := s.GetTM(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Identifier) != "" {
		tm.Identifier = strings.TrimSpace(input.Identifier)
	}
	if input.Capacity > 0 {
		tm.Capacity = input.Capacity
	}
	if input.PlantID != nil {
		tm.PlantID = input.PlantID
	}
	if input.Status != "" {
		tm.Status = input.Status
	}
	if err := s.tmRepo.Update(ctx, tm); err != nil {
		return nil, err
	}
	return tm, nil
}

func (s *FleetService) DeleteTM(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	deleted, err := s.tmRepo.Delete(ctx, principal.UserID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// AverageCapacity is the fleet-wide mean the estimator and dispatcher size
// jobs against.
func (s *FleetService) AverageCapacity(ctx context.Context, principal model.Principal) (float64, error) {
	return s.tmRepo.AverageCapacity(ctx, principal.UserID)
}

func (s *FleetService) ListPumps(ctx context.Context, principal model.Principal) ([]model.Pump, error) {
	return s.pumpRepo.List(ctx, principal.UserID)
}

func (s *FleetService) GetPump(ctx context.Context, principal model.Principal, id uuid.UUID) (*model.Pump, error) {
	pump, err := s.pumpRepo.GetByID(ctx, principal.UserID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return pump, nil
}

type PumpInput struct {
	Identifier string
	Capacity   float64
	Type       model.PumpType
	PlantID    *uuid.UUID
	Status     model.FleetStatus
}

func (s *FleetService) CreatePump(ctx context.Context, principal model.Principal, input PumpInput) (*model.Pump, error) {
	if strings.TrimSpace(input.Identifier) == "" || input.Capacity <= 0 {
		return nil, ErrInvalidInput
	}
	if input.Type != model.PumpTypeLine && input.Type != model.PumpTypeBoom {
		return nil, ErrInvalidInput
	}
	status := input.Status
	if status == "" {
		status = model.FleetStatusActive
	}
	pump := &model.Pump{
		UserID:     principal.UserID,
		PlantID:    input.PlantID,
		Identifier: strings.TrimSpace(input.Identifier),
		Capacity:   input.Capacity,
		Type:       input.Type,
		Status:     status,
	}
	if err := s.pumpRepo.Create(ctx, pump); err != nil {
		return nil, err
	}
	return pump, nil
}

func (s *FleetService) UpdatePump(ctx context.Context, principal model.Principal, id uuid.UUID, input PumpInput) (*model.Pump, error) {
	pump, err := s.GetPump(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Identifier) != "" {
		pump.Identifier = strings.TrimSpace(input.Identifier)
	}
	if input.Capacity > 0 {
		pump.Capacity = input.Capacity
	}
	if input.Type != "" {
		pump.Type = input.Type
	}
	if input.PlantID != nil {
		pump.PlantID = input.PlantID
	}
	if input.Status != "" {
		pump.Status = input.Status
	}
	if err := s.pumpRepo.Update(ctx, pump); err != nil {
		return nil, err
	}
	return pump, nil
}

func (s *FleetService) DeletePump(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	deleted, err := s.pumpRepo.Delete(ctx, principal.UserID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
