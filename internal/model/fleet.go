package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FleetStatus string

const (
	FleetStatusActive   FleetStatus = "active"
	FleetStatusInactive FleetStatus = "inactive"
)

type PumpType string

const (
	PumpTypeLine PumpType = "line"
	PumpTypeBoom PumpType = "boom"
)

type Plant struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Location        string    `gorm:"type:text" json:"location"`
	CapacityPerHour float64   `gorm:"type:numeric;not null;default:0" json:"capacity_per_hour"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Plant) TableName() string {
	return "plants"
}

func (p *Plant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type TransitMixer struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null" json:"user_id"`
	PlantID    *uuid.UUID  `gorm:"type:uuid" json:"plant_id"`
	Identifier string      `gorm:"type:varchar(64);not null" json:"identifier"`
	Capacity   float64     `gorm:"type:numeric;not null" json:"capacity"`
	Status     FleetStatus `gorm:"type:fleet_status;not null;default:'active'" json:"status"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Plant *Plant `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
}

func (TransitMixer) TableName() string {
	return "transit_mixers"
}

func (m *TransitMixer) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type Pump struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;not null" json:"user_id"`
	PlantID    *uuid.UUID  `gorm:"type:uuid" json:"plant_id"`
	Identifier string      `gorm:"type:varchar(64);not null" json:"identifier"`
	Capacity   float64     `gorm:"type:numeric;not null" json:"capacity"`
	Type       PumpType    `gorm:"type:pump_type;not null" json:"type"`
	Status     FleetStatus `gorm:"type:fleet_status;not null;default:'active'" json:"status"`
	CreatedAt  time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updated_at"`

	Plant *Plant `gorm:"foreignKey:PlantID" json:"plant,omitempty"`
}

func (Pump) TableName() string {
	return "pumps"
}

func (p *Pump) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
