package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	ScheduleStatusDraft     ScheduleStatus = "draft"
	ScheduleStatusGenerated ScheduleStatus = "generated"
	ScheduleStatusFinalized ScheduleStatus = "finalized"
	ScheduleStatusCompleted ScheduleStatus = "completed"
	ScheduleStatusCancelled ScheduleStatus = "cancelled"
)

type ScheduleType string

const (
	ScheduleTypePumping ScheduleType = "pumping"
	ScheduleTypeSupply  ScheduleType = "supply"
)

// TableVariant selects which trip table is authoritative for a schedule.
// Resolved once when the schedule is loaded, never re-checked ad hoc.
type TableVariant string

const (
	TableVariantStandard TableVariant = "standard"
	TableVariantBurst    TableVariant = "burst"
)

// InputParams are the order parameters a schedule is generated from.
// All durations are minutes; all instants are normalized time.Time values,
// parsed once at the API boundary.
type InputParams struct {
	Quantity        float64   `json:"quantity"`
	PumpingSpeed    float64   `json:"pumping_speed"`
	OnwardTime      int       `json:"onward_time"`
	ReturnTime      int       `json:"return_time"`
	BufferTime      int       `json:"buffer_time"`
	LoadTime        int       `json:"load_time"`
	UnloadingTime   int       `json:"unloading_time"`
	PumpOnwardTime  int       `json:"pump_onward_time"`
	PumpFixingTime  int       `json:"pump_fixing_time"`
	PumpRemovalTime int       `json:"pump_removal_time"`
	PumpStart       time.Time `json:"pump_start"`
	ScheduleDate    time.Time `json:"schedule_date"`
}

func (p InputParams) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *InputParams) Scan(value interface{}) error {
	return scanJSON(value, p)
}

type Trip struct {
	TripNo            int       `json:"trip_no"`
	TripNoForTM       int       `json:"trip_no_for_tm"`
	TMID              uuid.UUID `json:"tm_id"`
	TMNo              string    `json:"tm_no"`
	PlantName         string    `json:"plant_name,omitempty"`
	PlantStart        time.Time `json:"plant_start"`
	PumpStart         time.Time `json:"pump_start"`
	UnloadingTime     time.Time `json:"unloading_time"`
	Return            time.Time `json:"return"`
	CompletedCapacity float64   `json:"completed_capacity"`
	CycleTime         float64   `json:"cycle_time"`   // seconds, return - plant_start
	CushionTime       int       `json:"cushion_time"` // minutes idle since previous return
}

type TripTable []Trip

func (t TripTable) Value() (driver.Value, error) {
	if t == nil {
		t = TripTable{}
	}
	return json.Marshal(t)
}

func (t *TripTable) Scan(value interface{}) error {
	return scanJSON(value, t)
}

type Schedule struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	ScheduleNo  string         `gorm:"type:varchar(64)" json:"schedule_no"`
	ClientName  string         `gorm:"type:varchar(255)" json:"client_name"`
	ProjectName string         `gorm:"type:varchar(255)" json:"project_name"`
	SiteAddress string         `gorm:"type:text" json:"site_address"`
	PlantID     *uuid.UUID     `gorm:"type:uuid" json:"plant_id"`
	PumpID      *uuid.UUID     `gorm:"type:uuid" json:"pump_id"`
	Type        ScheduleType   `gorm:"type:schedule_type;not null;default:'pumping'" json:"type"`
	Variant     TableVariant   `gorm:"type:table_variant;not null;default:'standard'" json:"variant"`
	Status      ScheduleStatus `gorm:"type:schedule_status;not null;default:'draft'" json:"status"`
	InputParams InputParams    `gorm:"type:jsonb;not null" json:"input_params"`
	OutputTable TripTable      `gorm:"type:jsonb;not null;default:'[]'" json:"output_table"`
	BurstTable  TripTable      `gorm:"type:jsonb;not null;default:'[]'" json:"burst_table"`
	// ScheduleDate duplicates input_params.schedule_date as a plain column so
	// calendar queries can filter by day without unpacking jsonb.
	ScheduleDate time.Time `gorm:"type:date;not null" json:"schedule_date"`
	TMCount      int       `gorm:"not null;default:0" json:"tm_count"`
	TripCount    int       `gorm:"not null;default:0" json:"trip_count"`
	PumpingTime  float64   `gorm:"type:numeric;not null;default:0" json:"pumping_time"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastUpdated  time.Time `gorm:"autoUpdateTime" json:"last_updated"`

	Pump *Pump `gorm:"foreignKey:PumpID" json:"pump,omitempty"`
}

func (Schedule) TableName() string {
	return "schedules"
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// ActiveTrips returns the authoritative trip table for this schedule's variant.
func (s *Schedule) ActiveTrips() TripTable {
	if s.Variant == TableVariantBurst {
		return s.BurstTable
	}
	return s.OutputTable
}

func scanJSON(value interface{}, target interface{}) error {
	switch data := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(data, target)
	case string:
		return json.Unmarshal([]byte(data), target)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
