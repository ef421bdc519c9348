package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/model"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Pump").
		Order("created_at DESC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Schedule, error) {
	var schedule model.Schedule
	if err := r.db.WithContext(ctx).
		Preload("Pump").
		First(&schedule, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *ScheduleRepository) Save(ctx context.Context, schedule *model.Schedule) error {
	return r.db.WithContext(ctx).Save(schedule).Error
}

func (r *ScheduleRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Schedule{})
	return result.RowsAffected > 0, result.Error
}

// ListCommittedAround returns non-cancelled schedules whose schedule date
// falls within [day-1, day+1]. The extra day on each side catches trips that
// spill over midnight; the availability projector clips them to the query day.
func (r *ScheduleRepository) ListCommittedAround(ctx context.Context, userID uuid.UUID, day time.Time) ([]model.Schedule, error) {
	var schedules []model.Schedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status <> ?", userID, model.ScheduleStatusCancelled).
		Where("schedule_date BETWEEN ? AND ?", day.AddDate(0, 0, -1), day.AddDate(0, 0, 1)).
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}
