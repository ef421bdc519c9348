package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/model"
)

type PumpRepository struct {
	db *gorm.DB
}

func NewPumpRepository(db *gorm.DB) *PumpRepository {
	return &PumpRepository{db: db}
}

func (r *PumpRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Pump, error) {
	var pumps []model.Pump
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Plant").
		Order("identifier ASC").
		Find(&pumps).Error; err != nil {
		return nil, err
	}
	return pumps, nil
}

func (r *PumpRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Pump, error) {
	var pump model.Pump
	if err := r.db.WithContext(ctx).
		Preload("Plant").
		First(&pump, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &pump, nil
}

func (r *PumpRepository) Create(ctx context.Context, pump *model.Pump) error {
	return r.db.WithContext(ctx).Create(pump).Error
}

func (r *PumpRepository) Update(ctx context.Context, pump *model.Pump) error {
	return r.db.WithContext(ctx).Save(pump).Error
}

func (r *PumpRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Pump{})
	return result.RowsAffected > 0, result.Error
}
