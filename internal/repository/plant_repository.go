package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/model"
)

type PlantRepository struct {
	db *gorm.DB
}

func NewPlantRepository(db *gorm.DB) *PlantRepository {
	return &PlantRepository{db: db}
}

func (r *PlantRepository) List(ctx context.Context, userID uuid.UUID) ([]model.Plant, error) {
	var plants []model.Plant
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&plants).Error; err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *PlantRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Plant, error) {
	var plant model.Plant
	if err := r.db.WithContext(ctx).
		First(&plant, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *PlantRepository) Create(ctx context.Context, plant *model.Plant) error {
	return r.db.WithContext(ctx).Create(plant).Error
}

func (r *PlantRepository) Update(ctx context.Context, plant *model.Plant) error {
	return r.db.WithContext(ctx).Save(plant).Error
}

func (r *PlantRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Plant{})
	return result.RowsAffected > 0, result.Error
}
