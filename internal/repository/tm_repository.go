package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tmhire-backend/internal/model"
)

type TMRepository struct {
	db *gorm.DB
}

func NewTMRepository(db *gorm.DB) *TMRepository {
	return &TMRepository{db: db}
}

func (r *TMRepository) List(ctx context.Context, userID uuid.UUID) ([]model.TransitMixer, error) {
	var tms []model.TransitMixer
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Plant").
		Order("identifier ASC").
		Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

func (r *TMRepository) ListByPlant(ctx context.Context, userID, plantID uuid.UUID) ([]model.TransitMixer, error) {
	var tms []model.TransitMixer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND plant_id = ?", userID, plantID).
		Order("identifier ASC").
		Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

func (r *TMRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.TransitMixer, error) {
	var tm model.TransitMixer
	if err := r.db.WithContext(ctx).
		Preload("Plant").
		First(&tm, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &tm, nil
}

// GetByIDs loads the selected vehicles preserving no particular order; callers
// that care about selection order re-sort against their input.
func (r *TMRepository) GetByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]model.TransitMixer, error) {
	var tms []model.TransitMixer
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Preload("Plant").
		Find(&tms).Error; err != nil {
		return nil, err
	}
	return tms, nil
}

func (r *TMRepository) Create(ctx context.Context, tm *model.TransitMixer) error {
	return r.db.WithContext(ctx).Create(tm).Error
}

func (r *TMRepository) Update(ctx context.Context, tm *model.TransitMixer) error {
	return r.db.WithContext(ctx).Save(tm).Error
}

func (r *TMRepository) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.TransitMixer{})
	return result.RowsAffected > 0, result.Error
}

// AverageCapacity returns the fleet-wide mean capacity of the user's active
// mixers, or 0 when the fleet is empty.
func (r *TMRepository) AverageCapacity(ctx context.Context, userID uuid.UUID) (float64, error) {
	var avg *float64
	if err := r.db.WithContext(ctx).
		Model(&model.TransitMixer{}).
		Select("AVG(capacity)").
		Where("user_id = ? AND status = ?", userID, model.FleetStatusActive).
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
