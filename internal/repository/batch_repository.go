package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) List(ctx context.Context, filter store.BatchFilter) ([]model.Batch, error) {
	q := r.db.WithContext(ctx).Model(&model.Batch{})
	if filter.DealershipID != nil {
		q = q.Where("dealership_id = ?", *filter.DealershipID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var batches []model.Batch
	if err := q.Order("created_at DESC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

func (r *BatchRepository) Get(ctx context.Context, id uuid.UUID) (*model.Batch, error) {
	var batch model.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &batch, nil
}

func (r *BatchRepository) Create(ctx context.Context, b model.Batch) (*model.Batch, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) Update(ctx context.Context, b model.Batch) (*model.Batch, error) {
	res := r.db.WithContext(ctx).Model(&model.Batch{}).Where("id = ?", b.ID).Select("*").Updates(&b)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (r *BatchRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Batch{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
