// Package repository implements the store interfaces over postgres via gorm.
// Adapters translate gorm.ErrRecordNotFound into store.ErrNotFound and do
// nothing else clever; all business rules live in the service layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

func mapErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) List(ctx context.Context, filter store.ContractFilter) ([]model.Contract, error) {
	q := r.db.WithContext(ctx).Model(&model.Contract{})
	if filter.DealershipID != nil {
		q = q.Where("dealership_id = ?", *filter.DealershipID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if len(filter.IDs) > 0 {
		q = q.Where("id IN ?", filter.IDs)
	}

	var contracts []model.Contract
	if err := q.Order("created_at DESC").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepository) Get(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	var contract model.Contract
	if err := r.db.WithContext(ctx).First(&contract, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &contract, nil
}

func (r *ContractRepository) Create(ctx context.Context, c model.Contract) (*model.Contract, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) Update(ctx context.Context, c model.Contract) (*model.Contract, error) {
	res := r.db.WithContext(ctx).Model(&model.Contract{}).Where("id = ?", c.ID).Select("*").Updates(&c)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *ContractRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Contract{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
