package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) List(ctx context.Context, filter store.ProductFilter) ([]model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})
	if filter.ProviderID != nil {
		q = q.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Published != nil {
		q = q.Where("published = ?", *filter.Published)
	}

	var products []model.Product
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) (*model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p model.Product) (*model.Product, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Select("*").Updates(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (r *ProductRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type PricingRepository struct {
	db *gorm.DB
}

func NewPricingRepository(db *gorm.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

func (r *PricingRepository) List(ctx context.Context, filter store.PricingFilter) ([]model.ProductPricing, error) {
	q := r.db.WithContext(ctx).Model(&model.ProductPricing{})
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}

	var rows []model.ProductPricing
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PricingRepository) Get(ctx context.Context, id uuid.UUID) (*model.ProductPricing, error) {
	var row model.ProductPricing
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &row, nil
}

func (r *PricingRepository) Create(ctx context.Context, row model.ProductPricing) (*model.ProductPricing, error) {
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *PricingRepository) Update(ctx context.Context, row model.ProductPricing) (*model.ProductPricing, error) {
	res := r.db.WithContext(ctx).Model(&model.ProductPricing{}).Where("id = ?", row.ID).Select("*").Updates(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &row, nil
}

func (r *PricingRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ProductPricing{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type AddonRepository struct {
	db *gorm.DB
}

func NewAddonRepository(db *gorm.DB) *AddonRepository {
	return &AddonRepository{db: db}
}

func (r *AddonRepository) List(ctx context.Context, filter store.AddonFilter) ([]model.ProductAddon, error) {
	q := r.db.WithContext(ctx).Model(&model.ProductAddon{})
	if filter.ProductID != nil {
		q = q.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}

	var addons []model.ProductAddon
	if err := q.Order("created_at ASC").Find(&addons).Error; err != nil {
		return nil, err
	}
	return addons, nil
}

func (r *AddonRepository) Get(ctx context.Context, id uuid.UUID) (*model.ProductAddon, error) {
	var addon model.ProductAddon
	if err := r.db.WithContext(ctx).First(&addon, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &addon, nil
}

func (r *AddonRepository) Create(ctx context.Context, a model.ProductAddon) (*model.ProductAddon, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddonRepository) Update(ctx context.Context, a model.ProductAddon) (*model.ProductAddon, error) {
	res := r.db.WithContext(ctx).Model(&model.ProductAddon{}).Where("id = ?", a.ID).Select("*").Updates(&a)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (r *AddonRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.ProductAddon{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
