package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

type DealershipRepository struct {
	db *gorm.DB
}

func NewDealershipRepository(db *gorm.DB) *DealershipRepository {
	return &DealershipRepository{db: db}
}

func (r *DealershipRepository) List(ctx context.Context) ([]model.Dealership, error) {
	var dealerships []model.Dealership
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&dealerships).Error; err != nil {
		return nil, err
	}
	return dealerships, nil
}

func (r *DealershipRepository) Get(ctx context.Context, id uuid.UUID) (*model.Dealership, error) {
	var dealership model.Dealership
	if err := r.db.WithContext(ctx).First(&dealership, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &dealership, nil
}

func (r *DealershipRepository) Create(ctx context.Context, d model.Dealership) (*model.Dealership, error) {
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DealershipRepository) Update(ctx context.Context, d model.Dealership) (*model.Dealership, error) {
	res := r.db.WithContext(ctx).Model(&model.Dealership{}).Where("id = ?", d.ID).Select("*").Updates(&d)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (r *DealershipRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Dealership{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) List(ctx context.Context, filter store.EmployeeFilter) ([]model.Employee, error) {
	q := r.db.WithContext(ctx).Model(&model.Employee{})
	if filter.DealershipID != nil {
		q = q.Where("dealership_id = ?", *filter.DealershipID)
	}
	if filter.Active != nil {
		q = q.Where("active = ?", *filter.Active)
	}

	var employees []model.Employee
	if err := q.Order("full_name ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).First(&employee, "id = ?", id).Error; err != nil {
		return nil, mapErr(err)
	}
	return &employee, nil
}

func (r *EmployeeRepository) Create(ctx context.Context, e model.Employee) (*model.Employee, error) {
	if err := r.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e model.Employee) (*model.Employee, error) {
	res := r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", e.ID).Select("*").Updates(&e)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (r *EmployeeRepository) Remove(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
