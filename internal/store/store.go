// Package store defines the persistence contract every backend must satisfy.
// Each entity gets the same narrow surface: List, Get, Create, Update,
// Remove. Backends are plain CRUD adapters; state-machine guards, defaulting
// and ownership checks all live in the service layer so both backends behave
// identically.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
)

// ErrNotFound is returned by every backend when an id has no record.
var ErrNotFound = errors.New("record not found")

type ContractFilter struct {
	DealershipID *uuid.UUID
	Status       *model.ContractStatus
	IDs          []uuid.UUID
}

type ContractStore interface {
	List(ctx context.Context, filter ContractFilter) ([]model.Contract, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Contract, error)
	Create(ctx context.Context, c model.Contract) (*model.Contract, error)
	Update(ctx context.Context, c model.Contract) (*model.Contract, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type BatchFilter struct {
	DealershipID *uuid.UUID
	Status       *model.BatchStatus
}

type BatchStore interface {
	List(ctx context.Context, filter BatchFilter) ([]model.Batch, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Batch, error)
	Create(ctx context.Context, b model.Batch) (*model.Batch, error)
	Update(ctx context.Context, b model.Batch) (*model.Batch, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type ProductFilter struct {
	ProviderID *uuid.UUID
	Published  *bool
}

type ProductStore interface {
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Create(ctx context.Context, p model.Product) (*model.Product, error)
	Update(ctx context.Context, p model.Product) (*model.Product, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type PricingFilter struct {
	ProductID *uuid.UUID
}

type PricingStore interface {
	List(ctx context.Context, filter PricingFilter) ([]model.ProductPricing, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ProductPricing, error)
	Create(ctx context.Context, row model.ProductPricing) (*model.ProductPricing, error)
	Update(ctx context.Context, row model.ProductPricing) (*model.ProductPricing, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type AddonFilter struct {
	ProductID *uuid.UUID
	Active    *bool
}

type AddonStore interface {
	List(ctx context.Context, filter AddonFilter) ([]model.ProductAddon, error)
	Get(ctx context.Context, id uuid.UUID) (*model.ProductAddon, error)
	Create(ctx context.Context, a model.ProductAddon) (*model.ProductAddon, error)
	Update(ctx context.Context, a model.ProductAddon) (*model.ProductAddon, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type DealershipStore interface {
	List(ctx context.Context) ([]model.Dealership, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Dealership, error)
	Create(ctx context.Context, d model.Dealership) (*model.Dealership, error)
	Update(ctx context.Context, d model.Dealership) (*model.Dealership, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type EmployeeFilter struct {
	DealershipID *uuid.UUID
	Active       *bool
}

type EmployeeStore interface {
	List(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Create(ctx context.Context, e model.Employee) (*model.Employee, error)
	Update(ctx context.Context, e model.Employee) (*model.Employee, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

type DocumentFilter struct {
	ContractID   *uuid.UUID
	DealershipID *uuid.UUID
}

type DocumentStore interface {
	List(ctx context.Context, filter DocumentFilter) ([]model.Document, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Document, error)
	Create(ctx context.Context, d model.Document) (*model.Document, error)
	Remove(ctx context.Context, id uuid.UUID) error
}

// Stores bundles one adapter per entity. The backend is chosen once at
// composition time; nothing downstream re-checks the mode.
type Stores struct {
	Contracts   ContractStore
	Batches     BatchStore
	Products    ProductStore
	Pricing     PricingStore
	Addons      AddonStore
	Dealerships DealershipStore
	Employees   EmployeeStore
	Documents   DocumentStore
}
