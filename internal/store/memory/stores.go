package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

const (
	keyContracts   = "warranty.contracts"
	keyBatches     = "warranty.batches"
	keyProducts    = "warranty.products"
	keyPricing     = "warranty.productPricing"
	keyAddons      = "warranty.productAddons"
	keyDealerships = "warranty.dealerships"
	keyEmployees   = "warranty.employees"
	keyDocuments   = "warranty.documents"
)

// NewStores wires every entity adapter onto one KV store.
func NewStores(kv KV) store.Stores {
	return store.Stores{
		Contracts:   &ContractStore{col: newCollection(kv, keyContracts, func(c model.Contract) uuid.UUID { return c.ID })},
		Batches:     &BatchStore{col: newCollection(kv, keyBatches, func(b model.Batch) uuid.UUID { return b.ID })},
		Products:    &ProductStore{col: newCollection(kv, keyProducts, func(p model.Product) uuid.UUID { return p.ID })},
		Pricing:     &PricingStore{col: newCollection(kv, keyPricing, func(r model.ProductPricing) uuid.UUID { return r.ID })},
		Addons:      &AddonStore{col: newCollection(kv, keyAddons, func(a model.ProductAddon) uuid.UUID { return a.ID })},
		Dealerships: &DealershipStore{col: newCollection(kv, keyDealerships, func(d model.Dealership) uuid.UUID { return d.ID })},
		Employees:   &EmployeeStore{col: newCollection(kv, keyEmployees, func(e model.Employee) uuid.UUID { return e.ID })},
		Documents:   &DocumentStore{col: newCollection(kv, keyDocuments, func(d model.Document) uuid.UUID { return d.ID })},
	}
}

type ContractStore struct {
	col *collection[model.Contract]
}

func (s *ContractStore) List(_ context.Context, filter store.ContractFilter) ([]model.Contract, error) {
	var out []model.Contract
	for _, c := range s.col.list() {
		if filter.DealershipID != nil && c.DealershipID != *filter.DealershipID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		if len(filter.IDs) > 0 && !containsID(filter.IDs, c.ID) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *ContractStore) Get(_ context.Context, id uuid.UUID) (*model.Contract, error) {
	return s.col.get(id)
}

func (s *ContractStore) Create(_ context.Context, c model.Contract) (*model.Contract, error) {
	return s.col.create(c)
}

func (s *ContractStore) Update(_ context.Context, c model.Contract) (*model.Contract, error) {
	return s.col.update(c)
}

func (s *ContractStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type BatchStore struct {
	col *collection[model.Batch]
}

func (s *BatchStore) List(_ context.Context, filter store.BatchFilter) ([]model.Batch, error) {
	var out []model.Batch
	for _, b := range s.col.list() {
		if filter.DealershipID != nil && b.DealershipID != *filter.DealershipID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *BatchStore) Get(_ context.Context, id uuid.UUID) (*model.Batch, error) {
	return s.col.get(id)
}

func (s *BatchStore) Create(_ context.Context, b model.Batch) (*model.Batch, error) {
	return s.col.create(b)
}

func (s *BatchStore) Update(_ context.Context, b model.Batch) (*model.Batch, error) {
	return s.col.update(b)
}

func (s *BatchStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type ProductStore struct {
	col *collection[model.Product]
}

func (s *ProductStore) List(_ context.Context, filter store.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.col.list() {
		if filter.ProviderID != nil && p.ProviderID != *filter.ProviderID {
			continue
		}
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *ProductStore) Get(_ context.Context, id uuid.UUID) (*model.Product, error) {
	return s.col.get(id)
}

func (s *ProductStore) Create(_ context.Context, p model.Product) (*model.Product, error) {
	return s.col.create(p)
}

func (s *ProductStore) Update(_ context.Context, p model.Product) (*model.Product, error) {
	return s.col.update(p)
}

func (s *ProductStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type PricingStore struct {
	col *collection[model.ProductPricing]
}

func (s *PricingStore) List(_ context.Context, filter store.PricingFilter) ([]model.ProductPricing, error) {
	var out []model.ProductPricing
	for _, row := range s.col.list() {
		if filter.ProductID != nil && row.ProductID != *filter.ProductID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *PricingStore) Get(_ context.Context, id uuid.UUID) (*model.ProductPricing, error) {
	return s.col.get(id)
}

func (s *PricingStore) Create(_ context.Context, row model.ProductPricing) (*model.ProductPricing, error) {
	return s.col.create(row)
}

func (s *PricingStore) Update(_ context.Context, row model.ProductPricing) (*model.ProductPricing, error) {
	return s.col.update(row)
}

func (s *PricingStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type AddonStore struct {
	col *collection[model.ProductAddon]
}

func (s *AddonStore) List(_ context.Context, filter store.AddonFilter) ([]model.ProductAddon, error) {
	var out []model.ProductAddon
	for _, a := range s.col.list() {
		if filter.ProductID != nil && a.ProductID != *filter.ProductID {
			continue
		}
		if filter.Active != nil && a.Active != *filter.Active {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (s *AddonStore) Get(_ context.Context, id uuid.UUID) (*model.ProductAddon, error) {
	return s.col.get(id)
}

func (s *AddonStore) Create(_ context.Context, a model.ProductAddon) (*model.ProductAddon, error) {
	return s.col.create(a)
}

func (s *AddonStore) Update(_ context.Context, a model.ProductAddon) (*model.ProductAddon, error) {
	return s.col.update(a)
}

func (s *AddonStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type DealershipStore struct {
	col *collection[model.Dealership]
}

func (s *DealershipStore) List(_ context.Context) ([]model.Dealership, error) {
	return s.col.list(), nil
}

func (s *DealershipStore) Get(_ context.Context, id uuid.UUID) (*model.Dealership, error) {
	return s.col.get(id)
}

func (s *DealershipStore) Create(_ context.Context, d model.Dealership) (*model.Dealership, error) {
	return s.col.create(d)
}

func (s *DealershipStore) Update(_ context.Context, d model.Dealership) (*model.Dealership, error) {
	return s.col.update(d)
}

func (s *DealershipStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type EmployeeStore struct {
	col *collection[model.Employee]
}

func (s *EmployeeStore) List(_ context.Context, filter store.EmployeeFilter) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range s.col.list() {
		if filter.DealershipID != nil && e.DealershipID != *filter.DealershipID {
			continue
		}
		if filter.Active != nil && e.Active != *filter.Active {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *EmployeeStore) Get(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	return s.col.get(id)
}

func (s *EmployeeStore) Create(_ context.Context, e model.Employee) (*model.Employee, error) {
	return s.col.create(e)
}

func (s *EmployeeStore) Update(_ context.Context, e model.Employee) (*model.Employee, error) {
	return s.col.update(e)
}

func (s *EmployeeStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

type DocumentStore struct {
	col *collection[model.Document]
}

func (s *DocumentStore) List(_ context.Context, filter store.DocumentFilter) ([]model.Document, error) {
	var out []model.Document
	for _, d := range s.col.list() {
		if filter.ContractID != nil && d.ContractID != *filter.ContractID {
			continue
		}
		if filter.DealershipID != nil && d.DealershipID != *filter.DealershipID {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *DocumentStore) Get(_ context.Context, id uuid.UUID) (*model.Document, error) {
	return s.col.get(id)
}

func (s *DocumentStore) Create(_ context.Context, d model.Document) (*model.Document, error) {
	return s.col.create(d)
}

func (s *DocumentStore) Remove(_ context.Context, id uuid.UUID) error {
	return s.col.remove(id)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
