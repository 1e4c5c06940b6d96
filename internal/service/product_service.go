package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
	"github.com/shieldline/warranty-service/internal/store"
)

// ProductService owns the provider catalog: products, pricing rows and
// add-ons, plus the dealer-facing marketplace view with eligibility
// filtering.
type ProductService struct {
	stores store.Stores
	now    func() time.Time
}

func NewProductService(stores store.Stores) *ProductService {
	return &ProductService{stores: stores, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the service clock. For tests.
func (s *ProductService) WithClock(now func() time.Time) *ProductService {
	s.now = now
	return s
}

func (s *ProductService) List(ctx context.Context, actor model.Principal) ([]model.Product, error) {
	filter := store.ProductFilter{}
	switch {
	case actor.IsProvider():
		filter.ProviderID = actor.ProviderID
	case actor.IsAdmin():
		// unfiltered
	default:
		published := true
		filter.Published = &published
	}
	return s.stores.Products.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Product, error) {
	p, err := s.stores.Products.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !p.Published && !actor.OwnsProvider(p.ProviderID) {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *ProductService) Create(ctx context.Context, actor model.Principal, p model.Product) (*model.Product, error) {
	if actor.ProviderID == nil {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}
	now := s.now()
	p.ID = uuid.New()
	p.ProviderID = *actor.ProviderID
	p.Published = false
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.stores.Products.Create(ctx, p)
}

func (s *ProductService) Update(ctx context.Context, actor model.Principal, id uuid.UUID, updated model.Product) (*model.Product, error) {
	current, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.ProviderID = current.ProviderID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()
	return s.stores.Products.Update(ctx, updated)
}

// SetPublished gates marketplace visibility.
func (s *ProductService) SetPublished(ctx context.Context, actor model.Principal, id uuid.UUID, published bool) (*model.Product, error) {
	p, err := s.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p.Published = published
	p.UpdatedAt = s.now()
	return s.stores.Products.Update(ctx, *p)
}

func (s *ProductService) Remove(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	if _, err := s.owned(ctx, actor, id); err != nil {
		return err
	}
	return s.stores.Products.Remove(ctx, id)
}

func (s *ProductService) ListPricing(ctx context.Context, actor model.Principal, productID uuid.UUID) ([]model.ProductPricing, error) {
	if _, err := s.Get(ctx, actor, productID); err != nil {
		return nil, err
	}
	return s.stores.Pricing.List(ctx, store.PricingFilter{ProductID: &productID})
}

func (s *ProductService) CreatePricing(ctx context.Context, actor model.Principal, row model.ProductPricing) (*model.ProductPricing, error) {
	if _, err := s.owned(ctx, actor, row.ProductID); err != nil {
		return nil, err
	}
	row.ID = uuid.New()
	row.CreatedAt = s.now()
	return s.stores.Pricing.Create(ctx, row)
}

func (s *ProductService) RemovePricing(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	row, err := s.stores.Pricing.Get(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if _, err := s.owned(ctx, actor, row.ProductID); err != nil {
		return err
	}
	return s.stores.Pricing.Remove(ctx, id)
}

func (s *ProductService) ListAddons(ctx context.Context, actor model.Principal, productID uuid.UUID) ([]model.ProductAddon, error) {
	if _, err := s.Get(ctx, actor, productID); err != nil {
		return nil, err
	}
	return s.stores.Addons.List(ctx, store.AddonFilter{ProductID: &productID})
}

func (s *ProductService) CreateAddon(ctx context.Context, actor model.Principal, a model.ProductAddon) (*model.ProductAddon, error) {
	if _, err := s.owned(ctx, actor, a.ProductID); err != nil {
		return nil, err
	}
	if a.PricingType == "" {
		a.PricingType = model.AddonPricingFixed
	}
	a.ID = uuid.New()
	a.CreatedAt = s.now()
	return s.stores.Addons.Create(ctx, a)
}

func (s *ProductService) UpdateAddon(ctx context.Context, actor model.Principal, id uuid.UUID, updated model.ProductAddon) (*model.ProductAddon, error) {
	current, err := s.stores.Addons.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if _, err := s.owned(ctx, actor, current.ProductID); err != nil {
		return nil, err
	}
	updated.ID = current.ID
	updated.ProductID = current.ProductID
	updated.CreatedAt = current.CreatedAt
	return s.stores.Addons.Update(ctx, updated)
}

func (s *ProductService) RemoveAddon(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	a, err := s.stores.Addons.Get(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if _, err := s.owned(ctx, actor, a.ProductID); err != nil {
		return err
	}
	return s.stores.Addons.Remove(ctx, id)
}

// EligibleProduct is one marketplace hit: the product plus the rows the
// vehicle qualifies for and the selector's default among them.
type EligibleProduct struct {
	Product    model.Product          `json:"product"`
	Rows       []model.ProductPricing `json:"rows"`
	DefaultRow *model.ProductPricing  `json:"defaultRow,omitempty"`
}

// ListEligible filters the published catalog for a decoded vehicle.
func (s *ProductService) ListEligible(ctx context.Context, v model.Vehicle, odometerKm *int64) ([]EligibleProduct, error) {
	published := true
	products, err := s.stores.Products.List(ctx, store.ProductFilter{Published: &published})
	if err != nil {
		return nil, err
	}

	currentYear := s.now().Year()
	var out []EligibleProduct
	for _, p := range products {
		if !pricing.ProductEligible(p, v, odometerKm, currentYear) {
			continue
		}
		rows, err := s.stores.Pricing.List(ctx, store.PricingFilter{ProductID: &p.ID})
		if err != nil {
			return nil, err
		}
		eligible := pricing.EligibleRows(rows, v, odometerKm)
		out = append(out, EligibleProduct{
			Product:    p,
			Rows:       eligible,
			DefaultRow: pricing.DefaultRow(eligible),
		})
	}
	return out, nil
}

func (s *ProductService) owned(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Product, error) {
	p, err := s.stores.Products.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !actor.OwnsProvider(p.ProviderID) {
		return nil, ErrUnauthorized
	}
	return p, nil
}
