package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
)

// DealershipService covers dealer-scoped configuration (markup), the
// employee roster and document metadata.
type DealershipService struct {
	stores store.Stores
	now    func() time.Time
}

func NewDealershipService(stores store.Stores) *DealershipService {
	return &DealershipService{stores: stores, now: func() time.Time { return time.Now().UTC() }}
}

func (s *DealershipService) Get(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Dealership, error) {
	if !actor.OwnsDealership(id) && !actor.IsProvider() {
		return nil, ErrUnauthorized
	}
	d, err := s.stores.Dealerships.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return d, nil
}

type DealershipPatch struct {
	Name      *string
	MarkupPct *float64
	Address   *string
	City      *string
	Province  *string
	Postal    *string
	Phone     *string
}

func (s *DealershipService) Update(ctx context.Context, actor model.Principal, id uuid.UUID, patch DealershipPatch) (*model.Dealership, error) {
	if !actor.OwnsDealership(id) {
		return nil, ErrUnauthorized
	}
	d, err := s.stores.Dealerships.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if patch.MarkupPct != nil {
		if *patch.MarkupPct < 0 {
			return nil, fmt.Errorf("%w: markup percentage cannot be negative", ErrValidation)
		}
		d.MarkupPct = *patch.MarkupPct
	}
	applyString(&d.Name, patch.Name)
	applyString(&d.Address, patch.Address)
	applyString(&d.City, patch.City)
	applyString(&d.Province, patch.Province)
	applyString(&d.Postal, patch.Postal)
	applyString(&d.Phone, patch.Phone)
	d.UpdatedAt = s.now()
	return s.stores.Dealerships.Update(ctx, *d)
}

func (s *DealershipService) ListEmployees(ctx context.Context, actor model.Principal, dealershipID uuid.UUID) ([]model.Employee, error) {
	if !actor.OwnsDealership(dealershipID) {
		return nil, ErrUnauthorized
	}
	return s.stores.Employees.List(ctx, store.EmployeeFilter{DealershipID: &dealershipID})
}

func (s *DealershipService) CreateEmployee(ctx context.Context, actor model.Principal, e model.Employee) (*model.Employee, error) {
	if !actor.OwnsDealership(e.DealershipID) {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(e.Email) == "" {
		return nil, fmt.Errorf("%w: employee email is required", ErrValidation)
	}
	now := s.now()
	e.ID = uuid.New()
	e.Active = true
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.stores.Employees.Create(ctx, e)
}

func (s *DealershipService) UpdateEmployee(ctx context.Context, actor model.Principal, id uuid.UUID, updated model.Employee) (*model.Employee, error) {
	current, err := s.stores.Employees.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !actor.OwnsDealership(current.DealershipID) {
		return nil, ErrUnauthorized
	}
	updated.ID = current.ID
	updated.DealershipID = current.DealershipID
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = s.now()
	return s.stores.Employees.Update(ctx, updated)
}

func (s *DealershipService) RemoveEmployee(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	e, err := s.stores.Employees.Get(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if !actor.OwnsDealership(e.DealershipID) {
		return ErrUnauthorized
	}
	return s.stores.Employees.Remove(ctx, id)
}

func (s *DealershipService) ListDocuments(ctx context.Context, actor model.Principal, contractID uuid.UUID) ([]model.Document, error) {
	c, err := s.stores.Contracts.Get(ctx, contractID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !actor.OwnsDealership(c.DealershipID) {
		return nil, ErrUnauthorized
	}
	return s.stores.Documents.List(ctx, store.DocumentFilter{ContractID: &contractID})
}

// CreateDocument records upload metadata; the bytes themselves live in
// external object storage already.
func (s *DealershipService) CreateDocument(ctx context.Context, actor model.Principal, d model.Document) (*model.Document, error) {
	c, err := s.stores.Contracts.Get(ctx, d.ContractID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if !actor.OwnsDealership(c.DealershipID) {
		return nil, ErrUnauthorized
	}
	if strings.TrimSpace(d.StorageKey) == "" {
		return nil, fmt.Errorf("%w: storage key is required", ErrValidation)
	}
	d.ID = uuid.New()
	d.DealershipID = c.DealershipID
	d.UploadedByUserID = actor.UserID
	d.CreatedAt = s.now()
	return s.stores.Documents.Create(ctx, d)
}

func (s *DealershipService) RemoveDocument(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	d, err := s.stores.Documents.Get(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if !actor.OwnsDealership(d.DealershipID) {
		return ErrUnauthorized
	}
	return s.stores.Documents.Remove(ctx, id)
}
