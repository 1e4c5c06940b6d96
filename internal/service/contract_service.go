package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/pricing"
	"github.com/shieldline/warranty-service/internal/store"
)

// ContractPDFGenerator renders a contract as a downloadable document.
type ContractPDFGenerator interface {
	Generate(doc model.ContractDocument) ([]byte, error)
}

type ContractService struct {
	stores store.Stores
	pdf    ContractPDFGenerator
	now    func() time.Time
}

func NewContractService(stores store.Stores, pdf ContractPDFGenerator) *ContractService {
	return &ContractService{stores: stores, pdf: pdf, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the service clock. For tests.
func (s *ContractService) WithClock(now func() time.Time) *ContractService {
	s.now = now
	return s
}

type CreateContractInput struct {
	ContractNumber string
	Vehicle        model.Vehicle
	OdometerKm     *int64
	CustomerName   string
}

// ContractPatch carries the fields an update may touch. Nil means untouched;
// SelectedAddonIDs non-nil (including empty) rebuilds the add-on snapshot.
type ContractPatch struct {
	ContractNumber   *string
	Vehicle          *model.Vehicle
	OdometerKm       *int64
	ProductID        *uuid.UUID
	ProductPricingID *uuid.UUID
	SelectedAddonIDs []uuid.UUID

	CustomerName     *string
	CustomerEmail    *string
	CustomerPhone    *string
	CustomerAddress  *string
	CustomerCity     *string
	CustomerProvince *string
	CustomerPostal   *string

	Status *model.ContractStatus
}

func (p ContractPatch) touchesNonStatus() bool {
	return p.ContractNumber != nil ||
		p.Vehicle != nil ||
		p.OdometerKm != nil ||
		p.ProductID != nil ||
		p.ProductPricingID != nil ||
		p.SelectedAddonIDs != nil ||
		p.CustomerName != nil ||
		p.CustomerEmail != nil ||
		p.CustomerPhone != nil ||
		p.CustomerAddress != nil ||
		p.CustomerCity != nil ||
		p.CustomerProvince != nil ||
		p.CustomerPostal != nil
}

func (s *ContractService) List(ctx context.Context, actor model.Principal, filter store.ContractFilter) ([]model.Contract, error) {
	if !actor.IsAdmin() {
		if actor.DealershipID == nil {
			return nil, ErrUnauthorized
		}
		filter.DealershipID = actor.DealershipID
	}
	return s.stores.Contracts.List(ctx, filter)
}

func (s *ContractService) Get(ctx context.Context, actor model.Principal, id uuid.UUID) (*model.Contract, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsDealership(c.DealershipID) {
		return nil, ErrUnauthorized
	}
	return c, nil
}

// Create opens a new DRAFT contract for the acting dealer. The id, warranty
// id, timestamps and creator attribution are assigned here so both backends
// persist identical records.
func (s *ContractService) Create(ctx context.Context, actor model.Principal, input CreateContractInput) (*model.Contract, error) {
	if actor.DealershipID == nil {
		return nil, ErrUnauthorized
	}

	now := s.now()
	id := uuid.New()
	c := model.Contract{
		ID:              id,
		WarrantyID:      model.DeriveWarrantyID(id),
		ContractNumber:  input.ContractNumber,
		DealershipID:    *actor.DealershipID,
		Status:          model.ContractStatusDraft,
		CreatedByUserID: actor.UserID,
		CreatedByEmail:  actor.Email,
		Vehicle:         input.Vehicle,
		OdometerKm:      input.OdometerKm,
		CustomerName:    input.CustomerName,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	c.Vehicle.VIN = model.NormalizeVIN(c.Vehicle.VIN)

	return s.stores.Contracts.Create(ctx, c)
}

// Update applies a patch under the contract state machine: field edits are
// DRAFT-only, a status change must be the single legal next status, and the
// DRAFT to SOLD transition re-validates the submission preconditions against
// the record as it stands after the patch.
func (s *ContractService) Update(ctx context.Context, actor model.Principal, id uuid.UUID, patch ContractPatch) (*model.Contract, error) {
	c, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.OwnsDealership(c.DealershipID) {
		return nil, ErrUnauthorized
	}

	if c.Status != model.ContractStatusDraft && patch.touchesNonStatus() {
		return nil, fmt.Errorf("%w: contract %s is %s", ErrLocked, c.WarrantyID, c.Status)
	}

	if c.Status == model.ContractStatusDraft {
		if err := s.applyDraftEdits(ctx, c, patch); err != nil {
			return nil, err
		}
	}

	if patch.Status != nil && *patch.Status != c.Status {
		if err := s.transition(c, *patch.Status, actor); err != nil {
			return nil, err
		}
	}

	c.UpdatedAt = s.now()
	return s.stores.Contracts.Update(ctx, *c)
}

// Remove deletes a contract. Only the owning dealership may remove, and only
// while the contract is still a draft.
func (s *ContractService) Remove(ctx context.Context, actor model.Principal, id uuid.UUID) error {
	c, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.OwnsDealership(c.DealershipID) {
		return ErrUnauthorized
	}
	if c.Status != model.ContractStatusDraft {
		return fmt.Errorf("%w: only draft contracts can be removed", ErrLocked)
	}
	return s.stores.Contracts.Remove(ctx, id)
}

type ContractDocumentResult struct {
	FileName string
	Content  []byte
}

// Document renders the contract PDF.
func (s *ContractService) Document(ctx context.Context, actor model.Principal, id uuid.UUID) (*ContractDocumentResult, error) {
	c, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	dealership, err := s.stores.Dealerships.Get(ctx, c.DealershipID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	productName := ""
	if c.ProductID != nil {
		if p, err := s.stores.Products.Get(ctx, *c.ProductID); err == nil {
			productName = p.Name
		}
	}

	content, err := s.pdf.Generate(model.ContractDocument{
		Contract:    *c,
		Dealership:  *dealership,
		ProductName: productName,
	})
	if err != nil {
		return nil, err
	}
	return &ContractDocumentResult{
		FileName: fmt.Sprintf("contract-%s.pdf", c.WarrantyID),
		Content:  content,
	}, nil
}

func (s *ContractService) applyDraftEdits(ctx context.Context, c *model.Contract, patch ContractPatch) error {
	if patch.ContractNumber != nil {
		c.ContractNumber = *patch.ContractNumber
	}
	if patch.Vehicle != nil {
		v := *patch.Vehicle
		v.VIN = model.NormalizeVIN(v.VIN)
		c.Vehicle = v
	}
	if patch.OdometerKm != nil {
		c.OdometerKm = patch.OdometerKm
	}
	applyString(&c.CustomerName, patch.CustomerName)
	applyString(&c.CustomerEmail, patch.CustomerEmail)
	applyString(&c.CustomerPhone, patch.CustomerPhone)
	applyString(&c.CustomerAddress, patch.CustomerAddress)
	applyString(&c.CustomerCity, patch.CustomerCity)
	applyString(&c.CustomerProvince, patch.CustomerProvince)
	applyString(&c.CustomerPostal, patch.CustomerPostal)

	if patch.ProductID != nil && (c.ProductID == nil || *c.ProductID != *patch.ProductID) {
		c.ProductID = patch.ProductID
		clearPricingSnapshot(c)
	}

	if patch.ProductPricingID != nil {
		if err := s.selectPricingRow(ctx, c, *patch.ProductPricingID); err != nil {
			return err
		}
	} else if c.ProductID != nil && c.ProductPricingID == nil {
		// Auto-select the default row only when the dealer has not chosen one.
		if err := s.autoSelectPricingRow(ctx, c); err != nil {
			return err
		}
	}

	if patch.SelectedAddonIDs != nil {
		if err := s.rebuildAddonSnapshot(ctx, c, patch.SelectedAddonIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *ContractService) transition(c *model.Contract, target model.ContractStatus, actor model.Principal) error {
	next := model.NextStatus(c.Status)
	if next == "" || target != next {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, target)
	}

	now := s.now()
	switch target {
	case model.ContractStatusSold:
		if err := validateSubmission(c); err != nil {
			return err
		}
		c.SoldByUserID = &actor.UserID
		email := actor.Email
		c.SoldByEmail = &email
		c.SoldAt = &now
	case model.ContractStatusRemitted:
		c.RemittedByUserID = &actor.UserID
		email := actor.Email
		c.RemittedByEmail = &email
		c.RemittedAt = &now
	case model.ContractStatusPaid:
		c.PaidByUserID = &actor.UserID
		email := actor.Email
		c.PaidByEmail = &email
		c.PaidAt = &now
	}
	c.Status = target
	return nil
}

func validateSubmission(c *model.Contract) error {
	if strings.TrimSpace(c.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	}
	if !model.ValidVIN(c.Vehicle.VIN) {
		return fmt.Errorf("%w: VIN must be 17 alphanumeric characters", ErrValidation)
	}
	if c.ProductID == nil {
		return fmt.Errorf("%w: a product must be selected", ErrValidation)
	}
	if c.ProductPricingID == nil {
		return fmt.Errorf("%w: a pricing row must be selected", ErrValidation)
	}
	return nil
}

// selectPricingRow freezes the dealer's explicit choice onto the contract.
func (s *ContractService) selectPricingRow(ctx context.Context, c *model.Contract, rowID uuid.UUID) error {
	row, err := s.stores.Pricing.Get(ctx, rowID)
	if err != nil {
		return mapStoreErr(err)
	}
	if c.ProductID == nil || row.ProductID != *c.ProductID {
		return fmt.Errorf("%w: pricing row does not belong to the selected product", ErrValidation)
	}
	if !pricing.PricingRowEligible(*row, c.Vehicle, c.OdometerKm) {
		return fmt.Errorf("%w: pricing row is not eligible for this vehicle", ErrValidation)
	}
	return s.freezePricingRow(ctx, c, *row)
}

func (s *ContractService) autoSelectPricingRow(ctx context.Context, c *model.Contract) error {
	rows, err := s.stores.Pricing.List(ctx, store.PricingFilter{ProductID: c.ProductID})
	if err != nil {
		return err
	}
	row := pricing.DefaultRow(pricing.EligibleRows(rows, c.Vehicle, c.OdometerKm))
	if row == nil {
		return nil
	}
	return s.freezePricingRow(ctx, c, *row)
}

func (s *ContractService) freezePricingRow(ctx context.Context, c *model.Contract, row model.ProductPricing) error {
	markup, err := s.markupFor(ctx, c.DealershipID)
	if err != nil {
		return err
	}
	cost := pricing.CostCents(row.DealerCostCents, &row.BasePriceCents)
	c.ProductPricingID = &row.ID
	c.PricingTermMonths = row.TermMonths
	c.PricingTermKm = row.TermKm
	c.PricingDeductibleCents = &row.DeductibleCents
	c.PricingDealerCostCents = cost
	c.PricingBasePriceCents = pricing.RetailCents(cost, markup)
	return nil
}

// rebuildAddonSnapshot recomputes the frozen add-on snapshot from the current
// selection. Once written the snapshot is the contract's durable record of
// what was charged; later catalog changes never touch it.
func (s *ContractService) rebuildAddonSnapshot(ctx context.Context, c *model.Contract, selected []uuid.UUID) error {
	if c.ProductID == nil || c.ProductPricingID == nil {
		return fmt.Errorf("%w: a pricing row must be selected before add-ons", ErrValidation)
	}
	active := true
	addons, err := s.stores.Addons.List(ctx, store.AddonFilter{ProductID: c.ProductID, Active: &active})
	if err != nil {
		return err
	}
	markup, err := s.markupFor(ctx, c.DealershipID)
	if err != nil {
		return err
	}
	applicable := pricing.ApplicableAddons(addons, *c.ProductPricingID)
	snapshot, totalRetail, totalCost := pricing.BuildAddonSnapshot(selected, applicable, markup)
	c.AddonSnapshot = snapshot
	c.AddonTotalRetailCents = totalRetail
	c.AddonTotalCostCents = totalCost
	return nil
}

func (s *ContractService) markupFor(ctx context.Context, dealershipID uuid.UUID) (float64, error) {
	d, err := s.stores.Dealerships.Get(ctx, dealershipID)
	if err != nil {
		return 0, mapStoreErr(err)
	}
	return d.MarkupPct, nil
}

func (s *ContractService) load(ctx context.Context, id uuid.UUID) (*model.Contract, error) {
	c, err := s.stores.Contracts.Get(ctx, id)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return c, nil
}

func clearPricingSnapshot(c *model.Contract) {
	c.ProductPricingID = nil
	c.PricingTermMonths = nil
	c.PricingTermKm = nil
	c.PricingDeductibleCents = nil
	c.PricingBasePriceCents = nil
	c.PricingDealerCostCents = nil
	c.AddonSnapshot = nil
	c.AddonTotalRetailCents = 0
	c.AddonTotalCostCents = 0
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func mapStoreErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
