package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/service"
	"github.com/shieldline/warranty-service/internal/store"
	"github.com/shieldline/warranty-service/internal/store/memory"
)

const testVIN = "1HGCM82633A004352"

func i64(v int64) *int64 { return &v }

// fixture wires every service onto one memory backend with a ticking clock,
// one dealership at 20% markup, and one published product with two pricing
// rows and one active add-on.
type fixture struct {
	ctx       context.Context
	stores    store.Stores
	contracts *service.ContractService
	batches   *service.BatchService
	products  *service.ProductService

	dealer   model.Principal
	provider model.Principal

	dealership model.Dealership
	product    model.Product
	rowSmall   model.ProductPricing // 24mo/40000km, cost 50000
	rowLarge   model.ProductPricing // 36mo/60000km, cost 80000
	addon      model.ProductAddon   // base 10000
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	stores := memory.NewStores(memory.NewMapKV())

	clockAt := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		clockAt = clockAt.Add(time.Second)
		return clockAt
	}

	f := &fixture{
		ctx:       ctx,
		stores:    stores,
		contracts: service.NewContractService(stores, nil).WithClock(clock),
		batches:   service.NewBatchService(stores, nil, 13, zerolog.Nop()).WithClock(clock),
		products:  service.NewProductService(stores).WithClock(clock),
	}

	dealershipID := uuid.New()
	providerID := uuid.New()
	f.dealer = model.Principal{
		UserID:       uuid.New(),
		Email:        "dealer@example.com",
		Role:         model.RoleDealer,
		DealershipID: &dealershipID,
	}
	f.provider = model.Principal{
		UserID:     uuid.New(),
		Email:      "provider@example.com",
		Role:       model.RoleProvider,
		ProviderID: &providerID,
	}

	d, err := stores.Dealerships.Create(ctx, model.Dealership{
		ID:        dealershipID,
		Name:      "Lakeside Motors",
		MarkupPct: 20,
	})
	require.NoError(t, err)
	f.dealership = *d

	p, err := f.products.Create(ctx, f.provider, model.Product{Name: "Powertrain Plus"})
	require.NoError(t, err)
	_, err = f.products.SetPublished(ctx, f.provider, p.ID, true)
	require.NoError(t, err)
	f.product = *p

	small, err := f.products.CreatePricing(ctx, f.provider, model.ProductPricing{
		ProductID:       p.ID,
		TermMonths:      i64(24),
		TermKm:          i64(40000),
		DeductibleCents: 5000,
		BasePriceCents:  50000,
	})
	require.NoError(t, err)
	f.rowSmall = *small

	large, err := f.products.CreatePricing(ctx, f.provider, model.ProductPricing{
		ProductID:       p.ID,
		TermMonths:      i64(36),
		TermKm:          i64(60000),
		DeductibleCents: 10000,
		BasePriceCents:  80000,
	})
	require.NoError(t, err)
	f.rowLarge = *large

	a, err := f.products.CreateAddon(ctx, f.provider, model.ProductAddon{
		ProductID:           p.ID,
		Name:                "Tire & Rim",
		BasePriceCents:      10000,
		Active:              true,
		AppliesToAllPricing: true,
	})
	require.NoError(t, err)
	f.addon = *a

	return f
}

func (f *fixture) newDraft(t *testing.T) *model.Contract {
	t.Helper()
	c, err := f.contracts.Create(f.ctx, f.dealer, service.CreateContractInput{
		ContractNumber: "D-1001",
		Vehicle:        model.Vehicle{VIN: testVIN, Year: "2022", Make: "Honda", Model: "Accord"},
		OdometerKm:     i64(35000),
	})
	require.NoError(t, err)
	return c
}

func (f *fixture) soldContract(t *testing.T) *model.Contract {
	t.Helper()
	c := f.newDraft(t)
	name := "Jane Doe"
	_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		CustomerName: &name,
		ProductID:    &f.product.ID,
	})
	require.NoError(t, err)

	sold := model.ContractStatusSold
	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &sold})
	require.NoError(t, err)
	return updated
}

func TestCreateContract_DraftWithDerivedWarrantyID(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	assert.Equal(t, model.ContractStatusDraft, c.Status)
	assert.Equal(t, model.DeriveWarrantyID(c.ID), c.WarrantyID)
	assert.Equal(t, f.dealer.UserID, c.CreatedByUserID)
	assert.Equal(t, testVIN, c.Vehicle.VIN)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestUpdateContract_DraftFieldEdits(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	name := "Jane Doe"
	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", updated.CustomerName)
	assert.True(t, updated.UpdatedAt.After(c.UpdatedAt), "updatedAt bumps on every successful update")
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)
	assert.Equal(t, c.WarrantyID, updated.WarrantyID)
}

func TestUpdateContract_NotFound(t *testing.T) {
	f := newFixture(t)
	name := "x"
	_, err := f.contracts.Update(f.ctx, f.dealer, uuid.New(), service.ContractPatch{CustomerName: &name})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateContract_OtherDealershipUnauthorized(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	otherDealership := uuid.New()
	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDealer, DealershipID: &otherDealership}
	name := "x"
	_, err := f.contracts.Update(f.ctx, stranger, c.ID, service.ContractPatch{CustomerName: &name})
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestSelectProduct_AutoSelectsDefaultRow(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{ProductID: &f.product.ID})
	require.NoError(t, err)

	// The 24-month row sorts first and becomes the default.
	require.NotNil(t, updated.ProductPricingID)
	assert.Equal(t, f.rowSmall.ID, *updated.ProductPricingID)
	require.NotNil(t, updated.PricingDealerCostCents)
	assert.Equal(t, int64(50000), *updated.PricingDealerCostCents)
	require.NotNil(t, updated.PricingBasePriceCents)
	assert.Equal(t, int64(60000), *updated.PricingBasePriceCents, "retail at 20% markup")
}

func TestSelectPricingRow_ExplicitChoiceWins(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		ProductID:        &f.product.ID,
		ProductPricingID: &f.rowLarge.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ProductPricingID)
	assert.Equal(t, f.rowLarge.ID, *updated.ProductPricingID)
	require.NotNil(t, updated.PricingBasePriceCents)
	assert.Equal(t, int64(96000), *updated.PricingBasePriceCents)

	// A later field edit never overrides the explicit choice.
	name := "Jane Doe"
	again, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{CustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, f.rowLarge.ID, *again.ProductPricingID)
}

func TestSelectPricingRow_WrongProductRejected(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	other, err := f.products.Create(f.ctx, f.provider, model.Product{Name: "Other"})
	require.NoError(t, err)
	row, err := f.products.CreatePricing(f.ctx, f.provider, model.ProductPricing{
		ProductID: other.ID, BasePriceCents: 100,
	})
	require.NoError(t, err)

	_, err = f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		ProductID:        &f.product.ID,
		ProductPricingID: &row.ID,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestAddonSnapshot_FrozenAtSelection(t *testing.T) {
	f := newFixture(t)
	c := f.newDraft(t)

	_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{ProductID: &f.product.ID})
	require.NoError(t, err)

	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		SelectedAddonIDs: []uuid.UUID{f.addon.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.AddonSnapshot, 1)
	assert.Equal(t, int64(12000), updated.AddonSnapshot[0].ChosenPriceCents, "10000 at 20% markup")
	assert.Equal(t, int64(12000), updated.AddonTotalRetailCents)
	assert.Equal(t, int64(10000), updated.AddonTotalCostCents)

	// Later catalog changes never rewrite the snapshot.
	deactivated := f.addon
	deactivated.Active = false
	deactivated.BasePriceCents = 99999
	_, err = f.products.UpdateAddon(f.ctx, f.provider, f.addon.ID, deactivated)
	require.NoError(t, err)

	got, err := f.contracts.Get(f.ctx, f.dealer, c.ID)
	require.NoError(t, err)
	require.Len(t, got.AddonSnapshot, 1)
	assert.Equal(t, int64(12000), got.AddonSnapshot[0].ChosenPriceCents)
}

func TestSubmit_RequiresCustomerVinProductPricing(t *testing.T) {
	f := newFixture(t)
	sold := model.ContractStatusSold

	t.Run("missing customer name", func(t *testing.T) {
		c := f.newDraft(t)
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
			ProductID: &f.product.ID,
			Status:    &sold,
		})
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("bad vin", func(t *testing.T) {
		c := f.newDraft(t)
		name := "Jane Doe"
		badVehicle := model.Vehicle{VIN: "TOO-SHORT"}
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
			CustomerName: &name,
			Vehicle:      &badVehicle,
			ProductID:    &f.product.ID,
			Status:       &sold,
		})
		assert.ErrorIs(t, err, service.ErrValidation)
	})

	t.Run("no product selected", func(t *testing.T) {
		c := f.newDraft(t)
		name := "Jane Doe"
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
			CustomerName: &name,
			Status:       &sold,
		})
		assert.ErrorIs(t, err, service.ErrValidation)
	})
}

func TestContractLifecycle_SellThenLock(t *testing.T) {
	f := newFixture(t)
	c := f.soldContract(t)

	assert.Equal(t, model.ContractStatusSold, c.Status)
	require.NotNil(t, c.SoldAt)
	assert.Equal(t, f.dealer.UserID, *c.SoldByUserID)

	// Non-status edits fail once the contract leaves DRAFT; the stored
	// record is unchanged afterwards.
	name := "Someone Else"
	_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{CustomerName: &name})
	assert.ErrorIs(t, err, service.ErrLocked)

	got, err := f.contracts.Get(f.ctx, f.dealer, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, c.UpdatedAt, got.UpdatedAt)
}

func TestContractTransitions_OnlyLinearPath(t *testing.T) {
	f := newFixture(t)

	t.Run("draft cannot skip to remitted", func(t *testing.T) {
		c := f.newDraft(t)
		remitted := model.ContractStatusRemitted
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &remitted})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("sold cannot regress to draft", func(t *testing.T) {
		c := f.soldContract(t)
		draft := model.ContractStatusDraft
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &draft})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})

	t.Run("paid is terminal", func(t *testing.T) {
		c := f.soldContract(t)
		for _, next := range []model.ContractStatus{model.ContractStatusRemitted, model.ContractStatusPaid} {
			target := next
			_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &target})
			require.NoError(t, err)
		}
		sold := model.ContractStatusSold
		_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &sold})
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}

func TestRemoveContract_DraftOnly(t *testing.T) {
	f := newFixture(t)

	draft := f.newDraft(t)
	require.NoError(t, f.contracts.Remove(f.ctx, f.dealer, draft.ID))
	_, err := f.contracts.Get(f.ctx, f.dealer, draft.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	sold := f.soldContract(t)
	err = f.contracts.Remove(f.ctx, f.dealer, sold.ID)
	assert.ErrorIs(t, err, service.ErrLocked)
}

func TestListContracts_ScopedToDealership(t *testing.T) {
	f := newFixture(t)
	f.newDraft(t)

	other := uuid.New()
	stranger := model.Principal{UserID: uuid.New(), Role: model.RoleDealer, DealershipID: &other}
	got, err := f.contracts.List(f.ctx, stranger, store.ContractFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	mine, err := f.contracts.List(f.ctx, f.dealer, store.ContractFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
