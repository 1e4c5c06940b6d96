package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/service"
)

func (f *fixture) soldWithAddon(t *testing.T) *model.Contract {
	t.Helper()
	c := f.newDraft(t)
	name := "Jane Doe"
	_, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		CustomerName: &name,
		ProductID:    &f.product.ID,
	})
	require.NoError(t, err)
	_, err = f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{
		SelectedAddonIDs: []uuid.UUID{f.addon.ID},
	})
	require.NoError(t, err)

	sold := model.ContractStatusSold
	updated, err := f.contracts.Update(f.ctx, f.dealer, c.ID, service.ContractPatch{Status: &sold})
	require.NoError(t, err)
	return updated
}

func TestCreateBatch_AdHocOpen(t *testing.T) {
	f := newFixture(t)

	b, err := f.batches.Create(f.ctx, f.dealer, "March batch")
	require.NoError(t, err)
	assert.Equal(t, model.BatchStatusOpen, b.Status)
	assert.Equal(t, model.PaymentStatusUnpaid, b.PaymentStatus)
	assert.Empty(t, b.ContractIDs)
	assert.Equal(t, model.RemittanceStatusDraft, b.EffectiveRemittanceStatus())
}

func TestCreateRemittance_ClosedWithTotals(t *testing.T) {
	f := newFixture(t)
	c1 := f.soldWithAddon(t) // dealer cost 50000 + addon cost 10000
	c2 := f.soldContract(t)  // dealer cost 50000

	b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March remittance", []uuid.UUID{c1.ID, c2.ID})
	require.NoError(t, err)

	assert.Equal(t, model.BatchStatusClosed, b.Status)
	assert.Equal(t, model.RemittanceStatusSubmitted, b.EffectiveRemittanceStatus())
	assert.Equal(t, int64(110000), b.SubtotalCents)
	assert.Equal(t, int64(14300), b.TaxCents, "13% tax")
	assert.Equal(t, int64(124300), b.TotalCents)

	// Member contracts advance SOLD -> REMITTED.
	for _, id := range []uuid.UUID{c1.ID, c2.ID} {
		got, err := f.contracts.Get(f.ctx, f.dealer, id)
		require.NoError(t, err)
		assert.Equal(t, model.ContractStatusRemitted, got.Status)
		assert.NotNil(t, got.RemittedAt)
	}
}

func TestCreateRemittance_RejectsNonSoldContracts(t *testing.T) {
	f := newFixture(t)
	draft := f.newDraft(t)

	_, err := f.batches.CreateRemittance(f.ctx, f.dealer, "bad", []uuid.UUID{draft.ID})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestCreateRemittance_RejectsUnknownContracts(t *testing.T) {
	f := newFixture(t)
	_, err := f.batches.CreateRemittance(f.ctx, f.dealer, "bad", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestUpdateBatch_ClosedLocksNonPaymentFields(t *testing.T) {
	f := newFixture(t)
	c1 := f.soldContract(t)
	c2 := f.soldContract(t)

	b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c1.ID, c2.ID})
	require.NoError(t, err)

	_, err = f.batches.Update(f.ctx, f.dealer, b.ID, service.BatchPatch{
		ContractIDs: []uuid.UUID{c1.ID},
	})
	assert.ErrorIs(t, err, service.ErrLocked)

	// Record unchanged after the failed edit.
	got, err := f.batches.Get(f.ctx, f.dealer, b.ID)
	require.NoError(t, err)
	assert.Len(t, got.ContractIDs, 2)
	assert.Equal(t, b.UpdatedAt, got.UpdatedAt)

	// Payment fields stay editable.
	paid := model.PaymentStatusPaid
	now := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	updated, err := f.batches.Update(f.ctx, f.dealer, b.ID, service.BatchPatch{
		PaymentStatus: &paid,
		PaidAt:        &now,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, updated.PaymentStatus)
}

func TestUpdateBatch_ClosedNeverReopens(t *testing.T) {
	f := newFixture(t)
	c := f.soldContract(t)
	b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
	require.NoError(t, err)

	open := model.BatchStatusOpen
	_, err = f.batches.Update(f.ctx, f.dealer, b.ID, service.BatchPatch{Status: &open})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestMarkPaid_RequiresMethodAndDate(t *testing.T) {
	f := newFixture(t)
	c := f.soldContract(t)
	b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
	require.NoError(t, err)

	_, err = f.batches.MarkPaid(f.ctx, f.dealer, b.ID, service.MarkPaidInput{
		Date: time.Now(),
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.batches.MarkPaid(f.ctx, f.dealer, b.ID, service.MarkPaidInput{
		Method: model.PaymentMethodEFT,
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	// Nothing was persisted by the failed attempts.
	got, err := f.batches.Get(f.ctx, f.dealer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusUnpaid, got.PaymentStatus)
}

func TestMarkPaid_SettlesBatchAndContracts(t *testing.T) {
	f := newFixture(t)
	c := f.soldContract(t)
	b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
	require.NoError(t, err)

	date := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	updated, err := f.batches.MarkPaid(f.ctx, f.dealer, b.ID, service.MarkPaidInput{
		Method:    model.PaymentMethodCheque,
		Reference: "CHQ-4411",
		Date:      date,
	})
	require.NoError(t, err)

	assert.Equal(t, model.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, model.RemittanceStatusPaid, updated.EffectiveRemittanceStatus())
	require.NotNil(t, updated.PaymentReference)
	assert.Equal(t, "CHQ-4411", *updated.PaymentReference)
	require.NotNil(t, updated.PaidAt)

	got, err := f.contracts.Get(f.ctx, f.dealer, c.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ContractStatusPaid, got.Status)
	assert.NotNil(t, got.PaidAt)
}

func TestApproveReject_ProviderWorkflow(t *testing.T) {
	f := newFixture(t)

	t.Run("approve", func(t *testing.T) {
		c := f.soldContract(t)
		b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
		require.NoError(t, err)

		approved, err := f.batches.Approve(f.ctx, f.provider, b.ID)
		require.NoError(t, err)
		assert.Equal(t, model.RemittanceStatusApproved, approved.EffectiveRemittanceStatus())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		c := f.soldContract(t)
		b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
		require.NoError(t, err)

		_, err = f.batches.Reject(f.ctx, f.provider, b.ID, "  ")
		assert.ErrorIs(t, err, service.ErrValidation)

		rejected, err := f.batches.Reject(f.ctx, f.provider, b.ID, "mileage mismatch on W-1")
		require.NoError(t, err)
		assert.Equal(t, model.RemittanceStatusRejected, rejected.EffectiveRemittanceStatus())
		require.NotNil(t, rejected.RejectionReason)
	})

	t.Run("dealer cannot approve", func(t *testing.T) {
		c := f.soldContract(t)
		b, err := f.batches.CreateRemittance(f.ctx, f.dealer, "March", []uuid.UUID{c.ID})
		require.NoError(t, err)

		_, err = f.batches.Approve(f.ctx, f.dealer, b.ID)
		assert.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("only submitted remittances are reviewable", func(t *testing.T) {
		b, err := f.batches.Create(f.ctx, f.dealer, "open batch")
		require.NoError(t, err)

		_, err = f.batches.Approve(f.ctx, f.provider, b.ID)
		assert.ErrorIs(t, err, service.ErrInvalidTransition)
	})
}
