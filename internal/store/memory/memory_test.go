package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shieldline/warranty-service/internal/model"
	"github.com/shieldline/warranty-service/internal/store"
	"github.com/shieldline/warranty-service/internal/store/memory"
)

func TestContractStore_CRUD(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores(memory.NewMapKV())

	c := model.Contract{
		ID:           uuid.New(),
		DealershipID: uuid.New(),
		Status:       model.ContractStatusDraft,
		CustomerName: "Jane Doe",
		CreatedAt:    time.Now().UTC(),
	}
	c.WarrantyID = model.DeriveWarrantyID(c.ID)

	created, err := stores.Contracts.Create(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, c.ID, created.ID)

	got, err := stores.Contracts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.CustomerName)
	assert.Equal(t, c.WarrantyID, got.WarrantyID)

	got.CustomerName = "John Doe"
	_, err = stores.Contracts.Update(ctx, *got)
	require.NoError(t, err)

	again, err := stores.Contracts.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", again.CustomerName)

	require.NoError(t, stores.Contracts.Remove(ctx, c.ID))
	_, err = stores.Contracts.Get(ctx, c.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestContractStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores(memory.NewMapKV())

	dealerA := uuid.New()
	dealerB := uuid.New()
	for _, c := range []model.Contract{
		{ID: uuid.New(), DealershipID: dealerA, Status: model.ContractStatusDraft},
		{ID: uuid.New(), DealershipID: dealerA, Status: model.ContractStatusSold},
		{ID: uuid.New(), DealershipID: dealerB, Status: model.ContractStatusSold},
	} {
		_, err := stores.Contracts.Create(ctx, c)
		require.NoError(t, err)
	}

	sold := model.ContractStatusSold
	got, err := stores.Contracts.List(ctx, store.ContractFilter{DealershipID: &dealerA, Status: &sold})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, dealerA, got[0].DealershipID)
}

func TestCorruptCollectionDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewMapKV()
	kv.Set("warranty.contracts", "{not json")

	stores := memory.NewStores(kv)
	got, err := stores.Contracts.List(ctx, store.ContractFilter{})
	require.NoError(t, err)
	assert.Empty(t, got)

	// Writes recover the collection.
	_, err = stores.Contracts.Create(ctx, model.Contract{ID: uuid.New()})
	require.NoError(t, err)
	got, err = stores.Contracts.List(ctx, store.ContractFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestUpdateMissingRecord(t *testing.T) {
	ctx := context.Background()
	stores := memory.NewStores(memory.NewMapKV())

	_, err := stores.Batches.Update(ctx, model.Batch{ID: uuid.New()})
	assert.ErrorIs(t, err, store.ErrNotFound)
}
