package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
)

func newDraftUC(store *memStore) *sales.DraftUseCase {
	return sales.NewDraftUseCase(
		&memTxRunner{s: store},
		&memDraftRepo{s: store},
		&memProductRepo{s: store},
		&memMotoRepo{s: store},
		&memCustomerRepo{s: store},
		testLogger(),
	)
}

func seedPricedProduct(s *memStore, id, name, price, taxRate string) {
	s.products[id] = &entity.Product{
		ID: id, Name: name,
		Price: dec(price), TaxRate: dec(taxRate),
		StockQuantity: dec("100"),
	}
}

func seedPricedMoto(s *memStore, id, brand, model, price string) {
	s.motos[id] = &entity.Motorcycle{
		ID: id, Brand: brand, Model: model,
		Price: dec(price), StockQuantity: dec("5"),
	}
}

func itemInput(kind, itemID, qty, price string) sales.DraftItemInput {
	return sales.DraftItemInput{Kind: kind, ItemID: itemID, Quantity: dec(qty), UnitPrice: dec(price)}
}

func TestCreateDraft_SnapshotsCatalogNameAndPrice(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	uc := newDraftUC(store)

	draft, err := uc.Create(context.Background(), "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "3", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DraftStatusCreated, draft.Status)
	assert.Equal(t, entity.CurrencyIQD, draft.Currency)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Engine Oil 1L", draft.Items[0].Name)
	assert.True(t, draft.Items[0].UnitPrice.Equal(dec("6000")), "catalog price used when zero sent")
	assert.True(t, draft.Items[0].LineTotal.Equal(dec("18000")), "got %s", draft.Items[0].LineTotal)
	assert.True(t, draft.Total.Equal(dec("18000")), "got %s", draft.Total)

	stored := store.drafts[draft.ID]
	require.NotNil(t, stored)
	assert.Len(t, store.draftItems[draft.ID], 1)
}

func TestCreateDraft_MotorcycleLineDefaultsToUSD(t *testing.T) {
	store := newMemStore()
	seedPricedMoto(store, "m1", "Honda", "CG125", "1200")
	uc := newDraftUC(store)

	draft, err := uc.Create(context.Background(), "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindMotorcycle, "m1", "1", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CurrencyUSD, draft.Currency)
	assert.Equal(t, "Honda CG125", draft.Items[0].Name)
	assert.True(t, draft.Items[0].UnitPrice.Equal(dec("1200")))
}

func TestCreateDraft_ExplicitCurrencyWins(t *testing.T) {
	store := newMemStore()
	seedPricedMoto(store, "m1", "Honda", "CG125", "1200")
	uc := newDraftUC(store)

	draft, err := uc.Create(context.Background(), "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Currency: entity.CurrencyIQD,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindMotorcycle, "m1", "1", "0")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.CurrencyIQD, draft.Currency)
}

func TestCreateDraft_RejectsBadInput(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	uc := newDraftUC(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, "user-1", sales.CreateDraftInput{SaleType: "GIFT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown sale type")

	_, err = uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput("BUNDLE", "p1", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown line kind")

	_, err = uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Currency: "EUR",
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown currency")

	_, err = uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "ghost", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown product")

	ghost := "no-such-customer"
	_, err = uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType:   entity.SaleTypeRetail,
		CustomerID: &ghost,
		Items:      []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "unknown customer")
}

func TestUpdateDraft_AutosaveReplacesItemsAndRecomputes(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	seedPricedProduct(store, "p2", "Brake Pads", "9000", "0")
	uc := newDraftUC(store)
	ctx := context.Background()

	draft, err := uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "2", "0")},
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, sales.UpdateDraftInput{
		DraftID: draft.ID,
		Items:   []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p2", "1", "0")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.DraftStatusAutosaving, updated.Status)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "p2", updated.Items[0].ItemID)
	assert.True(t, updated.Total.Equal(dec("9000")), "got %s", updated.Total)
	assert.Len(t, store.draftItems[draft.ID], 1)
}

func TestUpdateDraft_MarkReady(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	uc := newDraftUC(store)
	ctx := context.Background()

	draft, err := uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, sales.UpdateDraftInput{
		DraftID:   draft.ID,
		Items:     []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
		MarkReady: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStatusReady, updated.Status)
}

func TestUpdateDraft_FinalizedDraftIsImmutable(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	seedDraft(store, "d1", entity.DraftStatusFinalized, entity.SaleTypeRetail, entity.CurrencyIQD, nil,
		draftItem(entity.LineKindProduct, "p1", "1", "6000"))
	uc := newDraftUC(store)

	_, err := uc.Update(context.Background(), sales.UpdateDraftInput{
		DraftID: "d1",
		Items:   []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "2", "0")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestUpdateDraft_UnknownDraft(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	uc := newDraftUC(store)

	_, err := uc.Update(context.Background(), sales.UpdateDraftInput{
		DraftID: "ghost",
		Items:   []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancelDraft(t *testing.T) {
	store := newMemStore()
	seedPricedProduct(store, "p1", "Engine Oil 1L", "6000", "0")
	uc := newDraftUC(store)
	ctx := context.Background()

	draft, err := uc.Create(ctx, "user-1", sales.CreateDraftInput{
		SaleType: entity.SaleTypeRetail,
		Items:    []sales.DraftItemInput{itemInput(entity.LineKindProduct, "p1", "1", "0")},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(ctx, draft.ID))
	assert.Equal(t, entity.DraftStatusCancelled, store.drafts[draft.ID].Status)

	err = uc.Cancel(ctx, draft.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict), "cancelled draft has no exits")
}

func TestGetDraft_NotFound(t *testing.T) {
	uc := newDraftUC(newMemStore())

	_, err := uc.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
