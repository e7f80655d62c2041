package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func productLine(id, qty string) entity.Line {
	return entity.Line{Kind: entity.LineKindProduct, ItemID: id, Quantity: dec(qty), UnitPrice: dec("1000")}
}

func motoLine(id, qty string) entity.Line {
	return entity.Line{Kind: entity.LineKindMotorcycle, ItemID: id, Quantity: dec(qty), UnitPrice: dec("2500")}
}

func seedProduct(s *memStore, id, qty string) {
	s.products[id] = &entity.Product{ID: id, Name: "product " + id, StockQuantity: dec(qty)}
}

func seedMoto(s *memStore, id, qty string) {
	s.motos[id] = &entity.Motorcycle{ID: id, Brand: "Honda", Model: "CG125", StockQuantity: dec(qty)}
}

func TestStockLedger_ApplyAggregatesDuplicateLines(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "10")
	ledger := sales.NewStockLedger(testLogger())
	now := time.Now()

	// two lines referencing the same product must collapse into one delta
	err := ledger.Apply(reposFor(store), "inv1", []entity.Line{
		productLine("p1", "3"), productLine("p1", "4"),
	}, "u1", now)
	require.NoError(t, err)

	assert.True(t, store.products["p1"].StockQuantity.Equal(dec("3")))
	require.Len(t, store.movements, 1, "one audit row per distinct product")
	mov := store.movements[0]
	assert.Equal(t, "inv1", mov.InvoiceID)
	assert.True(t, mov.Quantity.Equal(dec("-7")))
	assert.True(t, mov.BalanceAfter.Equal(dec("3")))
}

func TestStockLedger_ApplyInsufficientStock(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "5")
	ledger := sales.NewStockLedger(testLogger())
	runner := &memTxRunner{s: store}

	err := runner.Run(context.Background(), func(r sales.TxRepos) error {
		return ledger.Apply(r, "inv1", []entity.Line{productLine("p1", "6")}, "u1", time.Now())
	})

	require.Error(t, err)
	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, "p1", stockErr.ItemID)
	assert.True(t, stockErr.Available.Equal(dec("5")))
	assert.True(t, stockErr.Requested.Equal(dec("6")))
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	// rolled back: nothing changed
	assert.True(t, store.products["p1"].StockQuantity.Equal(dec("5")))
	assert.Empty(t, store.movements)
}

func TestStockLedger_ReverseRestoresExactQuantities(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "100")
	seedProduct(store, "p2", "40")
	seedMoto(store, "m1", "2")
	ledger := sales.NewStockLedger(testLogger())
	now := time.Now()
	lines := []entity.Line{productLine("p1", "30"), productLine("p2", "10"), motoLine("m1", "1")}

	r := reposFor(store)
	require.NoError(t, ledger.Apply(r, "inv1", lines, "u1", now))
	require.NoError(t, ledger.Reverse(r, "inv1", lines))

	assert.True(t, store.products["p1"].StockQuantity.Equal(dec("100")))
	assert.True(t, store.products["p2"].StockQuantity.Equal(dec("40")))
	assert.True(t, store.motos["m1"].StockQuantity.Equal(dec("2")))
	assert.Empty(t, store.movements, "reverse removes the invoice's audit rows")
}

func TestStockLedger_MotorcycleGetsNoMovementRow(t *testing.T) {
	store := newMemStore()
	seedMoto(store, "m1", "3")
	ledger := sales.NewStockLedger(testLogger())

	err := ledger.Apply(reposFor(store), "inv1", []entity.Line{motoLine("m1", "1")}, "u1", time.Now())
	require.NoError(t, err)

	assert.True(t, store.motos["m1"].StockQuantity.Equal(dec("2")))
	assert.Empty(t, store.movements)
}

func TestStockLedger_ReserveReportsAllShortfalls(t *testing.T) {
	store := newMemStore()
	seedProduct(store, "p1", "1")
	seedProduct(store, "p2", "100")
	seedMoto(store, "m1", "0")
	ledger := sales.NewStockLedger(testLogger())

	shortfalls := ledger.Reserve(reposFor(store), []entity.Line{
		productLine("p1", "5"), productLine("p2", "5"), motoLine("m1", "1"),
	})

	require.Len(t, shortfalls, 2)
	ids := []string{shortfalls[0].ItemID, shortfalls[1].ItemID}
	assert.Contains(t, ids, "p1")
	assert.Contains(t, ids, "m1")

	// reserve never mutates
	assert.True(t, store.products["p1"].StockQuantity.Equal(dec("1")))
	assert.True(t, store.motos["m1"].StockQuantity.Equal(dec("0")))
}

func TestStockLedger_ApplyRejectsUnknownKind(t *testing.T) {
	store := newMemStore()
	ledger := sales.NewStockLedger(testLogger())

	err := ledger.Apply(reposFor(store), "inv1", []entity.Line{
		{Kind: "spare_part", ItemID: "x", Quantity: dec("1")},
	}, "u1", time.Now())

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
