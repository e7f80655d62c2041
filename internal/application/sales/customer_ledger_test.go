package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCustomer(s *memStore, id string, debtIQD, debtUSD, balance string) *entity.Customer {
	c := &entity.Customer{
		ID: id, Name: "Ali Hassan",
		DebtIQD: dec(debtIQD), DebtUSD: dec(debtUSD), CurrentBalance: dec(balance),
	}
	s.customers[id] = c
	return c
}

func TestCustomerLedger_ApplyInvoiceDebtIQD(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "1000", "0", "1000")
	ledger := sales.NewCustomerLedger(testLogger())
	inv := "inv1"

	err := ledger.ApplyInvoiceDebt(reposFor(store), "c1", dec("500"), entity.CurrencyIQD, &inv, "u1", time.Now())
	require.NoError(t, err)

	c := store.customers["c1"]
	assert.True(t, c.DebtIQD.Equal(dec("1500")))
	assert.True(t, c.CurrentBalance.Equal(dec("1500")), "IQD debt moves currentBalance too")
	assert.True(t, c.DebtUSD.IsZero())
	require.Len(t, store.balances, 1)
	assert.True(t, store.balances[0].AmountIQD.Equal(dec("500")))
}

func TestCustomerLedger_ApplyInvoiceDebtUSD(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "1000", "200", "1000")
	ledger := sales.NewCustomerLedger(testLogger())

	err := ledger.ApplyInvoiceDebt(reposFor(store), "c1", dec("300"), entity.CurrencyUSD, nil, "u1", time.Now())
	require.NoError(t, err)

	c := store.customers["c1"]
	assert.True(t, c.DebtUSD.Equal(dec("500")))
	assert.True(t, c.DebtIQD.Equal(dec("1000")), "USD debt leaves IQD untouched")
	assert.True(t, c.CurrentBalance.Equal(dec("1000")))
}

func TestCustomerLedger_ReverseFloorsAtZero(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "300", "0", "300")
	ledger := sales.NewCustomerLedger(testLogger())

	// reversing more than the customer owes must clamp, never go negative
	err := ledger.ReverseInvoiceDebt(reposFor(store), "c1", dec("1000"), entity.CurrencyIQD, nil, "u1", time.Now())
	require.NoError(t, err)

	c := store.customers["c1"]
	assert.True(t, c.DebtIQD.IsZero())
	assert.True(t, c.CurrentBalance.IsZero())
}

func TestCustomerLedger_NegativeAmountDueIsCredit(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "100", "0", "100")
	ledger := sales.NewCustomerLedger(testLogger())

	err := ledger.ApplyInvoiceDebt(reposFor(store), "c1", dec("-400"), entity.CurrencyIQD, nil, "u1", time.Now())
	require.NoError(t, err)

	c := store.customers["c1"]
	assert.True(t, c.DebtIQD.IsZero(), "credit floors at zero")
	assert.True(t, c.CurrentBalance.IsZero())
}

func TestCustomerLedger_RecordPayment(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "2000", "50", "2000")
	ledger := sales.NewCustomerLedger(testLogger())
	now := time.Now()

	res, err := ledger.RecordPayment(reposFor(store), "c1", dec("500"), dec("20"), "cash", "partial payment", "u1", now)
	require.NoError(t, err)
	require.NotNil(t, res)

	c := store.customers["c1"]
	assert.True(t, c.DebtIQD.Equal(dec("1500")))
	assert.True(t, c.CurrentBalance.Equal(dec("1500")))
	assert.True(t, c.DebtUSD.Equal(dec("30")))
	assert.Equal(t, 0, c.DaysOverdue)
	require.NotNil(t, c.LastPaymentDate)
	assert.Equal(t, now, *c.LastPaymentDate)

	// payments are credits: negative signed amounts
	require.Len(t, store.balances, 1)
	row := store.balances[0]
	assert.True(t, row.AmountIQD.Equal(dec("-500")))
	assert.True(t, row.AmountUSD.Equal(dec("-20")))
	assert.Equal(t, "cash", row.Method)

	// companion payment invoice: PAID, zero due
	inv := store.invoices[res.InvoiceID]
	require.NotNil(t, inv)
	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.AmountDue.IsZero())
	assert.NotNil(t, inv.PaidAt)
}

// Scenario: currentBalance 500 IQD, attempted payment of 600 IQD must be
// rejected with debt and ledger untouched.
func TestCustomerLedger_OverpaymentRejected(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "500", "0", "500")
	ledger := sales.NewCustomerLedger(testLogger())
	runner := &memTxRunner{s: store}

	err := runner.Run(context.Background(), func(r sales.TxRepos) error {
		_, err := ledger.RecordPayment(r, "c1", dec("600"), decimal.Zero, "cash", "", "u1", time.Now())
		return err
	})

	require.Error(t, err)
	var overErr *domain.OverpaymentError
	require.True(t, errors.As(err, &overErr))
	assert.Equal(t, entity.CurrencyIQD, overErr.Currency)
	assert.True(t, overErr.Outstanding.Equal(dec("500")))
	assert.True(t, overErr.Requested.Equal(dec("600")))

	c := store.customers["c1"]
	assert.True(t, c.DebtIQD.Equal(dec("500")), "debt unchanged")
	assert.True(t, c.CurrentBalance.Equal(dec("500")))
	assert.Empty(t, store.balances, "no ledger row written")
	assert.Empty(t, store.invoices, "no payment invoice created")
}

func TestCustomerLedger_OverpaymentUSD(t *testing.T) {
	store := newMemStore()
	seedCustomer(store, "c1", "10000", "100", "10000")
	ledger := sales.NewCustomerLedger(testLogger())

	_, err := ledger.RecordPayment(reposFor(store), "c1", decimal.Zero, dec("150"), "cash", "", "u1", time.Now())

	var overErr *domain.OverpaymentError
	require.True(t, errors.As(err, &overErr))
	assert.Equal(t, entity.CurrencyUSD, overErr.Currency)
}

func TestRecomputeDaysOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tenDaysAgo := now.AddDate(0, 0, -10)
	future := now.AddDate(0, 0, 2)

	tests := []struct {
		name     string
		customer entity.Customer
		want     int
	}{
		{"no debt", entity.Customer{LastPaymentDate: &tenDaysAgo}, 0},
		{"debt with past payment", entity.Customer{DebtIQD: dec("100"), LastPaymentDate: &tenDaysAgo}, 10},
		{"debt without payment date", entity.Customer{DebtUSD: dec("50")}, 0},
		{"debt with future payment date", entity.Customer{DebtIQD: dec("100"), LastPaymentDate: &future}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sales.RecomputeDaysOverdue(&tt.customer, now))
		})
	}
}
