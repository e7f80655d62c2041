package sales

import (
	"fmt"
	"time"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerLedger applies and reverses customer debt in two independent
// currencies. IQD debt also moves CurrentBalance, the IQD-scoped display
// figure. Debts are floored at zero at every step, never allowed to persist
// negative. Every mutation appends a CustomerBalance ledger row so the cached
// debt columns stay recomputable.
type CustomerLedger struct {
	log *logger.Logger
}

// NewCustomerLedger builds the ledger.
func NewCustomerLedger(log *logger.Logger) *CustomerLedger {
	return &CustomerLedger{log: log}
}

func floorZero(v decimal.Decimal) decimal.Decimal {
	if v.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return v
}

// ApplyInvoiceDebt adds amountDue to the customer's debt in the invoice's
// currency. amountDue may be negative (overpayment credit); the resulting
// debt is floored at zero.
func (cl *CustomerLedger) ApplyInvoiceDebt(r TxRepos, customerID string, amountDue decimal.Decimal, currency string, invoiceID *string, userID string, now time.Time) error {
	return cl.adjustDebt(r, customerID, amountDue, currency, invoiceID, userID, now, "invoice debt")
}

// ReverseInvoiceDebt removes the original invoice's amountDue from the
// customer's debt in the original currency, before any new debt is applied.
// Uses the same zero floor symmetrically.
func (cl *CustomerLedger) ReverseInvoiceDebt(r TxRepos, customerID string, amountDue decimal.Decimal, currency string, invoiceID *string, userID string, now time.Time) error {
	return cl.adjustDebt(r, customerID, amountDue.Neg(), currency, invoiceID, userID, now, "invoice debt reversal")
}

func (cl *CustomerLedger) adjustDebt(r TxRepos, customerID string, amount decimal.Decimal, currency string, invoiceID *string, userID string, now time.Time, description string) error {
	if !entity.ValidCurrency(currency) {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, currency)
	}
	c, err := r.Customers.GetForUpdate(customerID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}

	row := &entity.CustomerBalance{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		InvoiceID:   invoiceID,
		Description: description,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if currency == entity.CurrencyIQD {
		c.DebtIQD = floorZero(c.DebtIQD.Add(amount))
		c.CurrentBalance = floorZero(c.CurrentBalance.Add(amount))
		row.AmountIQD = amount
	} else {
		c.DebtUSD = floorZero(c.DebtUSD.Add(amount))
		row.AmountUSD = amount
	}
	c.UpdatedAt = now

	if err := r.Customers.UpdateDebts(c); err != nil {
		return err
	}
	return r.Balances.Create(row)
}

// RecordPaymentResult carries the payment's ledger row and companion invoice.
type RecordPaymentResult struct {
	BalanceID string
	InvoiceID string
}

// RecordPayment validates the payment against the outstanding debt first
// (amountIQD against CurrentBalance, amountUSD against DebtUSD) and only
// then writes: a negative CustomerBalance row,
// a PAID companion payment invoice for traceability, the reduced debt fields,
// daysOverdue reset to zero and lastPaymentDate stamped.
func (cl *CustomerLedger) RecordPayment(r TxRepos, customerID string, amountIQD, amountUSD decimal.Decimal, method, description, userID string, now time.Time) (*RecordPaymentResult, error) {
	if amountIQD.LessThan(decimal.Zero) || amountUSD.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amounts cannot be negative", domain.ErrInvalidInput)
	}
	if amountIQD.IsZero() && amountUSD.IsZero() {
		return nil, fmt.Errorf("%w: payment must carry an amount", domain.ErrInvalidInput)
	}

	c, err := r.Customers.GetForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}

	if amountIQD.GreaterThan(c.CurrentBalance) {
		return nil, &domain.OverpaymentError{
			Currency: entity.CurrencyIQD, Outstanding: c.CurrentBalance, Requested: amountIQD,
		}
	}
	if amountUSD.GreaterThan(c.DebtUSD) {
		return nil, &domain.OverpaymentError{
			Currency: entity.CurrencyUSD, Outstanding: c.DebtUSD, Requested: amountUSD,
		}
	}

	// Companion payment invoice: already settled, zero due.
	currency := entity.CurrencyIQD
	total := amountIQD
	if amountIQD.IsZero() {
		currency = entity.CurrencyUSD
		total = amountUSD
	}
	paidAt := now
	inv := &entity.Invoice{
		ID:            uuid.New().String(),
		CustomerID:    &customerID,
		InvoiceNumber: GenerateInvoiceNumber("PAY", now),
		Status:        entity.InvoiceStatusPaid,
		Currency:      currency,
		Subtotal:      total,
		Total:         total,
		AmountPaid:    total,
		AmountDue:     decimal.Zero,
		PaidAt:        &paidAt,
		Notes:         description,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.Invoices.Create(inv); err != nil {
		return nil, err
	}

	row := &entity.CustomerBalance{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		InvoiceID:   &inv.ID,
		AmountIQD:   amountIQD.Neg(), // payments are credits
		AmountUSD:   amountUSD.Neg(),
		Method:      method,
		Description: description,
		CreatedBy:   userID,
		CreatedAt:   now,
	}
	if err := r.Balances.Create(row); err != nil {
		return nil, err
	}

	c.DebtIQD = floorZero(c.DebtIQD.Sub(amountIQD))
	c.CurrentBalance = floorZero(c.CurrentBalance.Sub(amountIQD))
	c.DebtUSD = floorZero(c.DebtUSD.Sub(amountUSD))
	c.DaysOverdue = 0
	c.LastPaymentDate = &paidAt
	c.UpdatedAt = now
	if err := r.Customers.UpdateDebts(c); err != nil {
		return nil, err
	}

	return &RecordPaymentResult{BalanceID: row.ID, InvoiceID: inv.ID}, nil
}

// RecomputeDaysOverdue derives how many whole days the customer's debt is
// overdue. No debt means zero; debt without a prior payment date also means
// zero (the figure cannot be computed and is never invented).
func RecomputeDaysOverdue(c *entity.Customer, now time.Time) int {
	if !c.HasDebt() {
		return 0
	}
	if c.LastPaymentDate == nil || c.LastPaymentDate.After(now) {
		return 0
	}
	days := int(now.Sub(*c.LastPaymentDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
