package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/billing"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReconcileInvoiceUseCase edits an already-finalized invoice by fully
// reversing its original stock and debt impact, then applying the new one,
// inside a single transaction. Any failure, including insufficient stock
// after the restore, rolls everything back and leaves the original state.
type ReconcileInvoiceUseCase struct {
	txRunner TxRunner
	stock    *StockLedger
	ledger   *CustomerLedger
	log      *logger.Logger
}

// NewReconcileInvoiceUseCase builds the use case.
func NewReconcileInvoiceUseCase(txRunner TxRunner, stock *StockLedger, ledger *CustomerLedger, log *logger.Logger) *ReconcileInvoiceUseCase {
	return &ReconcileInvoiceUseCase{txRunner: txRunner, stock: stock, ledger: ledger, log: log}
}

// ReconcileItem is one replacement line.
type ReconcileItem struct {
	Kind        string
	ItemID      string
	Name        string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	DiscountPct decimal.Decimal
	TaxRatePct  decimal.Decimal
}

// ReconcileInput is the invoice-edit contract. Totals are recomputed
// server-side from the items; only AmountPaid is taken from the caller.
type ReconcileInput struct {
	InvoiceID  string
	CustomerID *string // nil keeps the original customer
	Currency   string  // empty keeps the original currency
	Items      []ReconcileItem
	Discount   decimal.Decimal // invoice-level discount percentage
	AmountPaid decimal.Decimal
	Status     *string // only PAID / PARTIALLY_PAID accepted
	DueDate    *time.Time
	Notes      *string
}

func (in *ReconcileInput) validate() error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: reconciliation needs at least one item", domain.ErrInvalidInput)
	}
	for i, it := range in.Items {
		if !entity.ValidLineKind(it.Kind) {
			return fmt.Errorf("%w: item %d has unknown kind %q", domain.ErrInvalidInput, i+1, it.Kind)
		}
		if it.ItemID == "" {
			return fmt.Errorf("%w: item %d is missing its catalog id", domain.ErrInvalidInput, i+1)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d quantity must be greater than zero", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: item %d unit price cannot be negative", domain.ErrInvalidInput, i+1)
		}
	}
	if in.Currency != "" && !entity.ValidCurrency(in.Currency) {
		return fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, in.Currency)
	}
	if in.Status != nil && *in.Status != entity.InvoiceStatusPaid && *in.Status != entity.InvoiceStatusPartiallyPaid {
		return fmt.Errorf("%w: status override %q not allowed", domain.ErrInvalidInput, *in.Status)
	}
	return nil
}

// Reconcile runs the reverse-then-apply sequence:
//
//  1. load the invoice (row-locked) with items and correlated sale
//  2. reverse stock using the original items (sale items when the invoice's
//     own list is empty; historical data may be inconsistent)
//  3. reverse debt on the original customer, currency and amountDue
//  4. update the invoice header
//  5. replace invoice and sale items wholesale
//  6. apply stock for the new items against the restored quantities
//  7. apply debt on the (possibly different) target customer in the new currency
//  8. propagate the new total onto the sale
//
// For an unchanged product the net effect is stockBefore + oldQty - newQty;
// for an unchanged customer it is debtBefore - oldAmountDue + newAmountDue,
// floored at zero at each step independently.
func (uc *ReconcileInvoiceUseCase) Reconcile(ctx context.Context, userID string, in ReconcileInput) (*entity.Invoice, []*entity.InvoiceItem, error) {
	if err := in.validate(); err != nil {
		return nil, nil, err
	}

	var (
		outInv   *entity.Invoice
		outItems []*entity.InvoiceItem
	)
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		inv, err := r.Invoices.GetForUpdate(in.InvoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("invoice %s: %w", in.InvoiceID, domain.ErrNotFound)
		}

		origItems, err := r.Invoices.GetItemsByInvoiceID(inv.ID)
		if err != nil {
			return err
		}
		var sale *entity.Sale
		var origSaleItems []*entity.SaleItem
		if inv.SaleID != nil {
			sale, err = r.Sales.GetByID(*inv.SaleID)
			if err != nil {
				return err
			}
			if sale != nil {
				origSaleItems, err = r.Sales.GetItemsBySaleID(sale.ID)
				if err != nil {
					return err
				}
			}
		}

		origLines := make([]entity.Line, 0, len(origItems))
		for _, it := range origItems {
			origLines = append(origLines, it.Line)
		}
		if len(origLines) == 0 && len(origSaleItems) > 0 {
			for _, it := range origSaleItems {
				origLines = append(origLines, it.Line)
			}
		}
		if len(origLines) == 0 {
			// Zero-impact case, not fatal: the invoice never moved stock.
			uc.log.Warn().Str("invoice_id", inv.ID).
				Msg("reconcile: invoice and sale both have no items, treating original impact as zero")
		}

		now := time.Now()

		// 2) reverse stock (drops the invoice's movement rows too)
		if err := uc.stock.Reverse(r, inv.ID, origLines); err != nil {
			return err
		}

		// 3) reverse debt on the original customer in the original currency
		wasFinalized := inv.IsFinalized()
		if wasFinalized && inv.CustomerID != nil {
			if err := uc.ledger.ReverseInvoiceDebt(r, *inv.CustomerID, inv.AmountDue, inv.Currency, &inv.ID, userID, now); err != nil {
				return err
			}
		}

		// 4) new header: totals recomputed from the new items, amountDue
		// derived so total = amountPaid + amountDue always holds
		newLines := make([]entity.Line, 0, len(in.Items))
		for _, it := range in.Items {
			newLines = append(newLines, entity.Line{
				Kind: it.Kind, ItemID: it.ItemID, Name: it.Name,
				Quantity: it.Quantity, UnitPrice: it.UnitPrice,
				DiscountPct: it.DiscountPct, TaxRatePct: it.TaxRatePct,
			})
		}
		totals := billing.AggregateTotals(newLines, in.Discount)

		if in.CustomerID != nil {
			inv.CustomerID = in.CustomerID
		}
		if in.Currency != "" {
			inv.Currency = in.Currency
		}
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.Discount = in.Discount
		inv.Total = totals.Total
		inv.AmountPaid = in.AmountPaid
		inv.AmountDue = totals.Total.Sub(in.AmountPaid)
		if in.DueDate != nil {
			inv.DueDate = in.DueDate
		}
		if in.Notes != nil {
			inv.Notes = *in.Notes
		}
		if in.Status != nil {
			inv.Status = *in.Status
			if *in.Status == entity.InvoiceStatusPaid {
				paidAt := now
				inv.PaidAt = &paidAt
			} else {
				inv.PaidAt = nil
			}
		}
		inv.UpdatedAt = now
		if err := r.Invoices.Update(inv); err != nil {
			return err
		}

		// 5) replace items wholesale on the invoice and the correlated sale
		newInvItems := make([]*entity.InvoiceItem, 0, len(newLines))
		for i, l := range newLines {
			newInvItems = append(newInvItems, &entity.InvoiceItem{
				ID: uuid.New().String(), InvoiceID: inv.ID, Line: l,
				LineTotal: billing.LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct, l.TaxRatePct),
				SortOrder: i,
			})
		}
		if err := r.Invoices.ReplaceItems(inv.ID, newInvItems); err != nil {
			return err
		}
		if sale != nil {
			newSaleItems := make([]*entity.SaleItem, 0, len(newLines))
			for i, l := range newLines {
				newSaleItems = append(newSaleItems, &entity.SaleItem{
					ID: uuid.New().String(), SaleID: sale.ID, Line: l,
					LineTotal: billing.LineTotal(l.Quantity, l.UnitPrice, l.DiscountPct, l.TaxRatePct),
					SortOrder: i,
				})
			}
			if err := r.Sales.ReplaceItems(sale.ID, newSaleItems); err != nil {
				return err
			}
		}

		// 6) apply stock against the restored quantities; a shortfall here
		// aborts the whole transaction, undoing the reversal as well
		if err := uc.stock.Apply(r, inv.ID, newLines, userID, now); err != nil {
			return err
		}

		// 7) apply debt to the target customer, which may differ from the one
		// the reversal ran against
		if inv.CustomerID != nil && inv.IsFinalized() {
			if err := uc.ledger.ApplyInvoiceDebt(r, *inv.CustomerID, inv.AmountDue, inv.Currency, &inv.ID, userID, now); err != nil {
				return err
			}
		}

		// 8) propagate onto the sale
		if sale != nil {
			sale.CustomerID = inv.CustomerID
			sale.Currency = inv.Currency
			sale.Subtotal = inv.Subtotal
			sale.TaxAmount = inv.TaxAmount
			sale.Discount = inv.Discount
			sale.Total = inv.Total
			sale.AmountPaid = inv.AmountPaid
			sale.AmountDue = inv.AmountDue
			sale.UpdatedAt = now
			if err := r.Sales.Update(sale); err != nil {
				return err
			}
		}

		outInv = inv
		outItems = newInvItems
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.log.Info().Str("invoice_id", in.InvoiceID).Msg("invoice reconciled")
	return outInv, outItems, nil
}
