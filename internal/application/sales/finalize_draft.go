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

// FinalizeDraftUseCase converts a valid draft into an immutable Sale+Invoice
// pair, deducting stock and applying customer debt exactly once each, all
// inside one transaction.
type FinalizeDraftUseCase struct {
	txRunner TxRunner
	stock    *StockLedger
	ledger   *CustomerLedger
	log      *logger.Logger
}

// NewFinalizeDraftUseCase builds the use case.
func NewFinalizeDraftUseCase(txRunner TxRunner, stock *StockLedger, ledger *CustomerLedger, log *logger.Logger) *FinalizeDraftUseCase {
	return &FinalizeDraftUseCase{txRunner: txRunner, stock: stock, ledger: ledger, log: log}
}

// FinalizeInput is the finalize-draft contract.
type FinalizeInput struct {
	DraftID       string
	PaymentMethod string
	AmountPaid    decimal.Decimal
	InvoiceNumber string // optional, generated when empty
	Notes         string
}

// FinalizeResult links the created records back to the caller.
type FinalizeResult struct {
	SaleID    string
	InvoiceID string
}

// Finalize loads the draft, re-runs the finalization rules (returning every
// violation when invalid), and creates the Sale and Invoice with the draft's
// items copied. Stock is applied before debt; any failure rolls the whole
// transaction back and leaves the draft editable. The draft row is locked for
// the duration, so a concurrent finalize of the same draft serializes and
// then fails on the FINALIZED status.
func (uc *FinalizeDraftUseCase) Finalize(ctx context.Context, userID string, in FinalizeInput) (*FinalizeResult, error) {
	if in.AmountPaid.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount paid cannot be negative", domain.ErrInvalidInput)
	}

	var result FinalizeResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		draft, err := r.Drafts.GetForUpdate(in.DraftID)
		if err != nil {
			return err
		}
		if draft == nil {
			return fmt.Errorf("draft %s: %w", in.DraftID, domain.ErrNotFound)
		}

		if violations := billing.FinalizeViolations(draft); len(violations) > 0 {
			return &domain.ValidationError{Violations: violations}
		}
		if !billing.CanTransition(draft.Status, entity.DraftStatusFinalizing) {
			return fmt.Errorf("draft %s status %s: %w", draft.ID, draft.Status, domain.ErrConflict)
		}

		now := time.Now()
		var customer *entity.Customer
		if draft.CustomerID != nil {
			customer, err = r.Customers.GetByID(*draft.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("customer %s: %w", *draft.CustomerID, domain.ErrNotFound)
			}
		}

		number := in.InvoiceNumber
		if number == "" {
			prefix := "INV"
			if customer != nil {
				prefix = invoiceNumberPrefix(customer.Name)
			}
			number = GenerateInvoiceNumber(prefix, now)
		}

		amountDue := draft.Total.Sub(in.AmountPaid)
		invoiceStatus := entity.InvoiceStatusPartiallyPaid
		var paidAt *time.Time
		if in.AmountPaid.GreaterThanOrEqual(draft.Total) {
			invoiceStatus = entity.InvoiceStatusPaid
			paidAt = &now
		}

		sale := &entity.Sale{
			ID:            uuid.New().String(),
			Type:          draft.SaleType,
			CustomerID:    draft.CustomerID,
			Status:        entity.SaleStatusCompleted,
			Currency:      draft.Currency,
			Subtotal:      draft.Subtotal,
			TaxAmount:     draft.TaxAmount,
			Discount:      draft.Discount,
			Total:         draft.Total,
			PaymentMethod: in.PaymentMethod,
			AmountPaid:    in.AmountPaid,
			AmountDue:     amountDue,
			Notes:         in.Notes,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Sales.Create(sale); err != nil {
			return err
		}
		saleItems := make([]*entity.SaleItem, 0, len(draft.Items))
		for _, it := range draft.Items {
			saleItems = append(saleItems, &entity.SaleItem{
				ID: uuid.New().String(), SaleID: sale.ID,
				Line: it.Line, LineTotal: it.LineTotal, SortOrder: it.SortOrder,
			})
		}
		if err := r.Sales.ReplaceItems(sale.ID, saleItems); err != nil {
			return err
		}

		invoice := &entity.Invoice{
			ID:            uuid.New().String(),
			SaleID:        &sale.ID,
			CustomerID:    draft.CustomerID,
			InvoiceNumber: number,
			Status:        invoiceStatus,
			Currency:      draft.Currency,
			Subtotal:      draft.Subtotal,
			TaxAmount:     draft.TaxAmount,
			Discount:      draft.Discount,
			Total:         draft.Total,
			AmountPaid:    in.AmountPaid,
			AmountDue:     amountDue,
			PaidAt:        paidAt,
			Notes:         in.Notes,
			CreatedBy:     userID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := r.Invoices.Create(invoice); err != nil {
			return err
		}
		invItems := make([]*entity.InvoiceItem, 0, len(draft.Items))
		lines := make([]entity.Line, 0, len(draft.Items))
		for _, it := range draft.Items {
			invItems = append(invItems, &entity.InvoiceItem{
				ID: uuid.New().String(), InvoiceID: invoice.ID,
				Line: it.Line, LineTotal: it.LineTotal, SortOrder: it.SortOrder,
			})
			lines = append(lines, it.Line)
		}
		if err := r.Invoices.ReplaceItems(invoice.ID, invItems); err != nil {
			return err
		}

		if err := uc.stock.Apply(r, invoice.ID, lines, userID, now); err != nil {
			return err
		}

		if draft.CustomerID != nil && invoice.IsFinalized() {
			if err := uc.ledger.ApplyInvoiceDebt(r, *draft.CustomerID, amountDue, draft.Currency, &invoice.ID, userID, now); err != nil {
				return err
			}
		}

		draft.Status = entity.DraftStatusFinalized
		draft.SaleID = &sale.ID
		draft.InvoiceID = &invoice.ID
		draft.PaymentMethod = in.PaymentMethod
		draft.AmountPaid = in.AmountPaid
		draft.UpdatedAt = now
		if err := r.Drafts.Update(draft); err != nil {
			return err
		}

		result = FinalizeResult{SaleID: sale.ID, InvoiceID: invoice.ID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("draft_id", in.DraftID).Str("sale_id", result.SaleID).
		Str("invoice_id", result.InvoiceID).Msg("draft finalized")
	return &result, nil
}
