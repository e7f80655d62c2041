package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository over PostgreSQL (pool or tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository builds the adapter.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, sale_id, customer_id, invoice_number, status, currency, subtotal, tax_amount,
	discount, total, amount_paid, amount_due, due_date, paid_at, notes, created_by, created_at, updated_at`

// Create persists a new invoice header. Invoice numbers are unique.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.SaleID, inv.CustomerID, inv.InvoiceNumber, inv.Status, inv.Currency,
		inv.Subtotal, inv.TaxAmount, inv.Discount, inv.Total,
		inv.AmountPaid, inv.AmountDue, inv.DueDate, inv.PaidAt,
		inv.Notes, inv.CreatedBy, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// Update persists the invoice header.
func (r *InvoiceRepo) Update(inv *entity.Invoice) error {
	query := `
		UPDATE invoices SET customer_id = $2, status = $3, currency = $4, subtotal = $5, tax_amount = $6,
			discount = $7, total = $8, amount_paid = $9, amount_due = $10, due_date = $11, paid_at = $12,
			notes = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.CustomerID, inv.Status, inv.Currency, inv.Subtotal, inv.TaxAmount,
		inv.Discount, inv.Total, inv.AmountPaid, inv.AmountDue, inv.DueDate, inv.PaidAt,
		inv.Notes, inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// ReplaceItems rewrites the invoice's items wholesale (reconciliation).
func (r *InvoiceRepo) ReplaceItems(invoiceID string, items []*entity.InvoiceItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, invoiceID, it.Kind, it.ItemID, it.Name,
			it.Quantity, it.UnitPrice, it.DiscountPct, it.TaxRatePct,
			it.LineTotal, it.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

// GetByID returns the invoice header, or nil when absent.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	return r.get(id, false)
}

// GetForUpdate locks the invoice row so concurrent reconciliations serialize.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.get(id, true)
}

func (r *InvoiceRepo) get(id string, forUpdate bool) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var inv entity.Invoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.SaleID, &inv.CustomerID, &inv.InvoiceNumber, &inv.Status, &inv.Currency,
		&inv.Subtotal, &inv.TaxAmount, &inv.Discount, &inv.Total,
		&inv.AmountPaid, &inv.AmountDue, &inv.DueDate, &inv.PaidAt,
		&inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItemsByInvoiceID returns the invoice's items in order.
func (r *InvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `
		SELECT id, invoice_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order
		FROM invoice_items WHERE invoice_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &it.Kind, &it.ItemID, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.DiscountPct, &it.TaxRatePct,
			&it.LineTotal, &it.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByCustomer pages a customer's invoices, newest first.
func (r *InvoiceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.SaleID, &inv.CustomerID, &inv.InvoiceNumber, &inv.Status, &inv.Currency,
			&inv.Subtotal, &inv.TaxAmount, &inv.Discount, &inv.Total,
			&inv.AmountPaid, &inv.AmountDue, &inv.DueDate, &inv.PaidAt,
			&inv.Notes, &inv.CreatedBy, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}
