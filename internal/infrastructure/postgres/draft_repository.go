package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.DraftRepository = (*DraftRepo)(nil)

// DraftRepo implements DraftRepository over PostgreSQL (pool or tx).
type DraftRepo struct {
	q Querier
}

// NewDraftRepository builds the adapter. Pass a pool or a tx (Querier).
func NewDraftRepository(q Querier) *DraftRepo {
	return &DraftRepo{q: q}
}

const draftColumns = `id, sale_type, status, customer_id, currency, subtotal, tax_amount, discount, total,
	payment_method, amount_paid, notes, created_by, sale_id, invoice_id, created_at, updated_at`

// Create persists a new draft header. Items go through ReplaceItems.
func (r *DraftRepo) Create(d *entity.Draft) error {
	query := `
		INSERT INTO drafts (` + draftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SaleType, d.Status, d.CustomerID, d.Currency,
		d.Subtotal, d.TaxAmount, d.Discount, d.Total,
		d.PaymentMethod, d.AmountPaid, d.Notes, d.CreatedBy,
		d.SaleID, d.InvoiceID, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}
	return nil
}

// Update persists the draft header.
func (r *DraftRepo) Update(d *entity.Draft) error {
	query := `
		UPDATE drafts SET status = $2, customer_id = $3, currency = $4, subtotal = $5, tax_amount = $6,
			discount = $7, total = $8, payment_method = $9, amount_paid = $10, notes = $11,
			sale_id = $12, invoice_id = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Status, d.CustomerID, d.Currency, d.Subtotal, d.TaxAmount,
		d.Discount, d.Total, d.PaymentMethod, d.AmountPaid, d.Notes,
		d.SaleID, d.InvoiceID, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	return nil
}

// ReplaceItems deletes and rewrites the draft's items as a unit.
func (r *DraftRepo) ReplaceItems(draftID string, items []*entity.DraftItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM draft_items WHERE draft_id = $1`, draftID); err != nil {
		return fmt.Errorf("delete draft items: %w", err)
	}
	query := `
		INSERT INTO draft_items (id, draft_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, draftID, it.Kind, it.ItemID, it.Name,
			it.Quantity, it.UnitPrice, it.DiscountPct, it.TaxRatePct,
			it.LineTotal, it.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert draft item: %w", err)
		}
	}
	return nil
}

// GetByID returns the draft with its items, or nil when absent.
func (r *DraftRepo) GetByID(id string) (*entity.Draft, error) {
	return r.get(id, false)
}

// GetForUpdate locks the draft row for the enclosing transaction.
func (r *DraftRepo) GetForUpdate(id string) (*entity.Draft, error) {
	return r.get(id, true)
}

func (r *DraftRepo) get(id string, forUpdate bool) (*entity.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var d entity.Draft
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.SaleType, &d.Status, &d.CustomerID, &d.Currency,
		&d.Subtotal, &d.TaxAmount, &d.Discount, &d.Total,
		&d.PaymentMethod, &d.AmountPaid, &d.Notes, &d.CreatedBy,
		&d.SaleID, &d.InvoiceID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get draft: %w", err)
	}
	items, err := r.itemsByDraftID(d.ID)
	if err != nil {
		return nil, err
	}
	d.Items = items
	return &d, nil
}

func (r *DraftRepo) itemsByDraftID(draftID string) ([]*entity.DraftItem, error) {
	query := `
		SELECT id, draft_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order
		FROM draft_items WHERE draft_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, draftID)
	if err != nil {
		return nil, fmt.Errorf("list draft items: %w", err)
	}
	defer rows.Close()

	var items []*entity.DraftItem
	for rows.Next() {
		var it entity.DraftItem
		if err := rows.Scan(
			&it.ID, &it.DraftID, &it.Kind, &it.ItemID, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.DiscountPct, &it.TaxRatePct,
			&it.LineTotal, &it.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan draft item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByStatus pages draft headers by status, newest first. Items are not
// loaded for listings.
func (r *DraftRepo) ListByStatus(status string, limit, offset int) ([]*entity.Draft, error) {
	query := `SELECT ` + draftColumns + ` FROM drafts WHERE status = $1 ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Draft
	for rows.Next() {
		var d entity.Draft
		if err := rows.Scan(
			&d.ID, &d.SaleType, &d.Status, &d.CustomerID, &d.Currency,
			&d.Subtotal, &d.TaxAmount, &d.Discount, &d.Total,
			&d.PaymentMethod, &d.AmountPaid, &d.Notes, &d.CreatedBy,
			&d.SaleID, &d.InvoiceID, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
