package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implements SaleRepository over PostgreSQL (pool or tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository builds the adapter.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, type, customer_id, status, currency, subtotal, tax_amount, discount, total,
	payment_method, amount_paid, amount_due, notes, created_by, created_at, updated_at`

// Create persists a new sale header.
func (r *SaleRepo) Create(s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Type, s.CustomerID, s.Status, s.Currency,
		s.Subtotal, s.TaxAmount, s.Discount, s.Total,
		s.PaymentMethod, s.AmountPaid, s.AmountDue, s.Notes,
		s.CreatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// Update persists the sale header (reconciliation propagates totals here).
func (r *SaleRepo) Update(s *entity.Sale) error {
	query := `
		UPDATE sales SET customer_id = $2, status = $3, currency = $4, subtotal = $5, tax_amount = $6,
			discount = $7, total = $8, payment_method = $9, amount_paid = $10, amount_due = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.CustomerID, s.Status, s.Currency, s.Subtotal, s.TaxAmount,
		s.Discount, s.Total, s.PaymentMethod, s.AmountPaid, s.AmountDue,
		s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// ReplaceItems rewrites the sale's items wholesale.
func (r *SaleRepo) ReplaceItems(saleID string, items []*entity.SaleItem) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, saleID); err != nil {
		return fmt.Errorf("delete sale items: %w", err)
	}
	query := `
		INSERT INTO sale_items (id, sale_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, it := range items {
		_, err := r.q.Exec(ctx, query,
			it.ID, saleID, it.Kind, it.ItemID, it.Name,
			it.Quantity, it.UnitPrice, it.DiscountPct, it.TaxRatePct,
			it.LineTotal, it.SortOrder,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID returns the sale header, or nil when absent.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Type, &s.CustomerID, &s.Status, &s.Currency,
		&s.Subtotal, &s.TaxAmount, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.AmountPaid, &s.AmountDue, &s.Notes,
		&s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID returns the sale's items in order.
func (r *SaleRepo) GetItemsBySaleID(saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, kind, item_id, name, quantity, unit_price, discount_pct, tax_rate_pct, line_total, sort_order
		FROM sale_items WHERE sale_id = $1 ORDER BY sort_order`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.Kind, &it.ItemID, &it.Name,
			&it.Quantity, &it.UnitPrice, &it.DiscountPct, &it.TaxRatePct,
			&it.LineTotal, &it.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}
