package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implements the stock audit trail over PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository builds the adapter.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, invoice_id, type, quantity, balance_after, notes, created_by, created_at`

// Create appends one audit row.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductID, m.InvoiceID, m.Type,
		m.Quantity, m.BalanceAfter, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// DeleteByInvoiceID drops the invoice's audit rows before reconciliation
// rewrites them.
func (r *StockMovementRepo) DeleteByInvoiceID(invoiceID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_movements WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return fmt.Errorf("delete stock movements: %w", err)
	}
	return nil
}

// ListByInvoice returns the invoice's audit rows.
func (r *StockMovementRepo) ListByInvoice(invoiceID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE invoice_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list movements by invoice: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByProduct pages a product's audit trail, newest first.
func (r *StockMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.InvoiceID, &m.Type,
			&m.Quantity, &m.BalanceAfter, &m.Notes, &m.CreatedBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
