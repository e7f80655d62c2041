package postgres

import (
	"context"
	"fmt"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.CustomerBalanceRepository = (*CustomerBalanceRepo)(nil)

// CustomerBalanceRepo implements the append-only debt ledger over PostgreSQL.
// There is deliberately no update or delete.
type CustomerBalanceRepo struct {
	q Querier
}

// NewCustomerBalanceRepository builds the adapter.
func NewCustomerBalanceRepository(q Querier) *CustomerBalanceRepo {
	return &CustomerBalanceRepo{q: q}
}

// Create appends one ledger row.
func (r *CustomerBalanceRepo) Create(row *entity.CustomerBalance) error {
	query := `
		INSERT INTO customer_balances (id, customer_id, invoice_id, amount_iqd, amount_usd, method, description, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		row.ID, row.CustomerID, row.InvoiceID,
		row.AmountIQD, row.AmountUSD, row.Method, row.Description,
		row.CreatedBy, row.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer balance: %w", err)
	}
	return nil
}

// ListByCustomer pages a customer's ledger rows, newest first.
func (r *CustomerBalanceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerBalance, error) {
	query := `
		SELECT id, customer_id, invoice_id, amount_iqd, amount_usd, method, description, created_by, created_at
		FROM customer_balances WHERE customer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customer balances: %w", err)
	}
	defer rows.Close()

	var out []*entity.CustomerBalance
	for rows.Next() {
		var b entity.CustomerBalance
		if err := rows.Scan(
			&b.ID, &b.CustomerID, &b.InvoiceID,
			&b.AmountIQD, &b.AmountUSD, &b.Method, &b.Description,
			&b.CreatedBy, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer balance: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
