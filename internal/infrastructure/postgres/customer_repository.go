package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implements CustomerRepository over PostgreSQL (pool or tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the adapter.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, phone, address, debt_iqd, debt_usd, current_balance,
	last_payment_date, days_overdue, created_at, updated_at`

// Create persists a new customer.
func (r *CustomerRepo) Create(c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Phone, c.Address,
		c.DebtIQD, c.DebtUSD, c.CurrentBalance,
		c.LastPaymentDate, c.DaysOverdue, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID returns the customer, or nil when absent.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.get(id, false)
}

// GetForUpdate locks the customer row; debt mutations always lock first.
func (r *CustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.get(id, true)
}

func (r *CustomerRepo) get(id string, forUpdate bool) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address,
		&c.DebtIQD, &c.DebtUSD, &c.CurrentBalance,
		&c.LastPaymentDate, &c.DaysOverdue, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// UpdateDebts persists only the debt fields. The customer ledger is the sole
// caller.
func (r *CustomerRepo) UpdateDebts(c *entity.Customer) error {
	query := `
		UPDATE customers SET debt_iqd = $2, debt_usd = $3, current_balance = $4,
			last_payment_date = $5, days_overdue = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.DebtIQD, c.DebtUSD, c.CurrentBalance,
		c.LastPaymentDate, c.DaysOverdue, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer debts: %w", err)
	}
	return nil
}

// Update persists the contact fields, never the debt fields.
func (r *CustomerRepo) Update(c *entity.Customer) error {
	query := `UPDATE customers SET name = $2, phone = $3, address = $4, updated_at = $5 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, c.ID, c.Name, c.Phone, c.Address, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// List pages all customers by name.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListDebtors pages customers owing in either currency, largest IQD debt
// first.
func (r *CustomerRepo) ListDebtors(limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers
		WHERE debt_iqd > 0 OR debt_usd > 0
		ORDER BY debt_iqd DESC, debt_usd DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

func (r *CustomerRepo) list(query string, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone, &c.Address,
			&c.DebtIQD, &c.DebtUSD, &c.CurrentBalance,
			&c.LastPaymentDate, &c.DaysOverdue, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
