package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

var _ repository.MotorcycleRepository = (*MotorcycleRepo)(nil)

// MotorcycleRepo implements MotorcycleRepository over PostgreSQL (pool or tx).
type MotorcycleRepo struct {
	q Querier
}

// NewMotorcycleRepository builds the adapter.
func NewMotorcycleRepository(q Querier) *MotorcycleRepo {
	return &MotorcycleRepo{q: q}
}

const motorcycleColumns = `id, brand, model, year, color, chassis_number, price, stock_quantity, created_at, updated_at`

// Create persists a new motorcycle. Chassis numbers are unique.
func (r *MotorcycleRepo) Create(m *entity.Motorcycle) error {
	query := `
		INSERT INTO motorcycles (` + motorcycleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Brand, m.Model, m.Year, m.Color, m.ChassisNumber,
		m.Price, m.StockQuantity, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert motorcycle: %w", err)
	}
	return nil
}

// GetByID returns the motorcycle, or nil when absent.
func (r *MotorcycleRepo) GetByID(id string) (*entity.Motorcycle, error) {
	return r.get(id, false)
}

// GetForUpdate locks the motorcycle row before a stock change.
func (r *MotorcycleRepo) GetForUpdate(id string) (*entity.Motorcycle, error) {
	return r.get(id, true)
}

func (r *MotorcycleRepo) get(id string, forUpdate bool) (*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var m entity.Motorcycle
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Brand, &m.Model, &m.Year, &m.Color, &m.ChassisNumber,
		&m.Price, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get motorcycle: %w", err)
	}
	return &m, nil
}

// UpdateStockQuantity sets the absolute stock balance. No audit row is
// written for motorcycles.
func (r *MotorcycleRepo) UpdateStockQuantity(id string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE motorcycles SET stock_quantity = $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("update motorcycle stock: %w", err)
	}
	return nil
}

// Update persists the catalog fields, never the stock balance.
func (r *MotorcycleRepo) Update(m *entity.Motorcycle) error {
	query := `
		UPDATE motorcycles SET brand = $2, model = $3, year = $4, color = $5, chassis_number = $6, price = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Brand, m.Model, m.Year, m.Color, m.ChassisNumber, m.Price, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update motorcycle: %w", err)
	}
	return nil
}

// List pages the motorcycle catalog.
func (r *MotorcycleRepo) List(limit, offset int) ([]*entity.Motorcycle, error) {
	query := `SELECT ` + motorcycleColumns + ` FROM motorcycles ORDER BY brand, model LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list motorcycles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Motorcycle
	for rows.Next() {
		var m entity.Motorcycle
		if err := rows.Scan(
			&m.ID, &m.Brand, &m.Model, &m.Year, &m.Color, &m.ChassisNumber,
			&m.Price, &m.StockQuantity, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan motorcycle: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
