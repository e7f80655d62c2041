package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babilsoft/babil-erp/internal/application/sales"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction, handing the
// callback a repo bundle bound to the tx. Rollback on error, commit on nil.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction and runs fn with tx-bound repositories.
func (r *TxRunner) Run(ctx context.Context, fn func(repos sales.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := sales.TxRepos{
		Drafts:      NewDraftRepository(tx),
		Sales:       NewSaleRepository(tx),
		Invoices:    NewInvoiceRepository(tx),
		Customers:   NewCustomerRepository(tx),
		Balances:    NewCustomerBalanceRepository(tx),
		Products:    NewProductRepository(tx),
		Motorcycles: NewMotorcycleRepository(tx),
		Movements:   NewStockMovementRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
