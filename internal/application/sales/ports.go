package sales

import (
	"context"

	"github.com/babilsoft/babil-erp/internal/domain/repository"
)

// TxRepos bundles the repositories bound to one database transaction. Every
// multi-step mutation (finalize, reconcile, record payment) receives this
// bundle so all of its writes commit or roll back together.
type TxRepos struct {
	Drafts      repository.DraftRepository
	Sales       repository.SaleRepository
	Invoices    repository.InvoiceRepository
	Customers   repository.CustomerRepository
	Balances    repository.CustomerBalanceRepository
	Products    repository.ProductRepository
	Motorcycles repository.MotorcycleRepository
	Movements   repository.StockMovementRepository
}

// TxRunner executes fn inside one transaction with repos bound to it.
// If fn returns an error the transaction is rolled back with no partial
// effect; otherwise it is committed.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
