package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// CustomerBalanceRepository is the persistence port for the append-only
// customer debt ledger.
type CustomerBalanceRepository interface {
	Create(row *entity.CustomerBalance) error
	ListByCustomer(customerID string, limit, offset int) ([]*entity.CustomerBalance, error)
}
