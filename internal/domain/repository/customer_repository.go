package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// CustomerRepository is the persistence port for customers.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate locks the customer row; debt mutations always lock first.
	GetForUpdate(id string) (*entity.Customer, error)
	// UpdateDebts persists the debt fields, currentBalance, lastPaymentDate
	// and daysOverdue. Only the customer ledger calls this.
	UpdateDebts(customer *entity.Customer) error
	Update(customer *entity.Customer) error
	List(limit, offset int) ([]*entity.Customer, error)
	// ListDebtors returns customers with outstanding debt in either currency.
	ListDebtors(limit, offset int) ([]*entity.Customer, error)
}
