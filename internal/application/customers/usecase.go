package customers

import (
	"time"

	"github.com/babilsoft/babil-erp/internal/application/dto"
	"github.com/babilsoft/babil-erp/internal/application/sales"
	"github.com/babilsoft/babil-erp/internal/domain"
	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/babilsoft/babil-erp/internal/domain/repository"
	"github.com/google/uuid"
)

// CustomerUseCase customer management and debt reads. Debt mutations go
// through the sales package; this use case never writes debt fields.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	balances repository.CustomerBalanceRepository
}

// NewCustomerUseCase builds the use case.
func NewCustomerUseCase(repo repository.CustomerRepository, balances repository.CustomerBalanceRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, balances: balances}
}

// Create registers a new customer with zero debt.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(customer), nil
}

// Update changes the customer's contact fields. Debt fields are untouched;
// only the sales ledger writes those.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Phone = in.Phone
	c.Address = in.Address
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return dto.ToCustomerResponse(c), nil
}

// Get returns one customer with daysOverdue recomputed for display.
func (uc *CustomerUseCase) Get(id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.DaysOverdue = sales.RecomputeDaysOverdue(c, time.Now())
	return dto.ToCustomerResponse(c), nil
}

// List pages all customers.
func (uc *CustomerUseCase) List(limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	cs, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(cs), nil
}

// ListDebtors pages customers with outstanding debt in either currency.
func (uc *CustomerUseCase) ListDebtors(limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	cs, err := uc.repo.ListDebtors(limit, offset)
	if err != nil {
		return nil, err
	}
	return uc.toResponses(cs), nil
}

// Balances pages the customer's append-only ledger, newest first.
func (uc *CustomerUseCase) Balances(customerID string, limit, offset int) ([]dto.CustomerBalanceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	c, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.balances.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerBalanceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ToCustomerBalanceResponse(r))
	}
	return out, nil
}

func (uc *CustomerUseCase) toResponses(cs []*entity.Customer) []*dto.CustomerResponse {
	now := time.Now()
	out := make([]*dto.CustomerResponse, 0, len(cs))
	for _, c := range cs {
		c.DaysOverdue = sales.RecomputeDaysOverdue(c, now)
		out = append(out, dto.ToCustomerResponse(c))
	}
	return out
}

