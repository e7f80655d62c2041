package dto

import (
	"time"

	"github.com/babilsoft/babil-erp/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body for POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// UpdateCustomerRequest body for PUT /api/customers/:id. Contact fields only;
// debt fields are never writable through this endpoint.
type UpdateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse a customer with both debt balances.
type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	Address         string          `json:"address,omitempty"`
	DebtIQD         decimal.Decimal `json:"debt_iqd"`
	DebtUSD         decimal.Decimal `json:"debt_usd"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
	DaysOverdue     int             `json:"days_overdue"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToCustomerResponse maps the entity.
func ToCustomerResponse(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID: c.ID, Name: c.Name, Phone: c.Phone, Address: c.Address,
		DebtIQD: c.DebtIQD, DebtUSD: c.DebtUSD, CurrentBalance: c.CurrentBalance,
		LastPaymentDate: c.LastPaymentDate, DaysOverdue: c.DaysOverdue,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
}

// CustomerBalanceResponse one append-only ledger row. Positive amounts are
// charges, negative amounts are payments.
type CustomerBalanceResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	InvoiceID   *string         `json:"invoice_id,omitempty"`
	AmountIQD   decimal.Decimal `json:"amount_iqd"`
	AmountUSD   decimal.Decimal `json:"amount_usd"`
	Method      string          `json:"method,omitempty"`
	Description string          `json:"description,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToCustomerBalanceResponse maps the entity.
func ToCustomerBalanceResponse(b *entity.CustomerBalance) CustomerBalanceResponse {
	return CustomerBalanceResponse{
		ID: b.ID, CustomerID: b.CustomerID, InvoiceID: b.InvoiceID,
		AmountIQD: b.AmountIQD, AmountUSD: b.AmountUSD,
		Method: b.Method, Description: b.Description,
		CreatedBy: b.CreatedBy, CreatedAt: b.CreatedAt,
	}
}
