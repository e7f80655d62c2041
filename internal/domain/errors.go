package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain errors (no external dependencies).
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict with current state")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrOverpayment        = errors.New("payment exceeds outstanding debt")
)

// InsufficientStockError names the catalog item that blocked a stock apply.
// Wraps ErrInsufficientStock so callers can match with errors.Is.
type InsufficientStockError struct {
	Kind      string // "product" | "motorcycle"
	ItemID    string
	Name      string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s %s (%s): available %s, requested %s",
		e.Kind, e.ItemID, e.Name, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// OverpaymentError is returned when a payment exceeds the customer's
// outstanding debt in one currency. Rejected before any ledger write.
type OverpaymentError struct {
	Currency    string // "IQD" | "USD"
	Outstanding decimal.Decimal
	Requested   decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment %s %s exceeds outstanding debt %s %s",
		e.Requested, e.Currency, e.Outstanding, e.Currency)
}

func (e *OverpaymentError) Unwrap() error { return ErrOverpayment }

// ValidationError carries every violated rule, not just the first one.
// The UI shows all of them at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
