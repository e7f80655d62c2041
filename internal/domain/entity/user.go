package entity

import "time"

// User roles.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User is an operator of the system; its id is stamped on drafts, movements
// and balance rows as CreatedBy.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
