package repository

import "github.com/babilsoft/babil-erp/internal/domain/entity"

// UserRepository is the persistence port for users (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
