package repository

import "learnlog-backend/internal/identity/domain"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindByEmail returns the user with the given email, nil if none exists
	FindByEmail(email string) (*domain.User, error)

	// Create inserts a new user row
	Create(user *domain.User) error
}
