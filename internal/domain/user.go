// Package domain contains the core data types for the GlobeTrotter API.
// This package has zero external service dependencies and is imported by every
// other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. Email is the unique natural key and is always
// stored lowercase — signup and login normalize before any comparison.
// PasswordHash is a bcrypt hash and must never leave the service layer.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string // optional, "" when not provided
	City         string // optional, "" when not provided
	CreatedAt    time.Time
}

// PublicUser is the subset of User safe to return to clients.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name,omitempty"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	City        string    `json:"city,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Public strips the password hash and returns the client-safe view.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		City:        u.City,
		CreatedAt:   u.CreatedAt,
	}
}

// SignupInput carries the signup request fields. Name, PhoneNumber, and City
// are optional.
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	City        string
}
