package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleStaff   UserRole = "STAFF"
	UserRoleBoarder UserRole = "BOARDER"
)

func (r UserRole) Valid() bool {
	switch r {
	case UserRoleAdmin, UserRoleStaff, UserRoleBoarder:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }
func (r UserRole) IsStaff() bool { return r == UserRoleStaff }

// User is a staff account. Boarders authenticate with access codes and do
// not get a User row.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(email, name, passwordHash string, role UserRole) *User {
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
