package domain

import "time"

// UserRole separates subscribers from support operators.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleOperator UserRole = "OPERATOR"
)

// UserStatus represents lifecycle states for an account.
type UserStatus string

const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// User is a subscriber or support operator identified by phone number.
type User struct {
	ID           string
	Name         string
	Phone        string
	PasswordHash string
	Role         UserRole
	Status       UserStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
