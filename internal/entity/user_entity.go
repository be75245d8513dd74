package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleLawyer   UserRole = "lawyer"
	UserRoleAdmin    UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Email        string
	FullName     string
	Phone        string
	PasswordHash string
	Role         UserRole
	Otp          string
	IsVerified   bool
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
