package entity

import (
	"time"

	"github.com/google/uuid"
)

// BankInfo is the lawyer's payout destination.
type BankInfo struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// Lawyer is the provider profile attached to a user account. CommissionRate is
// the percentage the platform keeps when the lawyer is a revenue-share
// collaborator; zero for independent lawyers.
type Lawyer struct {
	Id              uuid.UUID
	UserID          uuid.UUID
	LicenseNo       string
	Specialty       string
	FirmName        string
	Avatar          string
	LawyerCardImage string
	IsApproved      bool
	IsCollaborator  bool
	CommissionRate  float64
	BankInfo        *BankInfo
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User *User
}
