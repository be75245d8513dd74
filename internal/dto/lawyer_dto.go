package dto

import (
	"time"

	"github.com/google/uuid"
)

type BankInfoDTO struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
}

type RegisterLawyerRequest struct {
	LicenseNo       string       `json:"license_no" validate:"required"`
	Specialty       string       `json:"specialty" validate:"required"`
	FirmName        string       `json:"firm_name"`
	Avatar          string       `json:"avatar"`
	LawyerCardImage string       `json:"lawyer_card_image" validate:"required"`
	IsCollaborator  bool         `json:"is_collaborator"`
	BankInfo        *BankInfoDTO `json:"bank_info"`
}

type ApproveLawyerRequest struct {
	LawyerID uuid.UUID `json:"lawyer_id" validate:"required"`
	Approved bool      `json:"approved"`
}

type LawyerProfileDTO struct {
	Id             uuid.UUID    `json:"id"`
	UserID         uuid.UUID    `json:"user_id"`
	FullName       string       `json:"full_name"`
	LicenseNo      string       `json:"license_no"`
	Specialty      string       `json:"specialty"`
	FirmName       string       `json:"firm_name"`
	Avatar         string       `json:"avatar"`
	IsApproved     bool         `json:"is_approved"`
	IsCollaborator bool         `json:"is_collaborator"`
	CommissionRate float64      `json:"commission_rate"`
	BankInfo       *BankInfoDTO `json:"bank_info,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

type TimeSlotDTO struct {
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type WorkingDayDTO struct {
	Day   string        `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	Slots []TimeSlotDTO `json:"slots" validate:"required,dive"`
}

type UpsertScheduleRequest struct {
	WorkingDays []WorkingDayDTO `json:"working_days" validate:"required,dive"`
}

type ScheduleResponse struct {
	Id          uuid.UUID       `json:"id"`
	LawyerID    uuid.UUID       `json:"lawyer_id"`
	WorkingDays []WorkingDayDTO `json:"working_days"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
