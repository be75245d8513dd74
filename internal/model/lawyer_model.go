package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Lawyer struct {
	Id              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LicenseNo       string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Specialty       string    `gorm:"type:varchar(100);not null"`
	FirmName        string    `gorm:"type:varchar(255);not null"`
	Avatar          string    `gorm:"type:text"`
	LawyerCardImage string    `gorm:"type:text"`
	IsApproved      bool      `gorm:"not null;default:false"`
	IsCollaborator  bool      `gorm:"not null;default:false"`
	CommissionRate  float64   `gorm:"type:decimal(5,2);not null;default:0"`
	BankInfo        datatypes.JSON
	CreatedAt       time.Time
	UpdatedAt       time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (Lawyer) TableName() string {
	return "lawyers"
}
