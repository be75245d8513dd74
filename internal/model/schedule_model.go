package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Schedule struct {
	Id          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	LawyerID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	WorkingDays datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Schedule) TableName() string {
	return "schedules"
}
