package entity

import (
	"time"

	"github.com/google/uuid"
)

// WorkingDay is one weekday's availability in a lawyer's weekly schedule.
type WorkingDay struct {
	Day   string     `json:"day"`
	Slots []TimeSlot `json:"slots"`
}

type Schedule struct {
	Id          uuid.UUID
	LawyerID    uuid.UUID
	WorkingDays []WorkingDay
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
