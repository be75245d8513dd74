package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotCancelled keeps only bookings still holding their slot. Cancelled rows
// release both uniqueness invariants.
type NotCancelled struct{}

func (s NotCancelled) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "Cancelled")
}

// BySlot matches the full slot tuple of one lawyer on one day.
type BySlot struct {
	LawyerID  uuid.UUID
	Date      string
	SlotStart string
	SlotEnd   string
}

func (s BySlot) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lawyer_id = ? AND date = ? AND slot_start = ? AND slot_end = ?",
		s.LawyerID, s.Date, s.SlotStart, s.SlotEnd)
}

// ByUserLawyerDay matches a user's booking with one lawyer on one day,
// backing the one-per-day pre-check.
type ByUserLawyerDay struct {
	UserID   uuid.UUID
	LawyerID uuid.UUID
	Date     string
}

func (s ByUserLawyerDay) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ? AND lawyer_id = ? AND date = ?", s.UserID, s.LawyerID, s.Date)
}

// LawyerOwnedBy filters rows belonging to a lawyer profile
type LawyerOwnedBy struct {
	LawyerID uuid.UUID
}

func (s LawyerOwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("lawyer_id = ?", s.LawyerID)
}

// DueForReminder selects confirmed bookings that have not been nudged yet.
type DueForReminder struct{}

func (s DueForReminder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ? AND reminder_sent = ?", "Confirmed", false)
}
