package entity

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBookingID(t *testing.T) {
	hex24 := regexp.MustCompile(`^[0-9a-f]{24}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := NewBookingID()
		assert.Regexp(t, hex24, id)
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestBookingTerminal(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingStatusPending, false},
		{BookingStatusConfirmed, false},
		{BookingStatusCancelled, true},
		{BookingStatusCompleted, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			b := &Booking{Status: tt.status}
			assert.Equal(t, tt.want, b.Terminal())
		})
	}
}

func TestAppointmentBounds(t *testing.T) {
	b := &Booking{
		Date:     "2026-03-15",
		TimeSlot: TimeSlot{Start: "09:00", End: "10:00"},
	}

	start, err := b.AppointmentStart()
	assert.NoError(t, err)
	end, err := b.AppointmentEnd()
	assert.NoError(t, err)
	assert.True(t, start.Before(end))

	broken := &Booking{Date: "not-a-date", TimeSlot: TimeSlot{Start: "09:00", End: "10:00"}}
	_, err = broken.AppointmentStart()
	assert.Error(t, err)
}
