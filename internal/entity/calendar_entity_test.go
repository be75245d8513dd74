package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-03-15", wantErr: false},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "wrong layout", input: "15-03-2026", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCalendarDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, CalendarDate(tt.input), got)
			assert.True(t, got.Valid())
		})
	}
}

func TestTimeSlotValid(t *testing.T) {
	tests := []struct {
		name string
		slot TimeSlot
		want bool
	}{
		{name: "ordered slot", slot: TimeSlot{Start: "09:00", End: "10:00"}, want: true},
		{name: "start equals end", slot: TimeSlot{Start: "09:00", End: "09:00"}, want: false},
		{name: "inverted slot", slot: TimeSlot{Start: "14:00", End: "13:00"}, want: false},
		{name: "malformed start", slot: TimeSlot{Start: "9am", End: "10:00"}, want: false},
		{name: "malformed end", slot: TimeSlot{Start: "09:00", End: "25:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.slot.Valid())
		})
	}
}

func TestCombine(t *testing.T) {
	got, err := Combine("2026-03-15", "14:30")
	assert.NoError(t, err)

	want := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	assert.True(t, got.Equal(want))

	_, err = Combine("2026-03-15", "bad")
	assert.Error(t, err)
}
