package entity

import (
	"fmt"
	"time"
)

// CalendarDate is a wall-clock day in "YYYY-MM-DD" form. Bookings are keyed
// by the day as the customer picked it, independent of server timezone.
type CalendarDate string

const calendarDateLayout = "2006-01-02"

func ParseCalendarDate(s string) (CalendarDate, error) {
	if _, err := time.Parse(calendarDateLayout, s); err != nil {
		return "", fmt.Errorf("invalid date %q: %w", s, err)
	}
	return CalendarDate(s), nil
}

func (d CalendarDate) Valid() bool {
	_, err := time.Parse(calendarDateLayout, string(d))
	return err == nil
}

// ClockTime is a wall-clock time of day in "HH:MM" form.
type ClockTime string

const clockTimeLayout = "15:04"

func ParseClockTime(s string) (ClockTime, error) {
	if _, err := time.Parse(clockTimeLayout, s); err != nil {
		return "", fmt.Errorf("invalid time %q: %w", s, err)
	}
	return ClockTime(s), nil
}

func (t ClockTime) Valid() bool {
	_, err := time.Parse(clockTimeLayout, string(t))
	return err == nil
}

// Combine joins a calendar day and a clock time into an instant in the
// server's local timezone.
func Combine(d CalendarDate, t ClockTime) (time.Time, error) {
	return time.ParseInLocation(calendarDateLayout+" "+clockTimeLayout,
		string(d)+" "+string(t), time.Local)
}

// TimeSlot is a half-open appointment window within one day.
type TimeSlot struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Valid reports whether both bounds parse and start precedes end.
func (s TimeSlot) Valid() bool {
	start, err := time.Parse(clockTimeLayout, string(s.Start))
	if err != nil {
		return false
	}
	end, err := time.Parse(clockTimeLayout, string(s.End))
	if err != nil {
		return false
	}
	return start.Before(end)
}
