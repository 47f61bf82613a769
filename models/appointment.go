package models

import "time"

// AppointmentType classifies an appointment record.
type AppointmentType string

const (
	// TypeAvailability is an open, bookable window published by the owner.
	TypeAvailability AppointmentType = "availability"
	// TypeMeeting is a filled slot that consumes time.
	TypeMeeting AppointmentType = "meeting"
)

// Role identifies who is acting on the schedule.
type Role string

const (
	RoleOwner     Role = "owner"
	RoleColleague Role = "colleague"
)

const (
	// DateLayout addresses a calendar day.
	DateLayout = "2006-01-02"
	// ClockLayout addresses a cell start within a day, 24-hour clock.
	ClockLayout = "15:04"
)

// Appointment is the sole persistent entity. Start and End marshal as
// RFC3339 so the stored payload round-trips exactly.
type Appointment struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Start         time.Time       `json:"start"`
	End           time.Time       `json:"end"`
	RequesterName string          `json:"requesterName"`
	Type          AppointmentType `json:"type"`
}

// Interval returns the appointment's time range.
func (a Appointment) Interval() Interval {
	return Interval{Start: a.Start, End: a.End}
}

// StartsAt reports whether the appointment begins exactly at the given
// calendar cell.
func (a Appointment) StartsAt(date, clock string) bool {
	return a.Start.Format(DateLayout) == date && a.Start.Format(ClockLayout) == clock
}
