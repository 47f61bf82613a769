package models

import "time"

// Interval is a half-open time range [Start, End). Touching endpoints do not
// overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval constructs an interval, rejecting anything that does not end
// strictly after it starts.
func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open ranges share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// Contains reports whether t falls inside the range.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// DurationMinutes returns the span length in whole minutes.
func (iv Interval) DurationMinutes() int {
	return int(iv.End.Sub(iv.Start) / time.Minute)
}
