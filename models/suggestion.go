package models

import "time"

// SlotGuess is the oracle's best-effort reading of free text. Any field may
// be absent; callers must treat the whole struct as untrusted input.
type SlotGuess struct {
	Date            string `json:"date,omitempty"`      // YYYY-MM-DD
	StartTime       string `json:"startTime,omitempty"` // HH:mm, 24-hour
	DurationMinutes int    `json:"durationMinutes,omitempty"`
	Title           string `json:"title,omitempty"`
}

// SuggestionResult is a bookable candidate distilled from a guess. TargetID
// names the open slot a colleague booking would consume; it is empty for the
// owner, whose candidate opens new availability instead.
type SuggestionResult struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Title    string    `json:"title,omitempty"`
	TargetID string    `json:"targetId,omitempty"`
}
