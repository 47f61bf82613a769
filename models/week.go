package models

// CellState is the effective state of one calendar cell as seen by a caller.
type CellState string

const (
	// CellEmpty has no appointment starting or running through it.
	CellEmpty CellState = "empty"
	// CellAvailable has an availability record starting here.
	CellAvailable CellState = "available"
	// CellBooked has a meeting record starting here.
	CellBooked CellState = "booked"
	// CellCovered sits inside the span of an appointment that starts in an
	// earlier cell. It is not independently actionable.
	CellCovered CellState = "covered"
)

// Cell is one addressable unit of the weekly grid.
type Cell struct {
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:mm
	State         CellState `json:"state"`
	AppointmentID string    `json:"appointmentId,omitempty"`
}

// WeekView is the grid for one week plus the appointments falling inside it.
type WeekView struct {
	WeekStart    string        `json:"weekStart"`
	Cells        []Cell        `json:"cells"`
	Appointments []Appointment `json:"appointments"`
}
