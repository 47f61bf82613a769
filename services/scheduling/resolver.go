package scheduling

import "slotbook/models"

// IntentKind declares what the caller is trying to do with a candidate
// interval. The overlap policy differs per intent, so the resolver takes it
// explicitly instead of guessing from the record types involved.
type IntentKind int

const (
	// IntentCreateAvailability opens a new bookable window. Any overlap, with
	// availability or meeting alike, blocks it.
	IntentCreateAvailability IntentKind = iota
	// IntentBookAvailability consumes a targeted open slot into a meeting.
	// Overlap with the target itself is expected; overlap with anything else
	// blocks.
	IntentBookAvailability
	// IntentEditExisting replaces the fields of a stored appointment. The
	// record being edited is excluded from the scan.
	IntentEditExisting
)

// Intent is the tagged variant handed to Resolve. TargetID carries the
// consumed slot id for IntentBookAvailability and the edited record id for
// IntentEditExisting.
type Intent struct {
	Kind     IntentKind
	TargetID string
}

func CreateAvailability() Intent {
	return Intent{Kind: IntentCreateAvailability}
}

func BookAvailability(targetID string) Intent {
	return Intent{Kind: IntentBookAvailability, TargetID: targetID}
}

func EditExisting(id string) Intent {
	return Intent{Kind: IntentEditExisting, TargetID: id}
}

// OutcomeKind is the resolver's three-way classification.
type OutcomeKind int

const (
	// Free means nothing overlaps; the write proceeds as a plain insert.
	Free OutcomeKind = iota
	// Consumable means the only overlap is the targeted availability; the
	// write proceeds as an atomic replace of ConflictID.
	Consumable
	// Blocked means the candidate collides with ConflictID and must be
	// rejected.
	Blocked
)

// Outcome is the resolver verdict. ConflictID names the consumed slot for
// Consumable and the collider for Blocked.
type Outcome struct {
	Kind       OutcomeKind
	ConflictID string
}

// Resolve classifies a candidate interval against the full stored set under
// the declared intent. It is pure: the caller applies the verdict.
func Resolve(candidate models.Interval, intent Intent, existing []models.Appointment) Outcome {
	consumed := ""

	for _, appt := range existing {
		if intent.Kind == IntentEditExisting && appt.ID == intent.TargetID {
			continue
		}
		if !candidate.Overlaps(appt.Interval()) {
			continue
		}
		if intent.Kind == IntentBookAvailability && appt.ID == intent.TargetID {
			if appt.Type != models.TypeAvailability {
				return Outcome{Kind: Blocked, ConflictID: appt.ID}
			}
			consumed = appt.ID
			continue
		}
		return Outcome{Kind: Blocked, ConflictID: appt.ID}
	}

	if consumed != "" {
		return Outcome{Kind: Consumable, ConflictID: consumed}
	}
	return Outcome{Kind: Free}
}
