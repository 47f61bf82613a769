package appointment

import (
	"context"

	"slotbook/models"
)

// Repository persists the full appointment collection as one unit. There is
// no per-record write: every mutation rewrites the whole set, which keeps the
// stored payload consistent with the validated in-memory snapshot.
type Repository interface {
	LoadAll(ctx context.Context) ([]models.Appointment, error)
	SaveAll(ctx context.Context, appts []models.Appointment) error
}
