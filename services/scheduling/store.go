package scheduling

import (
	"context"
	"sync"

	"slotbook/database/repository/appointment"
	"slotbook/models"

	"go.uber.org/zap"
)

// Store keeps the authoritative appointment set in memory and writes the full
// set through the repository after every successful mutation. Validation and
// persistence happen as one logical unit: a failed write rolls the snapshot
// back, so no partial state is ever observable.
type Store struct {
	repo   appointment.Repository
	logger *zap.Logger

	mu    sync.RWMutex
	appts map[string]models.Appointment
}

// NewStore loads the persisted collection and returns the ready store.
func NewStore(ctx context.Context, repo appointment.Repository, logger *zap.Logger) (*Store, error) {
	loaded, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	appts := make(map[string]models.Appointment, len(loaded))
	for _, a := range loaded {
		appts[a.ID] = a
	}
	logger.Info("schedule loaded", zap.Int("appointments", len(appts)))
	return &Store{repo: repo, logger: logger, appts: appts}, nil
}

// List returns a snapshot of all stored appointments. Order carries no
// meaning.
func (s *Store) List() []models.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		out = append(out, a)
	}
	return out
}

// Get returns the appointment with the given id.
func (s *Store) Get(id string) (models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appts[id]
	if !ok {
		return models.Appointment{}, models.ErrNotFound
	}
	return a, nil
}

// Upsert validates the appointment against the stored set under the declared
// intent and persists the resulting collection. A Consumable verdict removes
// the consumed record and inserts the new one in the same step.
func (s *Store) Upsert(ctx context.Context, appt models.Appointment, intent Intent) error {
	if _, err := models.NewInterval(appt.Start, appt.End); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// A book intent must name a record that is actually in the set; otherwise
	// the meeting would slip in without consuming anything.
	if intent.Kind == IntentBookAvailability {
		if _, ok := s.appts[intent.TargetID]; !ok {
			return models.ErrNotFound
		}
	}

	outcome := Resolve(appt.Interval(), intent, s.snapshotLocked())

	var consumed models.Appointment
	switch outcome.Kind {
	case Blocked:
		return &models.ConflictError{ConflictID: outcome.ConflictID}
	case Consumable:
		consumed = s.appts[outcome.ConflictID]
		delete(s.appts, outcome.ConflictID)
	}
	replaced, hadPrev := s.appts[appt.ID]
	s.appts[appt.ID] = appt

	if err := s.persistLocked(ctx); err != nil {
		// Roll back so validation and persistence stay one logical unit.
		if hadPrev {
			s.appts[appt.ID] = replaced
		} else {
			delete(s.appts, appt.ID)
		}
		if outcome.Kind == Consumable {
			s.appts[consumed.ID] = consumed
		}
		return err
	}
	return nil
}

// Remove deletes the appointment with the given id. Removing a missing id is
// a no-op at this layer; callers decide whether that warrants an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, ok := s.appts[id]
	if !ok {
		return nil
	}
	delete(s.appts, id)

	if err := s.persistLocked(ctx); err != nil {
		s.appts[id] = removed
		return err
	}
	return nil
}

func (s *Store) snapshotLocked() []models.Appointment {
	out := make([]models.Appointment, 0, len(s.appts))
	for _, a := range s.appts {
		out = append(out, a)
	}
	return out
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, s.snapshotLocked()); err != nil {
		s.logger.Error("failed to persist schedule", zap.Error(err))
		return err
	}
	return nil
}
