package scheduling

import (
	"context"
	"errors"
	"testing"

	"slotbook/models"

	"go.uber.org/zap"
)

// memRepo is an in-memory Repository for tests. failSave simulates the
// external store rejecting a write.
type memRepo struct {
	initial  []models.Appointment
	saved    []models.Appointment
	saves    int
	failSave bool
}

func (m *memRepo) LoadAll(ctx context.Context) ([]models.Appointment, error) {
	return m.initial, nil
}

func (m *memRepo) SaveAll(ctx context.Context, appts []models.Appointment) error {
	if m.failSave {
		return errors.New("persist failed")
	}
	m.saves++
	m.saved = appts
	return nil
}

func newTestStore(t *testing.T, repo *memRepo) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), repo, zap.NewNop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreUpsertFree(t *testing.T) {
	repo := &memRepo{}
	store := newTestStore(t, repo)

	a := appt("avail-1", models.TypeAvailability, tue(10, 0), tue(10, 30))
	if err := store.Upsert(context.Background(), a, CreateAvailability()); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if len(store.List()) != 1 {
		t.Fatalf("stored %d, want 1", len(store.List()))
	}
	if repo.saves != 1 || len(repo.saved) != 1 {
		t.Errorf("persisted %d records in %d saves, want 1 in 1", len(repo.saved), repo.saves)
	}
}

func TestStoreUpsertBlockedLeavesStateUntouched(t *testing.T) {
	repo := &memRepo{initial: []models.Appointment{
		appt("avail-1", models.TypeAvailability, tue(10, 0), tue(10, 30)),
	}}
	store := newTestStore(t, repo)

	candidate := appt("avail-2", models.TypeAvailability, tue(10, 15), tue(10, 45))
	err := store.Upsert(context.Background(), candidate, CreateAvailability())

	var conflict *models.ConflictError
	if !errors.As(err, &conflict) || conflict.ConflictID != "avail-1" {
		t.Fatalf("want ConflictError naming avail-1, got %v", err)
	}
	if len(store.List()) != 1 {
		t.Errorf("stored %d, want 1 (no mutation on rejection)", len(store.List()))
	}
	if repo.saves != 0 {
		t.Errorf("rejected write persisted %d times, want 0", repo.saves)
	}
}

func TestStoreUpsertInvalidRange(t *testing.T) {
	store := newTestStore(t, &memRepo{})
	bad := appt("x", models.TypeAvailability, tue(10, 30), tue(10, 0))
	if err := store.Upsert(context.Background(), bad, CreateAvailability()); !errors.Is(err, models.ErrInvalidRange) {
		t.Fatalf("want ErrInvalidRange, got %v", err)
	}
}

func TestStoreConsumableReplacesAtomically(t *testing.T) {
	repo := &memRepo{initial: []models.Appointment{
		appt("avail-1", models.TypeAvailability, tue(10, 0), tue(10, 30)),
	}}
	store := newTestStore(t, repo)

	meeting := appt("meet-1", models.TypeMeeting, tue(10, 0), tue(10, 45))
	if err := store.Upsert(context.Background(), meeting, BookAvailability("avail-1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	all := store.List()
	if len(all) != 1 {
		t.Fatalf("stored %d, want exactly 1 (replace, not add)", len(all))
	}
	if all[0].ID != "meet-1" || all[0].Type != models.TypeMeeting {
		t.Errorf("surviving record = %+v, want the meeting", all[0])
	}
	if _, err := store.Get("avail-1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("consumed availability still retrievable: %v", err)
	}
	if len(repo.saved) != 1 || repo.saved[0].ID != "meet-1" {
		t.Errorf("persisted set = %+v, want only meet-1", repo.saved)
	}
}

func TestStoreBookUnknownTargetRejected(t *testing.T) {
	repo := &memRepo{}
	store := newTestStore(t, repo)

	meeting := appt("meet-1", models.TypeMeeting, tue(10, 0), tue(10, 30))
	err := store.Upsert(context.Background(), meeting, BookAvailability("never-existed"))
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if len(store.List()) != 0 {
		t.Errorf("stored %d, want 0 (no meeting without a consumed slot)", len(store.List()))
	}
	if repo.saves != 0 {
		t.Errorf("rejected write persisted %d times, want 0", repo.saves)
	}
}

func TestStorePersistFailureRollsBack(t *testing.T) {
	repo := &memRepo{initial: []models.Appointment{
		appt("avail-1", models.TypeAvailability, tue(10, 0), tue(10, 30)),
	}}
	store := newTestStore(t, repo)
	repo.failSave = true

	meeting := appt("meet-1", models.TypeMeeting, tue(10, 0), tue(10, 30))
	if err := store.Upsert(context.Background(), meeting, BookAvailability("avail-1")); err == nil {
		t.Fatal("want persist error")
	}

	// The consumed availability must be back and the meeting gone.
	if _, err := store.Get("avail-1"); err != nil {
		t.Errorf("availability lost after failed persist: %v", err)
	}
	if _, err := store.Get("meet-1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("meeting survived failed persist: %v", err)
	}

	if err := store.Remove(context.Background(), "avail-1"); err == nil {
		t.Fatal("want persist error on remove")
	}
	if _, err := store.Get("avail-1"); err != nil {
		t.Errorf("record lost after failed remove persist: %v", err)
	}
}

func TestStoreRemoveIdempotent(t *testing.T) {
	repo := &memRepo{initial: []models.Appointment{
		appt("avail-1", models.TypeAvailability, tue(10, 0), tue(10, 30)),
	}}
	store := newTestStore(t, repo)

	if err := store.Remove(context.Background(), "avail-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := store.Remove(context.Background(), "avail-1"); err != nil {
		t.Fatalf("second Remove should be a no-op, got %v", err)
	}
	if err := store.Remove(context.Background(), "never-existed"); err != nil {
		t.Fatalf("Remove of unknown id should be a no-op, got %v", err)
	}
	if len(store.List()) != 0 {
		t.Errorf("stored %d, want 0", len(store.List()))
	}
}
