package intelligence

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"slotbook/models"
	"slotbook/services/scheduling"

	"go.uber.org/zap"
)

// ErrSuperseded marks an oracle reply that arrived after a newer request was
// issued. Last request wins; the stale result is dropped, not surfaced.
var ErrSuperseded = errors.New("superseded by a newer suggestion request")

// Oracle turns free text into a structured slot guess. Implementations are
// external and best-effort: the guess is untrusted and any field may be
// missing.
type Oracle interface {
	Propose(ctx context.Context, freeText string, now time.Time) (*models.SlotGuess, error)
}

// SuggestionService maps free text onto a bookable candidate for the acting
// role.
type SuggestionService interface {
	Enabled() bool
	Suggest(ctx context.Context, role models.Role, freeText string) (*models.SuggestionResult, error)
}

// DefaultSuggestionService adapts oracle guesses into booking candidates. A
// nil Oracle is the explicit disabled state (no credential configured), which
// is distinct from a configured oracle whose call fails.
type DefaultSuggestionService struct {
	Oracle   Oracle
	Schedule scheduling.ScheduleService
	Logger   *zap.Logger
	Timeout  time.Duration
	Now      func() time.Time

	seq atomic.Uint64
}

func NewSuggestionService(oracle Oracle, schedule scheduling.ScheduleService, timeout time.Duration, logger *zap.Logger) *DefaultSuggestionService {
	return &DefaultSuggestionService{
		Oracle:   oracle,
		Schedule: schedule,
		Logger:   logger,
		Timeout:  timeout,
		Now:      time.Now,
	}
}

// Enabled reports whether a suggestion credential is configured.
func (s *DefaultSuggestionService) Enabled() bool {
	return s.Oracle != nil
}

// Suggest submits free text to the oracle and distills the guess into a
// candidate. For a colleague the candidate must land exactly on an existing
// open slot; a colleague cannot manifest availability out of a suggestion.
// Suggest never mutates the schedule.
func (s *DefaultSuggestionService) Suggest(ctx context.Context, role models.Role, freeText string) (*models.SuggestionResult, error) {
	if s.Oracle == nil {
		s.Logger.Debug("suggestion requested while disabled")
		return nil, models.ErrOracleUnavailable
	}

	seq := s.seq.Add(1)

	callCtx := ctx
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	guess, err := s.Oracle.Propose(callCtx, freeText, s.Now())
	if seq != s.seq.Load() {
		return nil, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, models.ErrOracleUnparseable) {
			return nil, err
		}
		s.Logger.Warn("oracle call failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrOracleUnavailable, err)
	}

	if guess == nil || guess.Date == "" || guess.StartTime == "" {
		return nil, models.ErrOracleUnparseable
	}
	start, err := time.ParseInLocation(
		models.DateLayout+" "+models.ClockLayout,
		guess.Date+" "+guess.StartTime,
		time.Local,
	)
	if err != nil {
		return nil, models.ErrOracleUnparseable
	}

	duration := guess.DurationMinutes
	if duration <= 0 {
		duration = 30
	}
	result := &models.SuggestionResult{
		Start: start,
		End:   start.Add(time.Duration(duration) * time.Minute),
		Title: guess.Title,
	}

	if role == models.RoleColleague {
		slot, ok := s.Schedule.FindOpenSlot(guess.Date, guess.StartTime)
		if !ok {
			return nil, models.ErrNoMatchingSlot
		}
		result.TargetID = slot.ID
	}

	s.Logger.Info("suggestion produced",
		zap.String("role", string(role)), zap.Time("start", result.Start),
		zap.Int("durationMinutes", duration), zap.String("targetId", result.TargetID))
	return result, nil
}
