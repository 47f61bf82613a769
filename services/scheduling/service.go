package scheduling

import (
	"context"
	"sort"
	"time"

	"slotbook/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Weekly grid geometry: 30-minute cells over a 08:00-18:00 working day.
const (
	CellMinutes  = 30
	DayStartHour = 8
	DayEndHour   = 18
)

// SlotRequest carries the caller-supplied fields for opening, booking, or
// editing a slot. A zero Start means "keep the slot's own start" where one
// exists; a zero DurationMinutes falls back to the default cell length or,
// when booking, the published slot's own length.
type SlotRequest struct {
	Start           time.Time
	DurationMinutes int
	Title           string
	RequesterName   string
	Type            models.AppointmentType
}

// ScheduleService is the booking workflow: role-gated state transitions over
// the appointment store.
type ScheduleService interface {
	WeekCells(weekStart time.Time) models.WeekView
	FindOpenSlot(date, clock string) (models.Appointment, bool)
	OpenSlot(ctx context.Context, role models.Role, req SlotRequest) (*models.Appointment, error)
	BookSlot(ctx context.Context, role models.Role, targetID string, req SlotRequest) (*models.Appointment, error)
	EditSlot(ctx context.Context, role models.Role, id string, req SlotRequest) (*models.Appointment, error)
	DeleteSlot(ctx context.Context, role models.Role, id string) error
}

// DefaultScheduleService implements ScheduleService over a Store. Now is
// injectable for past-slot checks.
type DefaultScheduleService struct {
	Store  *Store
	Logger *zap.Logger
	Now    func() time.Time
}

func NewScheduleService(store *Store, logger *zap.Logger) *DefaultScheduleService {
	return &DefaultScheduleService{Store: store, Logger: logger, Now: time.Now}
}

// WeekCells returns the effective state of every cell in the 7 days starting
// at weekStart, plus the appointments falling inside that window.
func (s *DefaultScheduleService) WeekCells(weekStart time.Time) models.WeekView {
	day := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	weekEnd := day.AddDate(0, 0, 7)
	appts := s.Store.List()

	view := models.WeekView{WeekStart: day.Format(models.DateLayout)}
	for d := day; d.Before(weekEnd); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(models.DateLayout)
		for h := DayStartHour; h < DayEndHour; h++ {
			for m := 0; m < 60; m += CellMinutes {
				cellStart := time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, d.Location())
				view.Cells = append(view.Cells, cellAt(appts, dateStr, cellStart))
			}
		}
	}

	for _, a := range appts {
		if a.Start.Before(weekEnd) && a.End.After(day) {
			view.Appointments = append(view.Appointments, a)
		}
	}
	sort.Slice(view.Appointments, func(i, j int) bool {
		return view.Appointments[i].Start.Before(view.Appointments[j].Start)
	})
	return view
}

func cellAt(appts []models.Appointment, dateStr string, cellStart time.Time) models.Cell {
	cell := models.Cell{
		Date:  dateStr,
		Time:  cellStart.Format(models.ClockLayout),
		State: models.CellEmpty,
	}
	for _, a := range appts {
		if a.StartsAt(cell.Date, cell.Time) {
			cell.AppointmentID = a.ID
			if a.Type == models.TypeMeeting {
				cell.State = models.CellBooked
			} else {
				cell.State = models.CellAvailable
			}
			return cell
		}
	}
	for _, a := range appts {
		if a.Interval().Contains(cellStart) {
			cell.State = models.CellCovered
			cell.AppointmentID = a.ID
			return cell
		}
	}
	return cell
}

// FindOpenSlot looks up an availability record starting exactly at the given
// (date, clock) cell.
func (s *DefaultScheduleService) FindOpenSlot(date, clock string) (models.Appointment, bool) {
	for _, a := range s.Store.List() {
		if a.Type == models.TypeAvailability && a.StartsAt(date, clock) {
			return a, true
		}
	}
	return models.Appointment{}, false
}

// OpenSlot publishes a new availability window. Owner only; the start must
// not have elapsed; any overlap with an existing record blocks it.
func (s *DefaultScheduleService) OpenSlot(ctx context.Context, role models.Role, req SlotRequest) (*models.Appointment, error) {
	if role != models.RoleOwner {
		return nil, models.ErrNotOwner
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = CellMinutes
	}
	iv, err := models.NewInterval(req.Start, req.Start.Add(time.Duration(duration)*time.Minute))
	if err != nil {
		return nil, err
	}
	if iv.Start.Before(s.Now()) {
		return nil, models.ErrPastSlot
	}

	appt := models.Appointment{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Start:         iv.Start,
		End:           iv.End,
		RequesterName: req.RequesterName,
		Type:          models.TypeAvailability,
	}
	if err := s.Store.Upsert(ctx, appt, CreateAvailability()); err != nil {
		return nil, err
	}
	s.Logger.Info("availability opened",
		zap.String("id", appt.ID), zap.Time("start", appt.Start), zap.Time("end", appt.End))
	return &appt, nil
}

// BookSlot consumes a published availability into a meeting. The meeting
// keeps the slot's start but may choose its own duration; the old record is
// removed and the new one inserted in one atomic store step.
func (s *DefaultScheduleService) BookSlot(ctx context.Context, role models.Role, targetID string, req SlotRequest) (*models.Appointment, error) {
	target, err := s.Store.Get(targetID)
	if err != nil {
		return nil, err
	}
	if target.Type != models.TypeAvailability {
		return nil, &models.ConflictError{ConflictID: target.ID}
	}

	duration := req.DurationMinutes
	if duration <= 0 {
		duration = target.Interval().DurationMinutes()
	}
	iv, err := models.NewInterval(target.Start, target.Start.Add(time.Duration(duration)*time.Minute))
	if err != nil {
		return nil, err
	}
	if iv.Start.Before(s.Now()) {
		return nil, models.ErrPastSlot
	}

	appt := models.Appointment{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Start:         iv.Start,
		End:           iv.End,
		RequesterName: req.RequesterName,
		Type:          models.TypeMeeting,
	}
	if err := s.Store.Upsert(ctx, appt, BookAvailability(target.ID)); err != nil {
		return nil, err
	}
	s.Logger.Info("slot booked",
		zap.String("id", appt.ID), zap.String("consumed", target.ID),
		zap.String("requester", appt.RequesterName), zap.String("role", string(role)))
	return &appt, nil
}

// EditSlot replaces the fields of an existing appointment in full. Owner
// only. The record keeps its identity; type may be changed by the request.
func (s *DefaultScheduleService) EditSlot(ctx context.Context, role models.Role, id string, req SlotRequest) (*models.Appointment, error) {
	if role != models.RoleOwner {
		return nil, models.ErrNotOwner
	}
	existing, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}

	start := req.Start
	if start.IsZero() {
		start = existing.Start
	}
	duration := req.DurationMinutes
	if duration <= 0 {
		duration = existing.Interval().DurationMinutes()
	}
	iv, err := models.NewInterval(start, start.Add(time.Duration(duration)*time.Minute))
	if err != nil {
		return nil, err
	}

	apptType := req.Type
	if apptType == "" {
		apptType = existing.Type
	}
	appt := models.Appointment{
		ID:            existing.ID,
		Title:         req.Title,
		Start:         iv.Start,
		End:           iv.End,
		RequesterName: req.RequesterName,
		Type:          apptType,
	}
	if err := s.Store.Upsert(ctx, appt, EditExisting(existing.ID)); err != nil {
		return nil, err
	}
	s.Logger.Info("appointment edited", zap.String("id", appt.ID))
	return &appt, nil
}

// DeleteSlot removes an appointment. Owner only; unknown ids surface
// ErrNotFound here even though the store's remove is idempotent.
func (s *DefaultScheduleService) DeleteSlot(ctx context.Context, role models.Role, id string) error {
	if role != models.RoleOwner {
		return models.ErrNotOwner
	}
	if _, err := s.Store.Get(id); err != nil {
		return err
	}
	if err := s.Store.Remove(ctx, id); err != nil {
		return err
	}
	s.Logger.Info("appointment deleted", zap.String("id", id))
	return nil
}
