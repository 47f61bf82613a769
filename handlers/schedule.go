package handlers

import (
	"errors"
	"net/http"
	"time"

	"slotbook/middleware"
	"slotbook/models"
	"slotbook/services/scheduling"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScheduleHandler exposes the booking workflow over HTTP.
type ScheduleHandler struct {
	Service scheduling.ScheduleService
	Logger  *zap.Logger
}

func NewScheduleHandler(svc scheduling.ScheduleService, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{Service: svc, Logger: logger}
}

type slotRequest struct {
	Start           time.Time              `json:"start"`
	DurationMinutes int                    `json:"durationMinutes"`
	Title           string                 `json:"title"`
	RequesterName   string                 `json:"requesterName"`
	Type            models.AppointmentType `json:"type,omitempty"`
}

func (r slotRequest) toService() scheduling.SlotRequest {
	return scheduling.SlotRequest{
		Start:           r.Start,
		DurationMinutes: r.DurationMinutes,
		Title:           r.Title,
		RequesterName:   r.RequesterName,
		Type:            r.Type,
	}
}

// WeekHandler returns the cell grid for the week starting at ?start=YYYY-MM-DD
// (the current week when absent).
func (h *ScheduleHandler) WeekHandler(c *gin.Context) {
	weekStart := time.Now()
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.ParseInLocation(models.DateLayout, raw, time.Local)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid week start", "expected YYYY-MM-DD: "+err.Error())
			return
		}
		weekStart = parsed
	}
	c.JSON(http.StatusOK, h.Service.WeekCells(weekStart))
}

// OpenSlotHandler publishes a new availability window.
func (h *ScheduleHandler) OpenSlotHandler(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.OpenSlot(c.Request.Context(), middleware.ActingRole(c), req.toService())
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// BookSlotHandler consumes the availability named in the path into a meeting.
func (h *ScheduleHandler) BookSlotHandler(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.BookSlot(c.Request.Context(), middleware.ActingRole(c), c.Param("id"), req.toService())
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// EditSlotHandler replaces the named appointment's fields in full.
func (h *ScheduleHandler) EditSlotHandler(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	appt, err := h.Service.EditSlot(c.Request.Context(), middleware.ActingRole(c), c.Param("id"), req.toService())
	if err != nil {
		writeSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}

// DeleteSlotHandler removes the named appointment.
func (h *ScheduleHandler) DeleteSlotHandler(c *gin.Context) {
	if err := h.Service.DeleteSlot(c.Request.Context(), middleware.ActingRole(c), c.Param("id")); err != nil {
		writeSchedulingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeSchedulingError maps the scheduling error taxonomy onto HTTP status
// codes with a uniform body.
func writeSchedulingError(c *gin.Context, err error) {
	var conflict *models.ConflictError
	switch {
	case errors.Is(err, models.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, "role not permitted", err.Error())
	case errors.Is(err, models.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
	case errors.Is(err, models.ErrInvalidRange), errors.Is(err, models.ErrPastSlot):
		utils.JSONError(c, http.StatusUnprocessableEntity, "invalid slot", err.Error())
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": "time range conflict", "conflictId": conflict.ConflictID})
	case errors.Is(err, models.ErrNoMatchingSlot):
		utils.JSONError(c, http.StatusNotFound, "no matching open slot", err.Error())
	case errors.Is(err, models.ErrOracleUnparseable):
		utils.JSONError(c, http.StatusUnprocessableEntity, "suggestion not interpretable", err.Error())
	case errors.Is(err, models.ErrOracleUnavailable):
		utils.JSONError(c, http.StatusServiceUnavailable, "suggestions unavailable", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}
