package handlers

import (
	"errors"
	"net/http"

	"slotbook/middleware"
	"slotbook/services/intelligence"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SuggestionHandler exposes the free-text suggestion adapter.
type SuggestionHandler struct {
	Service intelligence.SuggestionService
	Logger  *zap.Logger
}

func NewSuggestionHandler(svc intelligence.SuggestionService, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{Service: svc, Logger: logger}
}

type suggestRequest struct {
	Text string `json:"text" binding:"required"`
}

// StatusHandler reports whether suggestions are configured at all, so a
// client can hide the feature instead of submitting doomed requests.
func (h *SuggestionHandler) StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"enabled": h.Service.Enabled()})
}

// SuggestHandler submits free text and returns a bookable candidate. It
// never mutates the schedule; booking the candidate is a separate command.
func (h *SuggestionHandler) SuggestHandler(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Service.Suggest(c.Request.Context(), middleware.ActingRole(c), req.Text)
	if err != nil {
		if errors.Is(err, intelligence.ErrSuperseded) {
			// A newer request took over; this reply carries nothing to act on.
			c.Status(http.StatusNoContent)
			return
		}
		writeSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": result})
}
