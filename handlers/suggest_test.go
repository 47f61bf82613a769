package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slotbook/middleware"
	"slotbook/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubSuggestions struct {
	enabled bool
	result  *models.SuggestionResult
	err     error
}

func (s *stubSuggestions) Enabled() bool { return s.enabled }

func (s *stubSuggestions) Suggest(context.Context, models.Role, string) (*models.SuggestionResult, error) {
	return s.result, s.err
}

func newSuggestRouter(svc *stubSuggestions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewSuggestionHandler(svc, zap.NewNop())
	api := r.Group("/api")
	api.GET("/suggest/status", h.StatusHandler)
	api.POST("/suggest", middleware.RequireRole(), h.SuggestHandler)
	return r
}

func postSuggest(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Schedule-Role", "colleague")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSuggestStatus(t *testing.T) {
	r := newSuggestRouter(&stubSuggestions{enabled: false})
	// Status is a pure read and needs no role header.
	req := httptest.NewRequest(http.MethodGet, "/api/suggest/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", w.Code)
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Enabled {
		t.Error("enabled = true, want false")
	}
}

func TestSuggestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"disabled", models.ErrOracleUnavailable, http.StatusServiceUnavailable},
		{"unparseable", models.ErrOracleUnparseable, http.StatusUnprocessableEntity},
		{"no matching slot", models.ErrNoMatchingSlot, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newSuggestRouter(&stubSuggestions{err: tc.err})
			w := postSuggest(r, `{"text":"tuesday 2pm"}`)
			if w.Code != tc.want {
				t.Errorf("status %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestSuggestSuccess(t *testing.T) {
	start := time.Date(2024, 6, 4, 14, 0, 0, 0, time.Local)
	r := newSuggestRouter(&stubSuggestions{
		enabled: true,
		result: &models.SuggestionResult{
			Start:    start,
			End:      start.Add(30 * time.Minute),
			Title:    "Design sync",
			TargetID: "avail-1",
		},
	})

	w := postSuggest(r, `{"text":"tuesday 2pm design sync"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	var body struct {
		Suggestion models.SuggestionResult `json:"suggestion"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Suggestion.TargetID != "avail-1" || !body.Suggestion.Start.Equal(start) {
		t.Errorf("suggestion = %+v", body.Suggestion)
	}

	if w := postSuggest(r, `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("empty text: status %d, want 400", w.Code)
	}
}
