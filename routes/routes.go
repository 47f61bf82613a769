package routes

import (
	"time"

	"slotbook/handlers"
	"slotbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP surface: the weekly schedule commands
// and queries, the suggestion endpoints, and the health probe.
func RegisterRoutes(r *gin.Engine, schedule *handlers.ScheduleHandler, suggest *handlers.SuggestionHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Schedule-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", handlers.HealthHandler)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())

	// Pure reads need no declared role.
	api.GET("/schedule/week", schedule.WeekHandler)
	api.GET("/suggest/status", suggest.StatusHandler)

	acting := api.Group("")
	acting.Use(middleware.RequireRole())
	{
		sched := acting.Group("/schedule")
		{
			sched.POST("/slots", schedule.OpenSlotHandler)
			sched.POST("/slots/:id/book", schedule.BookSlotHandler)
			sched.PUT("/slots/:id", schedule.EditSlotHandler)
			sched.DELETE("/slots/:id", schedule.DeleteSlotHandler)
		}

		acting.POST("/suggest", suggest.SuggestHandler)
	}
}
