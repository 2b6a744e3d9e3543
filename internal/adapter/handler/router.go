package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lwhela12/the-hive-api/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	meetingHandler    *Meeting
	actionItemHandler *ActionItem
	webhookHandler    *Webhook
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, actionItemHandler *ActionItem, webhookHandler *Webhook) *Router {
	return &Router{
		cfg:               cfg,
		meetingHandler:    meetingHandler,
		actionItemHandler: actionItemHandler,
		webhookHandler:    webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupActionItemRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupMeetingRoutes configures meeting and attribution routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.POST("", rt.meetingHandler.Create)
	meetings.GET("/:id", rt.meetingHandler.Get)
	meetings.GET("/:id/state", rt.meetingHandler.GetState)
	meetings.POST("/:id/transcription", rt.meetingHandler.Submit)
	meetings.GET("/:id/speakers", rt.meetingHandler.GetSpeakers)
	meetings.PUT("/:id/speakers", rt.meetingHandler.PutSpeakers)
	meetings.GET("/:id/action-items", rt.actionItemHandler.ListByMeeting)
}

// setupActionItemRoutes configures action item routes
func (rt *Router) setupActionItemRoutes(g *echo.Group) {
	items := g.Group("/action-items")
	items.PATCH("/:id", rt.actionItemHandler.Toggle)
}

// setupWebhookRoutes configures provider callback routes
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	webhooks := g.Group("/webhooks")
	webhooks.POST("/transcription", rt.webhookHandler.Handle)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
