package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/peergrouptools/peergroup-api/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	authMiddleware echo.MiddlewareFunc
	summary        *Summary
	meeting        *Meeting
	checkIn        *CheckIn
	chat           *Chat
	user           *User
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authMiddleware echo.MiddlewareFunc,
	summary *Summary,
	meeting *Meeting,
	checkIn *CheckIn,
	chat *Chat,
	user *User,
) *Router {
	return &Router{
		cfg:            cfg,
		authMiddleware: authMiddleware,
		summary:        summary,
		meeting:        meeting,
		checkIn:        checkIn,
		chat:           chat,
		user:           user,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/", rt.welcome)
	e.GET("/health", rt.healthCheck)

	v1 := e.Group("/v1")

	// Hume signs its webhooks; there is no bearer token to check
	v1.POST("/webhooks/hume", rt.chat.HumeWebhook)

	authed := v1.Group("", rt.authMiddleware)
	authed.GET("/me", rt.user.Me)
	authed.POST("/hume_tokens", rt.user.CreateHumeToken)
	authed.POST("/hume_sessions", rt.summary.CreateHumeSession)
	authed.POST("/check_ins", rt.checkIn.CreateCheckIn)
	authed.GET("/chats/:chat_id/transcript", rt.chat.GetTranscript)

	rt.setupMeetingRoutes(authed)
}

// setupMeetingRoutes configures meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.GET("", rt.meeting.ListMeetings)
	meetings.POST("", rt.meeting.CreateMeeting)
	meetings.GET("/:id", rt.meeting.GetMeeting)
	meetings.DELETE("/:id", rt.meeting.DeleteMeeting)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().UTC().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}

// welcome handles GET /
func (rt *Router) welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Welcome to the PeerGroupToolsDemo API",
	})
}
