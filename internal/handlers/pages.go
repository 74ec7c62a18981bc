package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/services"
	"github.com/shidoukh/shidoukh/internal/sessions"
	"github.com/shidoukh/shidoukh/pkg/response"
)

// PagesHandler serves the data behind the dashboard pages. The front-end
// fetches these payloads after the session guard has let the navigation
// through.
type PagesHandler struct {
	sessions  *sessions.Manager
	personnes *services.PersonneService
	meetings  *services.MeetingService
}

// NewPagesHandler wires a PagesHandler.
func NewPagesHandler(sessionManager *sessions.Manager, personnes *services.PersonneService, meetings *services.MeetingService) *PagesHandler {
	return &PagesHandler{sessions: sessionManager, personnes: personnes, meetings: meetings}
}

// Home returns the dashboard landing payload: the signed-in identity and
// the headline counts. A stale cookie yields a nil user, which the
// front-end turns into a sign-out.
func (h *PagesHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	personnes := h.personnes.List(ctx)
	meetings := h.meetings.List(ctx)

	response.Success(c, http.StatusOK, gin.H{
		"user":            h.sessions.CurrentUser(c),
		"personnes_count": len(personnes),
		"meetings_count":  len(meetings),
	})
}

// Personnes returns the profile list page payload.
func (h *PagesHandler) Personnes(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"user":      h.sessions.CurrentUser(c),
		"personnes": h.personnes.List(c.Request.Context()),
	})
}

// Meetings returns the meeting list page payload. Profiles ride along to
// populate the participant selectors.
func (h *PagesHandler) Meetings(c *gin.Context) {
	ctx := c.Request.Context()

	response.Success(c, http.StatusOK, gin.H{
		"user":      h.sessions.CurrentUser(c),
		"meetings":  h.meetings.List(ctx),
		"personnes": h.personnes.List(ctx),
	})
}

// CommunicationChannel returns the placeholder payload for one messaging
// integration, or 404 for a channel that does not exist.
func (h *PagesHandler) CommunicationChannel(c *gin.Context) {
	name := c.Param("channel")
	for _, channel := range channels {
		if channel.Name == name {
			response.Success(c, http.StatusOK, gin.H{
				"user":    h.sessions.CurrentUser(c),
				"channel": channel,
				"message": "Bientôt disponible",
			})
			return
		}
	}

	c.JSON(http.StatusNotFound, response.Response{
		Success: false,
		Error:   &response.ErrorInfo{Code: "NOT_FOUND", Message: "Page introuvable"},
	})
}

// AuthPage returns the shell payload for a sign-in flow page. The guard has
// already decided whether the visitor may see it.
func (h *PagesHandler) AuthPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"page": name})
	}
}
