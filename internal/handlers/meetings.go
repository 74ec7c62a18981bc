package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shidoukh/shidoukh/internal/services"
	apperrors "github.com/shidoukh/shidoukh/pkg/errors"
	"github.com/shidoukh/shidoukh/pkg/response"
)

// MeetingHandler exposes the meeting CRUD endpoints.
type MeetingHandler struct {
	meetings *services.MeetingService
}

// NewMeetingHandler wires a MeetingHandler.
func NewMeetingHandler(meetings *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetings: meetings}
}

type meetingRequest struct {
	Personne1 string `json:"personne_1" validate:"required"`
	Personne2 string `json:"personne_2" validate:"required"`
	Date      string `json:"date" validate:"required"`
}

// parseMeetingDate accepts the date-picker format and full timestamps.
func parseMeetingDate(raw string) (time.Time, error) {
	if date, err := time.Parse("2006-01-02", raw); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func (r meetingRequest) toInput() (services.MeetingInput, error) {
	date, err := parseMeetingDate(r.Date)
	if err != nil {
		return services.MeetingInput{}, apperrors.NewBadRequest("Date invalide")
	}
	return services.MeetingInput{
		Personne1: r.Personne1,
		Personne2: r.Personne2,
		Date:      date,
	}, nil
}

func meetingID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return uint(id), nil
}

// List returns every meeting with participant names, most recent first.
func (h *MeetingHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, h.meetings.List(c.Request.Context()))
}

// Get returns a single meeting.
func (h *MeetingHandler) Get(c *gin.Context) {
	id, err := meetingID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	meeting, err := h.meetings.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, meeting)
}

// Create records a new meeting.
func (h *MeetingHandler) Create(c *gin.Context) {
	var req meetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	meeting, err := h.meetings.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, meeting)
}

// Update modifies a meeting.
func (h *MeetingHandler) Update(c *gin.Context) {
	id, err := meetingID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req meetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, err)
		return
	}

	meeting, err := h.meetings.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, meeting)
}

// Delete removes a meeting.
func (h *MeetingHandler) Delete(c *gin.Context) {
	id, err := meetingID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.meetings.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Meeting supprimé")
}
