package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	meetingDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/meeting"
	"github.com/peergrouptools/peergroup-api/internal/adapter/presenter"
	meetingUsecase "github.com/peergrouptools/peergroup-api/internal/usecase/meeting"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting attributes"
// @Success      201      {object}  meeting.CreateMeetingResponse
// @Failure      400      {object}  common.ErrorResponse  "Invalid payload"
// @Failure      401      {object}  common.ErrorResponse  "User not authenticated"
// @Failure      422      {object}  common.ErrorResponse  "Validation failed"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), meetingUsecase.CreateMeetingInput{
		UserID:      uid,
		Title:       req.Meeting.Title,
		Description: req.Meeting.Description,
		HumeLabel:   req.Meeting.HumeLabel,
		HumeConfig:  req.Meeting.HumeConfig,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusCreated, &meetingDTO.CreateMeetingResponse{
		ID:      m.ID.String(),
		Meeting: presenter.ToMeetingResponse(m),
	})
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting details
// @Description  Returns the meeting with its summarized session
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      400  {object}  common.ErrorResponse  "Invalid meeting ID"
// @Failure      403  {object}  common.ErrorResponse  "Not the owner"
// @Failure      404  {object}  common.ErrorResponse  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	meetingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), meetingID, uid)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingResponse(m))
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Gets a page of the current user's meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  false  "Title search"
// @Param        sort       query     string  false  "Sort field (id/title/created_at/updated_at)"
// @Param        direction  query     string  false  "Sort direction (asc/desc)"
// @Param        page       query     int     false  "Page number (default: 1)"
// @Param        per_page   query     int     false  "Items per page (default: 25, max: 100)"
// @Success      200        {object}  meeting.MeetingListResponse
// @Failure      401        {object}  common.ErrorResponse  "User not authenticated"
// @Failure      422        {object}  common.ErrorResponse  "Invalid query"
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req meetingDTO.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	out, err := h.meetingService.ListMeetings(c.Request().Context(), meetingUsecase.ListMeetingsInput{
		UserID:    uid,
		Search:    req.Query,
		SortBy:    req.Sort,
		Direction: req.Direction,
		Page:      req.Page,
		PerPage:   req.PerPage,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToMeetingListResponse(out))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Security     BearerAuth
// @Param        id   path  string  true  "Meeting ID (UUID)"
// @Success      204  "Meeting deleted"
// @Failure      403  {object}  common.ErrorResponse  "Not the owner"
// @Failure      404  {object}  common.ErrorResponse  "Meeting not found"
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	meetingID, err := parseUUIDParam(c, "id")
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), meetingID, uid); err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
