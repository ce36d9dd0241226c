package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/errors"
	summaryDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/summary"
	summaryUsecase "github.com/peergrouptools/peergroup-api/internal/usecase/summary"
)

// Summary handles session summary requests
type Summary struct {
	summaryService summaryUsecase.Service
	logger         *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(summaryService summaryUsecase.Service, logger *zap.Logger) *Summary {
	return &Summary{
		summaryService: summaryService,
		logger:         logger,
	}
}

// CreateHumeSession handles POST /hume_sessions
// @Summary      Summarize a voice session
// @Description  Stores the session payload, generates a bucketed summary and links it to the meeting
// @Tags         Sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      summary.SummarizeRequest  true  "Session payload"
// @Success      200      {object}  summary.SummarizeResponse
// @Failure      400      {object}  common.ErrorResponse  "Invalid payload"
// @Failure      401      {object}  common.ErrorResponse  "User not authenticated"
// @Failure      404      {object}  common.ErrorResponse  "Meeting not found"
// @Failure      422      {object}  common.ErrorResponse  "Model did not return valid JSON"
// @Failure      500      {object}  common.ErrorResponse  "Summary provider unavailable"
// @Router       /hume_sessions [post]
func (h *Summary) CreateHumeSession(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	// the whole body is stored as the session payload, so it is read once and kept
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	var req summaryDTO.SummarizeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := validate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("meeting_id must be a valid UUID"))
	}

	out, err := h.summaryService.Summarize(c.Request().Context(), uid, summaryUsecase.SummarizeInput{
		MeetingID:     meetingID,
		HumeSessionID: req.HumeSessionID,
		Payload:       body,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, &summaryDTO.SummarizeResponse{
		OK:            true,
		Summary:       json.RawMessage(out.Summary),
		MeetingID:     out.MeetingID.String(),
		HumeSessionID: out.HumeSessionID,
	})
}
