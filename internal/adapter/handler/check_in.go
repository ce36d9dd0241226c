package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	checkinDTO "github.com/peergrouptools/peergroup-api/internal/adapter/dto/checkin"
	"github.com/peergrouptools/peergroup-api/internal/adapter/dto/common"
	checkinUsecase "github.com/peergrouptools/peergroup-api/internal/usecase/checkin"
)

// CheckIn handles check-in requests
type CheckIn struct {
	checkInService checkinUsecase.Service
	logger         *zap.Logger
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(checkInService checkinUsecase.Service, logger *zap.Logger) *CheckIn {
	return &CheckIn{checkInService: checkInService, logger: logger}
}

// CreateCheckIn handles POST /check_ins
// @Summary      Record a check-in
// @Tags         CheckIns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      checkin.CreateCheckInRequest  true  "Check-in answer"
// @Success      200      {object}  common.CreatedResponse
// @Failure      401      {object}  common.ErrorResponse  "User not authenticated"
// @Failure      422      {object}  common.ErrorResponse  "Validation failed"
// @Router       /check_ins [post]
func (h *CheckIn) CreateCheckIn(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req checkinDTO.CreateCheckInRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	checkIn, err := h.checkInService.Create(c.Request().Context(), checkinUsecase.CreateInput{
		UserID:       uid,
		ChatID:       req.ChatID,
		Kind:         req.Kind,
		StepIndex:    req.StepIndex,
		Category:     req.Category,
		QuestionID:   req.QuestionID,
		QuestionText: req.QuestionText,
		Rating:       req.Rating,
		UserMessage:  req.UserMessage,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, &common.CreatedResponse{OK: true, ID: checkIn.ID.String()})
}
