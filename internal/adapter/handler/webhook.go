package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/peergrouptools/peergroup-api/errors"
	"github.com/peergrouptools/peergroup-api/internal/adapter/presenter"
	chatUsecase "github.com/peergrouptools/peergroup-api/internal/usecase/chat"
	"github.com/peergrouptools/peergroup-api/pkg/ai"
)

// Chat handles Hume webhooks and reconstructed transcripts
type Chat struct {
	chatService chatUsecase.Service
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService chatUsecase.Service, logger *zap.Logger) *Chat {
	return &Chat{chatService: chatService, logger: logger}
}

// HumeWebhook handles POST /webhooks/hume
// @Summary      Receive a Hume EVI webhook
// @Description  Verifies the HMAC signature and applies chat lifecycle and message events. Redeliveries are acknowledged without reprocessing.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Param        X-Hume-AI-Webhook-Timestamp  header    string  true  "Signature timestamp"
// @Param        X-Hume-AI-Webhook-Signature  header    string  true  "hex HMAC-SHA256 of body+timestamp"
// @Success      200  {object}  chat.WebhookAckResponse
// @Failure      401  {object}  common.ErrorResponse  "Invalid signature"
// @Failure      422  {object}  common.ErrorResponse  "Missing chat_id"
// @Router       /webhooks/hume [post]
func (h *Chat) HumeWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	outcome, err := h.chatService.Ingest(c.Request().Context(), chatUsecase.Delivery{
		Body:      body,
		Timestamp: c.Request().Header.Get(ai.HumeTimestampHeader),
		Signature: c.Request().Header.Get(ai.HumeSignatureHeader),
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return c.JSON(http.StatusOK, presenter.ToWebhookAck(outcome))
}

// GetTranscript handles GET /chats/:chat_id/transcript
// @Summary      Get a reconstructed chat transcript
// @Tags         Chats
// @Produce      json
// @Security     BearerAuth
// @Param        chat_id  path      string  true  "Hume chat id"
// @Success      200      {object}  chat.TranscriptResponse
// @Failure      404      {object}  common.ErrorResponse  "Chat not found"
// @Router       /chats/{chat_id}/transcript [get]
func (h *Chat) GetTranscript(c echo.Context) error {
	transcript, err := h.chatService.Transcript(c.Request().Context(), c.Param("chat_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return c.JSON(http.StatusOK, presenter.ToTranscriptResponse(transcript))
}
