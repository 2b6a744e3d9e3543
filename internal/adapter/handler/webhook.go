package handler

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lwhela12/the-hive-api/errors"
	meetingdto "github.com/lwhela12/the-hive-api/internal/adapter/dto/meeting"
	"github.com/lwhela12/the-hive-api/internal/usecase/pipeline"
	"github.com/lwhela12/the-hive-api/pkg/ai"
)

// Webhook receives transcription provider callbacks and internal
// submission requests on a single endpoint.
type Webhook struct {
	pipeline      pipeline.Service
	webhookSecret string
	logger        *zap.Logger
}

// NewWebhook constructs the webhook handler. An empty secret disables
// signature verification.
func NewWebhook(pipelineSvc pipeline.Service, webhookSecret string, logger *zap.Logger) *Webhook {
	return &Webhook{
		pipeline:      pipelineSvc,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// Handle dispatches on payload shape: a meeting_id means a submission
// request, a status plus transcript_id means a provider callback. Unknown
// transcript ids come back as a 404 the provider treats as final.
func (h *Webhook) Handle(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidWebhookPayload("unreadable body"))
	}

	if h.webhookSecret != "" {
		signature := c.Request().Header.Get("X-Webhook-Signature")
		if !ai.VerifyHMAC(h.webhookSecret, body, signature) {
			h.logger.Warn("webhook signature rejected",
				zap.String("request_id", getRequestID(c)),
			)
			return HandleError(h.logger, c, errors.ErrForbidden("Invalid webhook signature"))
		}
	}

	var req meetingdto.TranscriptionWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidWebhookPayload("malformed JSON"))
	}

	ctx := c.Request().Context()

	switch {
	case req.MeetingID != nil:
		jobID, err := h.pipeline.SubmitTranscription(ctx, *req.MeetingID)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, meetingdto.SubmissionResponse{
			MeetingID:       *req.MeetingID,
			TranscriptJobID: jobID,
			ProcessingState: "transcribing",
		})

	case req.Status == "completed" && req.TranscriptID != "":
		if err := h.pipeline.HandleTranscriptCompleted(ctx, req.TranscriptID); err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, map[string]string{
			"transcript_id": req.TranscriptID,
		})

	case req.Status == "error" && req.TranscriptID != "":
		if err := h.pipeline.HandleTranscriptError(ctx, req.TranscriptID, req.Error); err != nil {
			return HandleError(h.logger, c, err)
		}
		return HandleSuccess(h.logger, c, map[string]string{
			"transcript_id": req.TranscriptID,
		})

	default:
		h.logger.Warn("webhook payload matched no known shape",
			zap.String("status", req.Status),
		)
		return HandleError(h.logger, c, errors.ErrInvalidWebhookPayload("unrecognized shape"))
	}
}
