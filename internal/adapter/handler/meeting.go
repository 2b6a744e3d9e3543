package handler

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lwhela12/the-hive-api/errors"
	meetingdto "github.com/lwhela12/the-hive-api/internal/adapter/dto/meeting"
	"github.com/lwhela12/the-hive-api/internal/domain/entities"
	domainrepo "github.com/lwhela12/the-hive-api/internal/domain/repositories"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/cache"
	"github.com/lwhela12/the-hive-api/internal/usecase/attribution"
	"github.com/lwhela12/the-hive-api/internal/usecase/pipeline"
)

// stateCacheTTL bounds how stale a polled processing state may be
const stateCacheTTL = 3 * time.Second

// Meeting exposes meeting registration, pipeline control, state polling
// and speaker attribution.
type Meeting struct {
	meetings    domainrepo.MeetingRepository
	pipeline    pipeline.Service
	attribution attribution.Service
	states      cache.StatusCache
	logger      *zap.Logger
}

// NewMeeting constructs the meeting handler
func NewMeeting(
	meetings domainrepo.MeetingRepository,
	pipelineSvc pipeline.Service,
	attributionSvc attribution.Service,
	states cache.StatusCache,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		meetings:    meetings,
		pipeline:    pipelineSvc,
		attribution: attributionSvc,
		states:      states,
		logger:      logger,
	}
}

// Create registers a recorded meeting in the pending state
func (h *Meeting) Create(c echo.Context) error {
	var req meetingdto.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	meeting := entities.NewMeeting(req.HiveID, req.RecorderID, req.OccurredOn, req.AudioObjectKey)
	if err := h.meetings.Create(c.Request().Context(), meeting); err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to create meeting: %w", err))
	}

	h.logger.Info("meeting registered",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("hive_id", meeting.HiveID.String()),
	)
	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponse(meeting))
}

// Submit sends the meeting's audio out for transcription
func (h *Meeting) Submit(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	jobID, err := h.pipeline.SubmitTranscription(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	h.states.Delete(c.Request().Context(), stateCacheKey(meetingID))
	return HandleSuccess(h.logger, c, meetingdto.SubmissionResponse{
		MeetingID:       meetingID,
		TranscriptJobID: jobID,
		ProcessingState: string(entities.ProcessingStateTranscribing),
	})
}

// Get returns the meeting, its transcripts and summary
func (h *Meeting) Get(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	meeting, err := h.meetings.FindByID(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to load meeting: %w", err))
	}
	if meeting == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
	}

	return HandleSuccess(h.logger, c, meetingdto.ToMeetingResponse(meeting))
}

// GetState returns just the processing state, served through a short-TTL
// cache sized for client polling intervals
func (h *Meeting) GetState(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	ctx := c.Request().Context()
	key := stateCacheKey(meetingID)
	if state, ok := h.states.Get(ctx, key); ok {
		return HandleSuccess(h.logger, c, map[string]string{"processing_state": state})
	}

	meeting, err := h.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return HandleError(h.logger, c, fmt.Errorf("failed to load meeting: %w", err))
	}
	if meeting == nil {
		return HandleError(h.logger, c, errors.ErrMeetingNotFound(meetingID.String()))
	}

	state := string(meeting.ProcessingState)
	h.states.Set(ctx, key, state, stateCacheTTL)
	return HandleSuccess(h.logger, c, map[string]string{"processing_state": state})
}

// GetSpeakers lists the diarization labels awaiting attribution
func (h *Meeting) GetSpeakers(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	speakers, err := h.attribution.GetSpeakers(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, speakers)
}

// PutSpeakers applies label-to-member assignments to the transcript
func (h *Meeting) PutSpeakers(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	var req meetingdto.AttributionRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument(err.Error()))
	}

	speakers, err := h.attribution.Apply(c.Request().Context(), meetingID, req.Assignments)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, speakers)
}

func stateCacheKey(meetingID uuid.UUID) string {
	return "meeting:state:" + meetingID.String()
}
