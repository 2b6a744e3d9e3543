package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/lwhela12/the-hive-api/errors"
	"github.com/lwhela12/the-hive-api/internal/domain/entities"
	domainrepo "github.com/lwhela12/the-hive-api/internal/domain/repositories"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/external/transcription"
)

// TranscriptionProvider is the slice of the speech-to-text provider the
// pipeline uses: async submission and the completion fetch.
type TranscriptionProvider interface {
	Submit(ctx context.Context, audioURL string) (string, error)
	Fetch(ctx context.Context, jobID string) (*transcription.Result, error)
}

// Summarizer is the text-generation call used for meeting analysis
type Summarizer interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// BlobStore issues short-lived signed read URLs for stored audio
type BlobStore interface {
	SignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

// Service drives a meeting recording through transcription, summarization
// and derived-record persistence
type Service interface {
	SubmitTranscription(ctx context.Context, meetingID uuid.UUID) (string, error)
	HandleTranscriptCompleted(ctx context.Context, transcriptJobID string) error
	HandleTranscriptError(ctx context.Context, transcriptJobID string, providerMessage string) error
}

type pipelineService struct {
	meetings    domainrepo.MeetingRepository
	actionItems domainrepo.ActionItemRepository
	highlights  domainrepo.HighlightRepository
	cycles      domainrepo.CycleRepository
	members     domainrepo.MemberRepository
	transcriber TranscriptionProvider
	summarizer  Summarizer
	blobs       BlobStore
	parser      *Parser
	urlExpiry   time.Duration
	logger      *zap.Logger
}

// NewService constructs the pipeline service
func NewService(
	meetings domainrepo.MeetingRepository,
	actionItems domainrepo.ActionItemRepository,
	highlights domainrepo.HighlightRepository,
	cycles domainrepo.CycleRepository,
	members domainrepo.MemberRepository,
	transcriber TranscriptionProvider,
	summarizer Summarizer,
	blobs BlobStore,
	urlExpiry time.Duration,
	logger *zap.Logger,
) Service {
	return &pipelineService{
		meetings:    meetings,
		actionItems: actionItems,
		highlights:  highlights,
		cycles:      cycles,
		members:     members,
		transcriber: transcriber,
		summarizer:  summarizer,
		blobs:       blobs,
		parser:      NewParser(),
		urlExpiry:   urlExpiry,
		logger:      logger,
	}
}

// SubmitTranscription requests diarized transcription for a meeting's audio
// and records the provider job id. Nothing is persisted on failure, so a
// failed submission is always safe to retry.
func (s *pipelineService) SubmitTranscription(ctx context.Context, meetingID uuid.UUID) (string, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return "", fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		return "", apperrors.ErrMeetingNotFound(meetingID.String())
	}
	if meeting.AudioObjectKey == "" {
		return "", apperrors.ErrMissingAudioObject(meetingID.String())
	}
	if !meeting.CanTransitionTo(entities.ProcessingStateTranscribing) {
		return "", apperrors.ErrMeetingInvalidState(
			meetingID.String(),
			string(meeting.ProcessingState),
			string(entities.ProcessingStatePending),
		)
	}

	audioURL, err := s.blobs.SignedURL(ctx, meeting.AudioObjectKey, s.urlExpiry)
	if err != nil {
		return "", apperrors.ErrStorageFailed("sign audio URL", err)
	}

	// Submit with exponential backoff; transient provider errors are retried
	// before anything is persisted.
	var jobID string
	submitFn := func() error {
		id, submitErr := s.transcriber.Submit(ctx, audioURL)
		if submitErr != nil {
			return submitErr
		}
		jobID = id
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(submitFn, backoff.WithContext(bo, ctx)); err != nil {
		s.logger.Error("transcription submit failed",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err),
		)
		return "", apperrors.ErrTranscriptionFailed(err)
	}

	meeting.MarkTranscribing(jobID)
	if err := s.meetings.Update(ctx, meeting); err != nil {
		// The provider job exists but we lost its id; the operator has to
		// re-submit, which creates a fresh job.
		s.logger.Error("failed to record transcript job id",
			zap.String("meeting_id", meetingID.String()),
			zap.String("transcript_id", jobID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to record transcript job: %w", err)
	}

	s.logger.Info("transcription submitted",
		zap.String("meeting_id", meetingID.String()),
		zap.String("transcript_id", jobID),
	)
	return jobID, nil
}

// HandleTranscriptCompleted processes a completion callback. The meeting is
// looked up by the provider's job id; an unknown id is a benign not-found
// (duplicate or stale delivery) with no side effects. On a match the
// transcript is fetched and formatted, then summarization and persistence
// run synchronously before this returns.
func (s *pipelineService) HandleTranscriptCompleted(ctx context.Context, transcriptJobID string) error {
	meeting, err := s.meetings.FindByTranscriptJobID(ctx, transcriptJobID)
	if err != nil {
		return fmt.Errorf("failed to look up transcript job: %w", err)
	}
	if meeting == nil {
		s.logger.Warn("completion callback for unknown transcript job",
			zap.String("transcript_id", transcriptJobID),
		)
		return apperrors.ErrTranscriptJobUnknown(transcriptJobID)
	}

	if err := s.processCompleted(ctx, meeting, transcriptJobID); err != nil {
		s.failMeeting(ctx, meeting)
		s.logger.Error("meeting processing failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("transcript_id", transcriptJobID),
			zap.Error(err),
		)
		return apperrors.ErrProcessingFailed(err)
	}
	return nil
}

// HandleTranscriptError handles a provider-reported transcription failure
// for a known job by moving the meeting to the terminal failed state.
func (s *pipelineService) HandleTranscriptError(ctx context.Context, transcriptJobID string, providerMessage string) error {
	meeting, err := s.meetings.FindByTranscriptJobID(ctx, transcriptJobID)
	if err != nil {
		return fmt.Errorf("failed to look up transcript job: %w", err)
	}
	if meeting == nil {
		return apperrors.ErrTranscriptJobUnknown(transcriptJobID)
	}

	s.logger.Error("provider reported transcription error",
		zap.String("meeting_id", meeting.ID.String()),
		zap.String("transcript_id", transcriptJobID),
		zap.String("provider_message", providerMessage),
	)
	s.failMeeting(ctx, meeting)
	return nil
}

// processCompleted is the synchronous tail of the webhook: fetch, format,
// summarize, persist. Any error here fails the meeting.
func (s *pipelineService) processCompleted(ctx context.Context, meeting *entities.Meeting, transcriptJobID string) error {
	result, err := s.transcriber.Fetch(ctx, transcriptJobID)
	if err != nil {
		return fmt.Errorf("failed to fetch transcript: %w", err)
	}

	rawTranscript := formatTranscript(result)
	meeting.MarkSummarizing(rawTranscript)
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to store transcript: %w", err)
	}

	s.logger.Info("transcript stored",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("transcript_length", len(rawTranscript)),
		zap.Int("utterance_count", len(result.Utterances)),
	)

	return s.summarizeAndPersist(ctx, meeting, rawTranscript)
}

// summarizeAndPersist runs the LLM analysis and writes the derived records
func (s *pipelineService) summarizeAndPersist(ctx context.Context, meeting *entities.Meeting, transcript string) error {
	roster, err := s.members.ListByHive(ctx, meeting.HiveID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	names := make([]string, 0, len(roster))
	for _, m := range roster {
		names = append(names, m.DisplayName)
	}

	raw, err := s.summarizer.Complete(ctx, buildSystemPrompt(names), transcript)
	if err != nil {
		return fmt.Errorf("failed to generate analysis: %w", err)
	}

	// Parse never fails; malformed output degrades to a plain-text summary.
	analysis := s.parser.Parse(raw)

	if err := s.persistActionItems(ctx, meeting, analysis, roster); err != nil {
		return err
	}
	if err := s.persistHighlights(ctx, meeting, analysis); err != nil {
		return err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to serialize summary: %w", err)
	}

	meeting.MarkComplete(datatypes.JSON(payload))
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	s.logger.Info("meeting processing complete",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("action_items", len(analysis.ActionItems)),
		zap.Int("wishes", len(analysis.Wishes)),
		zap.Int("highlights", len(analysis.Highlights)),
	)
	return nil
}

// persistActionItems inserts one row per extracted item with best-effort
// assignee and due-date resolution. Items are appended, never deduplicated,
// so reprocessing a meeting grows the set.
func (s *pipelineService) persistActionItems(ctx context.Context, meeting *entities.Meeting, analysis *entities.MeetingAnalysis, roster []entities.Member) error {
	if len(analysis.ActionItems) == 0 {
		return nil
	}

	items := make([]*entities.ActionItem, 0, len(analysis.ActionItems))
	for _, extracted := range analysis.ActionItems {
		item := entities.NewActionItem(meeting.ID, meeting.HiveID, extracted.Description)
		item.AssigneeID = resolveAssignee(extracted.Assignee, roster)
		if due, err := time.Parse("2006-01-02", extracted.DueDate); err == nil {
			item.DueDate = &due
		}
		items = append(items, item)
	}

	if err := s.actionItems.CreateBatch(ctx, items); err != nil {
		return fmt.Errorf("failed to store action items: %w", err)
	}
	return nil
}

// persistHighlights replaces this meeting's highlights under the hive's
// active queen cycle. No active cycle means highlights are skipped entirely;
// replacement keeps reprocessing idempotent.
func (s *pipelineService) persistHighlights(ctx context.Context, meeting *entities.Meeting, analysis *entities.MeetingAnalysis) error {
	cycle, err := s.cycles.FindActiveByHive(ctx, meeting.HiveID)
	if err != nil {
		return fmt.Errorf("failed to resolve active cycle: %w", err)
	}
	if cycle == nil {
		s.logger.Info("no active cycle, skipping highlights",
			zap.String("hive_id", meeting.HiveID.String()),
		)
		return nil
	}

	highlights := make([]*entities.Highlight, 0, len(analysis.Highlights))
	for i, content := range analysis.Highlights {
		highlights = append(highlights, entities.NewHighlight(cycle.ID, meeting.ID, content, i))
	}

	if err := s.highlights.ReplaceForMeeting(ctx, meeting.ID, highlights); err != nil {
		return fmt.Errorf("failed to store highlights: %w", err)
	}
	return nil
}

// failMeeting moves the meeting to the terminal failed state. Recovery is an
// operator-triggered re-submission; there is no automatic retry.
func (s *pipelineService) failMeeting(ctx context.Context, meeting *entities.Meeting) {
	meeting.MarkFailed()
	if err := s.meetings.Update(ctx, meeting); err != nil {
		s.logger.Error("failed to mark meeting as failed",
			zap.String("meeting_id", meeting.ID.String()),
			zap.Error(err),
		)
	}
}

// formatTranscript renders a fetched result as newline-separated
// "Speaker <label>: <text>" lines, falling back to the flat text when the
// provider returned no utterance breakdown.
func formatTranscript(result *transcription.Result) string {
	if len(result.Utterances) == 0 {
		return result.Text
	}

	var sb strings.Builder
	for i, utt := range result.Utterances {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("Speaker %s: %s", utt.Speaker, utt.Text))
	}
	return sb.String()
}
