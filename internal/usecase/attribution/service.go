package attribution

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/lwhela12/the-hive-api/errors"
	domainrepo "github.com/lwhela12/the-hive-api/internal/domain/repositories"
)

// speakerLabelPattern matches diarization labels at the start of a
// transcript line, e.g. "Speaker A:".
var speakerLabelPattern = regexp.MustCompile(`Speaker ([A-Z]):`)

// Speakers is the attribution view of a meeting: the distinct diarization
// labels found in the raw transcript and whether all of them have been
// replaced with member names.
type Speakers struct {
	MeetingID uuid.UUID `json:"meeting_id"`
	Labels    []string  `json:"labels"`
	Resolved  bool      `json:"resolved"`
}

// Service maps anonymous diarization labels to hive members
type Service interface {
	GetSpeakers(ctx context.Context, meetingID uuid.UUID) (*Speakers, error)
	Apply(ctx context.Context, meetingID uuid.UUID, assignments map[string]uuid.UUID) (*Speakers, error)
}

type attributionService struct {
	meetings domainrepo.MeetingRepository
	members  domainrepo.MemberRepository
	logger   *zap.Logger
}

// NewService constructs the attribution service
func NewService(meetings domainrepo.MeetingRepository, members domainrepo.MemberRepository, logger *zap.Logger) Service {
	return &attributionService{
		meetings: meetings,
		members:  members,
		logger:   logger,
	}
}

// GetSpeakers returns the distinct speaker labels in the meeting's raw
// transcript, sorted alphabetically
func (s *attributionService) GetSpeakers(ctx context.Context, meetingID uuid.UUID) (*Speakers, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}
	if meeting.RawTranscript == nil {
		return nil, apperrors.ErrTranscriptNotReady(meetingID.String())
	}

	return &Speakers{
		MeetingID: meeting.ID,
		Labels:    ExtractLabels(*meeting.RawTranscript),
		Resolved:  isResolved(*meeting.RawTranscript, meeting.AttributedTranscript),
	}, nil
}

// Apply rewrites the raw transcript with member names substituted for the
// assigned speaker labels and stores the result as the attributed
// transcript. Labels without an assignment are left untouched, so partial
// attribution is allowed and repeatable. Each call rewrites from the raw
// transcript, never from a previous attribution.
func (s *attributionService) Apply(ctx context.Context, meetingID uuid.UUID, assignments map[string]uuid.UUID) (*Speakers, error) {
	meeting, err := s.meetings.FindByID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting == nil {
		return nil, apperrors.ErrMeetingNotFound(meetingID.String())
	}
	if meeting.RawTranscript == nil {
		return nil, apperrors.ErrTranscriptNotReady(meetingID.String())
	}

	names := make(map[string]string, len(assignments))
	for label, memberID := range assignments {
		member, err := s.members.FindByID(ctx, memberID)
		if err != nil {
			return nil, fmt.Errorf("failed to load member: %w", err)
		}
		if member == nil {
			return nil, apperrors.ErrNotFound("Member").WithDetail("member_id", memberID.String())
		}
		if member.HiveID != meeting.HiveID {
			return nil, apperrors.ErrForbidden("Member does not belong to this hive").
				WithDetail("member_id", memberID.String())
		}
		names[label] = member.DisplayName
	}

	attributed := Rewrite(*meeting.RawTranscript, names)
	meeting.AttributedTranscript = &attributed
	if err := s.meetings.Update(ctx, meeting); err != nil {
		return nil, fmt.Errorf("failed to store attributed transcript: %w", err)
	}

	s.logger.Info("speaker attribution applied",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("assigned_labels", len(names)),
	)

	return &Speakers{
		MeetingID: meeting.ID,
		Labels:    ExtractLabels(*meeting.RawTranscript),
		Resolved:  isResolved(*meeting.RawTranscript, meeting.AttributedTranscript),
	}, nil
}

// ExtractLabels collects the distinct diarization labels in a transcript,
// sorted alphabetically
func ExtractLabels(transcript string) []string {
	seen := make(map[string]bool)
	for _, match := range speakerLabelPattern.FindAllStringSubmatch(transcript, -1) {
		seen[match[1]] = true
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Rewrite substitutes "Speaker X:" markers with "<name>:" for every
// assigned label. Unassigned labels keep their marker.
func Rewrite(transcript string, names map[string]string) string {
	out := transcript
	for label, name := range names {
		out = strings.ReplaceAll(out, "Speaker "+label+":", name+":")
	}
	return out
}

// isResolved reports whether attribution has both happened and covered
// every label: an attributed transcript exists, differs from the raw one,
// and contains no residual speaker marker.
func isResolved(raw string, attributed *string) bool {
	if attributed == nil {
		return false
	}
	if *attributed == raw {
		return false
	}
	return !speakerLabelPattern.MatchString(*attributed)
}
