package pipeline

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/lwhela12/the-hive-api/errors"
	"github.com/lwhela12/the-hive-api/internal/domain/entities"
	"github.com/lwhela12/the-hive-api/internal/infrastructure/external/transcription"
)

// In-memory fakes for the repository and provider interfaces.

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	r := &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
	for _, m := range meetings {
		r.meetings[m.ID] = m
	}
	return r
}

func (r *fakeMeetingRepo) Create(_ context.Context, m *entities.Meeting) error {
	r.meetings[m.ID] = m
	return nil
}

func (r *fakeMeetingRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Meeting, error) {
	m, ok := r.meetings[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMeetingRepo) FindByTranscriptJobID(_ context.Context, jobID string) (*entities.Meeting, error) {
	for _, m := range r.meetings {
		if m.TranscriptJobID != nil && *m.TranscriptJobID == jobID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMeetingRepo) Update(_ context.Context, m *entities.Meeting) error {
	cp := *m
	r.meetings[m.ID] = &cp
	return nil
}

type fakeActionItemRepo struct {
	items []*entities.ActionItem
}

func (r *fakeActionItemRepo) CreateBatch(_ context.Context, items []*entities.ActionItem) error {
	r.items = append(r.items, items...)
	return nil
}

func (r *fakeActionItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.ActionItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *fakeActionItemRepo) ListByMeeting(_ context.Context, meetingID uuid.UUID) ([]entities.ActionItem, error) {
	var out []entities.ActionItem
	for _, item := range r.items {
		if item.MeetingID == meetingID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeActionItemRepo) Update(_ context.Context, _ *entities.ActionItem) error {
	return nil
}

type fakeHighlightRepo struct {
	byMeeting map[uuid.UUID][]*entities.Highlight
	replaces  int
}

func newFakeHighlightRepo() *fakeHighlightRepo {
	return &fakeHighlightRepo{byMeeting: make(map[uuid.UUID][]*entities.Highlight)}
}

func (r *fakeHighlightRepo) ReplaceForMeeting(_ context.Context, meetingID uuid.UUID, highlights []*entities.Highlight) error {
	r.replaces++
	r.byMeeting[meetingID] = highlights
	return nil
}

func (r *fakeHighlightRepo) ListByCycle(_ context.Context, cycleID uuid.UUID) ([]entities.Highlight, error) {
	var out []entities.Highlight
	for _, hs := range r.byMeeting {
		for _, h := range hs {
			if h.CycleID == cycleID {
				out = append(out, *h)
			}
		}
	}
	return out, nil
}

type fakeCycleRepo struct {
	active *entities.Cycle
}

func (r *fakeCycleRepo) FindActiveByHive(_ context.Context, _ uuid.UUID) (*entities.Cycle, error) {
	return r.active, nil
}

type fakeMemberRepo struct {
	members []entities.Member
}

func (r *fakeMemberRepo) ListByHive(_ context.Context, _ uuid.UUID) ([]entities.Member, error) {
	return r.members, nil
}

func (r *fakeMemberRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			cp := m
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTranscriber struct {
	jobID     string
	result    *transcription.Result
	submitErr error
	fetchErr  error
	submits   int
	lastURL   string
	lastFetch string
}

func (f *fakeTranscriber) Submit(_ context.Context, audioURL string) (string, error) {
	f.submits++
	f.lastURL = audioURL
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return f.jobID, nil
}

func (f *fakeTranscriber) Fetch(_ context.Context, jobID string) (*transcription.Result, error) {
	f.lastFetch = jobID
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.result, nil
}

type fakeSummarizer struct {
	response string
	err      error
	lastUser string
}

func (f *fakeSummarizer) Complete(_ context.Context, _ string, userContent string) (string, error) {
	f.lastUser = userContent
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeBlobStore struct{}

func (fakeBlobStore) SignedURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://blobs.test/" + objectKey, nil
}

type pipelineFixture struct {
	svc         Service
	meetings    *fakeMeetingRepo
	actionItems *fakeActionItemRepo
	highlights  *fakeHighlightRepo
	cycles      *fakeCycleRepo
	members     *fakeMemberRepo
	transcriber *fakeTranscriber
	summarizer  *fakeSummarizer
}

func newFixture(meeting *entities.Meeting) *pipelineFixture {
	alice := entities.Member{ID: uuid.New(), HiveID: meeting.HiveID, DisplayName: "Alice Tran"}
	bob := entities.Member{ID: uuid.New(), HiveID: meeting.HiveID, DisplayName: "Bob Nguyen"}

	f := &pipelineFixture{
		meetings:    newFakeMeetingRepo(meeting),
		actionItems: &fakeActionItemRepo{},
		highlights:  newFakeHighlightRepo(),
		cycles: &fakeCycleRepo{active: &entities.Cycle{
			ID:       uuid.New(),
			HiveID:   meeting.HiveID,
			MemberID: alice.ID,
			Status:   entities.CycleStatusActive,
		}},
		members: &fakeMemberRepo{members: []entities.Member{alice, bob}},
		transcriber: &fakeTranscriber{
			jobID: "job-abc",
			result: &transcription.Result{
				Text: "flat text",
				Utterances: []transcription.Utterance{
					{Speaker: "A", Text: "Let's sell at the market."},
					{Speaker: "B", Text: "I can order jars."},
				},
			},
		},
		summarizer: &fakeSummarizer{
			response: `{"summary":"Planned the market stall.","action_items":[{"description":"Order jars","assignee":"Bob","due_date":"2026-09-05"}],"wishes":[{"person":"Alice","description":"wants more shelf space"}],"highlights":["Stall booked","Jars sourced"]}`,
		},
	}

	f.svc = NewService(
		f.meetings, f.actionItems, f.highlights, f.cycles, f.members,
		f.transcriber, f.summarizer, fakeBlobStore{},
		time.Hour, zap.NewNop(),
	)
	return f
}

func pendingMeeting() *entities.Meeting {
	return entities.NewMeeting(uuid.New(), uuid.New(), time.Now(), "hive/audio.mp3")
}

func TestSubmitTranscription_MovesToTranscribing(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)

	jobID, err := f.svc.SubmitTranscription(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jobID != "job-abc" {
		t.Fatalf("unexpected job id %q", jobID)
	}
	if f.transcriber.lastURL != "https://blobs.test/hive/audio.mp3" {
		t.Fatalf("expected signed URL, got %q", f.transcriber.lastURL)
	}

	stored, _ := f.meetings.FindByID(context.Background(), meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateTranscribing {
		t.Fatalf("expected transcribing, got %s", stored.ProcessingState)
	}
	if stored.TranscriptJobID == nil || *stored.TranscriptJobID != "job-abc" {
		t.Fatalf("job id not recorded: %v", stored.TranscriptJobID)
	}
}

func TestSubmitTranscription_UnknownMeeting(t *testing.T) {
	f := newFixture(pendingMeeting())

	_, err := f.svc.SubmitTranscription(context.Background(), uuid.New())
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_NOT_FOUND {
		t.Fatalf("expected meeting-not-found, got %v", err)
	}
}

func TestSubmitTranscription_MissingAudio(t *testing.T) {
	meeting := pendingMeeting()
	meeting.AudioObjectKey = ""
	f := newFixture(meeting)

	_, err := f.svc.SubmitTranscription(context.Background(), meeting.ID)
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MISSING_AUDIO_OBJECT {
		t.Fatalf("expected missing-audio error, got %v", err)
	}
}

func TestSubmitTranscription_RejectsNonPendingStates(t *testing.T) {
	meeting := pendingMeeting()
	meeting.ProcessingState = entities.ProcessingStateSummarizing
	f := newFixture(meeting)

	_, err := f.svc.SubmitTranscription(context.Background(), meeting.ID)
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_MEETING_INVALID_STATE {
		t.Fatalf("expected invalid-state error, got %v", err)
	}
}

func TestSubmitTranscription_AllowsResubmissionAfterFailure(t *testing.T) {
	meeting := pendingMeeting()
	meeting.ProcessingState = entities.ProcessingStateFailed
	f := newFixture(meeting)

	if _, err := f.svc.SubmitTranscription(context.Background(), meeting.ID); err != nil {
		t.Fatalf("re-submission after failure should succeed, got %v", err)
	}

	stored, _ := f.meetings.FindByID(context.Background(), meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateTranscribing {
		t.Fatalf("expected transcribing, got %s", stored.ProcessingState)
	}
}

func TestSubmitTranscription_NoStateChangeOnProviderFailure(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	f.transcriber.submitErr = stdErrors.New("provider down")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err == nil {
		t.Fatal("expected submission error")
	}

	stored, _ := f.meetings.FindByID(context.Background(), meeting.ID)
	if stored.ProcessingState != entities.ProcessingStatePending {
		t.Fatalf("failed submission must not change state, got %s", stored.ProcessingState)
	}
	if stored.TranscriptJobID != nil {
		t.Fatalf("failed submission must not record a job id")
	}
}

func TestHandleTranscriptCompleted_FullPipeline(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateComplete {
		t.Fatalf("expected complete, got %s", stored.ProcessingState)
	}

	wantTranscript := "Speaker A: Let's sell at the market.\nSpeaker B: I can order jars."
	if stored.RawTranscript == nil || *stored.RawTranscript != wantTranscript {
		t.Fatalf("unexpected transcript %v", stored.RawTranscript)
	}
	if stored.AttributedTranscript == nil || *stored.AttributedTranscript != wantTranscript {
		t.Fatalf("attributed transcript should default to raw, got %v", stored.AttributedTranscript)
	}
	if f.summarizer.lastUser != wantTranscript {
		t.Fatalf("summarizer should receive the formatted transcript, got %q", f.summarizer.lastUser)
	}

	var analysis entities.MeetingAnalysis
	if err := json.Unmarshal(stored.Summary, &analysis); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if analysis.Summary != "Planned the market stall." {
		t.Fatalf("unexpected stored summary %q", analysis.Summary)
	}
	if len(analysis.Wishes) != 1 || analysis.Wishes[0].Person != "Alice" {
		t.Fatalf("unexpected wishes %+v", analysis.Wishes)
	}

	// action items: assignee resolved to Bob, due date parsed
	if len(f.actionItems.items) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(f.actionItems.items))
	}
	item := f.actionItems.items[0]
	if item.AssigneeID == nil || *item.AssigneeID != f.members.members[1].ID {
		t.Fatalf("assignee not resolved to Bob: %v", item.AssigneeID)
	}
	if item.DueDate == nil || item.DueDate.Format("2006-01-02") != "2026-09-05" {
		t.Fatalf("due date not parsed: %v", item.DueDate)
	}

	// highlights credited to the active cycle in order
	hs := f.highlights.byMeeting[meeting.ID]
	if len(hs) != 2 {
		t.Fatalf("expected 2 highlights, got %d", len(hs))
	}
	if hs[0].Content != "Stall booked" || hs[0].DisplayOrder != 0 {
		t.Fatalf("unexpected first highlight %+v", hs[0])
	}
	if hs[1].DisplayOrder != 1 {
		t.Fatalf("unexpected order %d", hs[1].DisplayOrder)
	}
	if hs[0].CycleID != f.cycles.active.ID {
		t.Fatalf("highlight not credited to active cycle")
	}
}

func TestHandleTranscriptCompleted_UnknownJobIsBenign(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)

	err := f.svc.HandleTranscriptCompleted(context.Background(), "no-such-job")
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_TRANSCRIPT_JOB_UNKNOWN {
		t.Fatalf("expected unknown-job error, got %v", err)
	}

	stored, _ := f.meetings.FindByID(context.Background(), meeting.ID)
	if stored.ProcessingState != entities.ProcessingStatePending {
		t.Fatalf("unknown job must leave meetings untouched, got %s", stored.ProcessingState)
	}
	if len(f.actionItems.items) != 0 || f.highlights.replaces != 0 {
		t.Fatal("unknown job must have no side effects")
	}
}

func TestHandleTranscriptCompleted_FlatTextFallback(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	f.transcriber.result = &transcription.Result{Text: "one unbroken paragraph"}
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.RawTranscript == nil || *stored.RawTranscript != "one unbroken paragraph" {
		t.Fatalf("expected flat text transcript, got %v", stored.RawTranscript)
	}
}

func TestHandleTranscriptCompleted_SummarizerFailureFailsMeeting(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	f.summarizer.err = stdErrors.New("model unavailable")
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	err := f.svc.HandleTranscriptCompleted(ctx, "job-abc")
	var appErr apperrors.AppError
	if !stdErrors.As(err, &appErr) || appErr.Code != apperrors.ErrorCode_PROCESSING_FAILED {
		t.Fatalf("expected processing-failed, got %v", err)
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateFailed {
		t.Fatalf("expected failed, got %s", stored.ProcessingState)
	}
}

func TestHandleTranscriptCompleted_MalformedAnalysisStillCompletes(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	f.summarizer.response = "I could not produce JSON today, sorry."
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("malformed model output must not fail the pipeline: %v", err)
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateComplete {
		t.Fatalf("expected complete, got %s", stored.ProcessingState)
	}

	var analysis entities.MeetingAnalysis
	if err := json.Unmarshal(stored.Summary, &analysis); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if analysis.Summary != "I could not produce JSON today, sorry." {
		t.Fatalf("degraded summary not preserved, got %q", analysis.Summary)
	}
	if len(f.actionItems.items) != 0 {
		t.Fatal("degraded parse must not create action items")
	}
}

func TestHandleTranscriptCompleted_NoActiveCycleSkipsHighlights(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	f.cycles.active = nil
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("completion failed: %v", err)
	}

	if f.highlights.replaces != 0 {
		t.Fatal("highlights must be skipped without an active cycle")
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateComplete {
		t.Fatalf("expected complete, got %s", stored.ProcessingState)
	}
}

func TestHandleTranscriptCompleted_ReplayReplacesHighlights(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if err := f.svc.HandleTranscriptCompleted(ctx, "job-abc"); err != nil {
		t.Fatalf("replayed completion failed: %v", err)
	}

	// highlights are replaced, not accumulated
	if f.highlights.replaces != 2 {
		t.Fatalf("expected 2 replace calls, got %d", f.highlights.replaces)
	}
	if got := len(f.highlights.byMeeting[meeting.ID]); got != 2 {
		t.Fatalf("replay must not grow highlights, got %d", got)
	}

	// action items are appended per pass
	if got := len(f.actionItems.items); got != 2 {
		t.Fatalf("expected one item per pass, got %d", got)
	}
}

func TestHandleTranscriptError_FailsMeeting(t *testing.T) {
	meeting := pendingMeeting()
	f := newFixture(meeting)
	ctx := context.Background()

	if _, err := f.svc.SubmitTranscription(ctx, meeting.ID); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.svc.HandleTranscriptError(ctx, "job-abc", "audio unreadable"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, _ := f.meetings.FindByID(ctx, meeting.ID)
	if stored.ProcessingState != entities.ProcessingStateFailed {
		t.Fatalf("expected failed, got %s", stored.ProcessingState)
	}
}

func TestFormatTranscript_SpeakerLines(t *testing.T) {
	got := formatTranscript(&transcription.Result{
		Utterances: []transcription.Utterance{
			{Speaker: "A", Text: "Hello."},
			{Speaker: "B", Text: "Hi."},
		},
	})
	want := "Speaker A: Hello.\nSpeaker B: Hi."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !strings.Contains(got, "Speaker A:") {
		t.Fatal("speaker marker missing")
	}
}
