package transcription

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/lwhela12/the-hive-api/pkg/config"
)

// Utterance is one diarized speech segment tagged with an anonymous speaker
// label ("A", "B", ...).
type Utterance struct {
	Speaker string
	Text    string
}

// Result is a fetched transcript. Utterances may be empty when the provider
// returned no speaker breakdown; Text always carries the flat transcript.
type Result struct {
	Text       string
	Utterances []Utterance
}

// AssemblyAIProvider wraps the official AssemblyAI SDK for the two calls the
// pipeline makes: async submission with a webhook, and the completion fetch.
type AssemblyAIProvider struct {
	client     *aai.Client
	webhookURL string
}

// NewAssemblyAIProvider creates a provider from config. webhookURL is the
// full callback address registered with every submission.
func NewAssemblyAIProvider(cfg *config.AssemblyAIConfig, webhookURL string) *AssemblyAIProvider {
	return &AssemblyAIProvider{
		client:     aai.NewClient(cfg.APIKey),
		webhookURL: webhookURL,
	}
}

// Submit asks AssemblyAI to transcribe the audio at audioURL with speaker
// diarization, registering the callback address. Returns the provider's
// transcript job id without waiting for completion.
func (p *AssemblyAIProvider) Submit(ctx context.Context, audioURL string) (string, error) {
	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(true),
		WebhookURL:    &p.webhookURL,
	}

	transcript, err := p.client.Transcripts.SubmitFromURL(ctx, audioURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai submit: %w", err)
	}
	if transcript.ID == nil || *transcript.ID == "" {
		return "", fmt.Errorf("assemblyai submit: response missing transcript id")
	}
	return *transcript.ID, nil
}

// Fetch retrieves the full diarized result for a completed job
func (p *AssemblyAIProvider) Fetch(ctx context.Context, jobID string) (*Result, error) {
	transcript, err := p.client.Transcripts.Get(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("assemblyai fetch: %w", err)
	}

	result := &Result{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	for _, utt := range transcript.Utterances {
		u := Utterance{}
		if utt.Speaker != nil {
			u.Speaker = *utt.Speaker
		}
		if utt.Text != nil {
			u.Text = *utt.Text
		}
		result.Utterances = append(result.Utterances, u)
	}
	return result, nil
}
