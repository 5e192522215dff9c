package ai

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Vovarama1992/lecture_notes/internal/notes"
	openai "github.com/sashabaranov/go-openai"
)

const notesPrompt = "Convert the following transcription into well-formatted Markdown notes:\n\n%s"

type OpenAIConfig struct {
	APIKey          string
	BaseURL         string
	TranscribeModel string
	NotesModel      string
	MaxTokens       int
	// Temperature defaults to 0.5 when nil. An explicit 0 is honoured.
	Temperature *float32
}

// OpenAIClient serves both pipeline stages: Whisper for the transcript
// and a chat model for the notes.
type OpenAIClient struct {
	client          *openai.Client
	transcribeModel string
	notesModel      string
	maxTokens       int
	temperature     float32
}

func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}

	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = openai.Whisper1
	}
	if cfg.NotesModel == "" {
		cfg.NotesModel = openai.GPT4oMini
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 1500
	}
	temperature := float32(0.5)
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	// go-openai drops a zero temperature from the request, which the API
	// then reads as its own default of 1.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return &OpenAIClient{
		client:          openai.NewClientWithConfig(oc),
		transcribeModel: cfg.TranscribeModel,
		notesModel:      cfg.NotesModel,
		maxTokens:       cfg.MaxTokens,
		temperature:     temperature,
	}
}

func (c *OpenAIClient) Transcribe(ctx context.Context, m notes.Media) (notes.Transcript, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcribeModel,
		FilePath: m.UploadName(),
		Reader:   m.Data,
	})
	if err != nil {
		return "", fmt.Errorf("whisper (%s): %w", analyzeOpenAIError(err), err)
	}
	return notes.Transcript(resp.Text), nil
}

func (c *OpenAIClient) GenerateNotes(ctx context.Context, t notes.Transcript) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.notesModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(notesPrompt, t)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%s (%s): %w", c.notesModel, analyzeOpenAIError(err), err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in completion")
	}
	return resp.Choices[0].Message.Content, nil
}

// analyzeOpenAIError gives operators a short hint about a failed call.
func analyzeOpenAIError(err error) string {
	status := 0

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}

	switch {
	case status == 401:
		return "invalid API key"
	case status == 404:
		return "model not found"
	case status == 413:
		return "file rejected as too large"
	case status == 429:
		return "rate limit or quota exceeded"
	case status == 400:
		return "bad request"
	case status >= 500:
		return "provider internal error"
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "unknown error"
}
