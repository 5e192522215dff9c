package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Vovarama1992/lecture_notes/internal/notes"
	json "github.com/goccy/go-json"
)

const defaultDeepgramURL = "https://api.deepgram.com"

// DeepgramClient is an alternative transcription stage.
type DeepgramClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewDeepgramClient(apiKey, baseURL string) *DeepgramClient {
	if baseURL == "" {
		baseURL = defaultDeepgramURL
	}
	return &DeepgramClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   "nova-2",
		client:  &http.Client{},
	}
}

func (c *DeepgramClient) Transcribe(ctx context.Context, m notes.Media) (notes.Transcript, error) {
	q := url.Values{}
	q.Set("model", c.model)
	q.Set("smart_format", "true")
	q.Set("detect_language", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/listen?"+q.Encode(), m.Data)
	if err != nil {
		return "", err
	}
	if m.Size > 0 {
		req.ContentLength = m.Size
	}

	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", m.ContentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepgram request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepgram error: status %d: %s", resp.StatusCode, body)
	}

	var parsed struct {
		Results struct {
			Channels []struct {
				Alternatives []struct {
					Transcript string `json:"transcript"`
				} `json:"alternatives"`
			} `json:"channels"`
		} `json:"results"`
	}

	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode deepgram: %w", err)
	}

	if len(parsed.Results.Channels) == 0 ||
		len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("empty transcript")
	}

	return notes.Transcript(parsed.Results.Channels[0].Alternatives[0].Transcript), nil
}
