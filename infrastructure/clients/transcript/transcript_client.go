package transcript

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"linkedpost/domain/repository"
	"linkedpost/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

// Client talks to an external transcript API that returns the caption
// segments of a YouTube video in playback order.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewTranscriptClient(baseURL, apiKey string) repository.ITranscript {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

type transcriptRequest struct {
	VideoID string `url:"video_id"`
	APIKey  string `url:"api_key,omitempty"`
}

// segment mirrors one caption entry. Only the text is consumed; start and
// duration are part of the wire format but unused.
type segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

type apiError struct {
	Error string `json:"error"`
}

// FetchTranscript returns the full transcript, segments joined with single
// spaces in the order the API returned them. Failures map onto the taxonomy
// in the repository package: disabled, not found, or anything else.
func (c *Client) FetchTranscript(ctx context.Context, videoID string) (string, error) {
	params, err := query.Values(transcriptRequest{VideoID: videoID, APIKey: c.apiKey})
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transcript?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build transcript request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", videoID).Error("Transcript request failed")
		return "", fmt.Errorf("transcript request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, body)
	}

	var segments []segment
	if err := json.Unmarshal(body, &segments); err != nil {
		return "", fmt.Errorf("failed to parse transcript response: %w", err)
	}
	if len(segments) == 0 {
		return "", repository.ErrNoTranscript
	}

	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}
	return strings.Join(texts, " "), nil
}

// classifyError distinguishes uploader-disabled captions from a simply
// missing transcript (wrong language included) from everything else.
func classifyError(status int, body []byte) error {
	var apiErr apiError
	_ = json.Unmarshal(body, &apiErr)
	switch apiErr.Error {
	case "transcripts_disabled":
		return repository.ErrTranscriptsDisabled
	case "no_transcript_found":
		return repository.ErrNoTranscript
	}
	if status == http.StatusNotFound {
		return repository.ErrNoTranscript
	}
	return fmt.Errorf("transcript API returned status %d: %s", status, strings.TrimSpace(string(body)))
}
