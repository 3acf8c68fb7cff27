package repository

import (
	"context"
	"errors"
)

// Transcript failure taxonomy. All three outcomes leave the pipeline free to
// proceed without a transcript; only the user-facing message differs.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrNoTranscript        = errors.New("no transcript found for this video")
)

// ITranscript fetches the full transcript text for a video id, segments
// already joined in API order.
type ITranscript interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}
