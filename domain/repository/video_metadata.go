package repository

import "context"

// IVideoMetadata fetches title and description for a video id from the
// video-catalog API. Implementations return empty strings (not an error) when
// the video simply does not exist.
type IVideoMetadata interface {
	FetchVideoDetails(ctx context.Context, videoID string) (title, description string, err error)
}
