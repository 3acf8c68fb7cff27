package youtube

import (
	"context"
	"fmt"

	"linkedpost/domain/repository"
	"linkedpost/infrastructure/logger"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client is a read-only YouTube Data API client (API-key mode, no OAuth).
type Client struct {
	service *youtube.Service
}

// NewYouTubeClient creates the metadata fetcher backed by the YouTube Data
// API v3.
func NewYouTubeClient(ctx context.Context, apiKey string) (repository.IVideoMetadata, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// FetchVideoDetails retrieves the snippet for a video id and returns its
// title and description. An unknown id yields empty strings without error;
// transport and auth failures are returned to the caller, which treats them
// as absent data rather than a hard failure.
func (c *Client) FetchVideoDetails(ctx context.Context, videoID string) (string, string, error) {
	if videoID == "" {
		return "", "", fmt.Errorf("video ID is required")
	}

	response, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("videoId", videoID).Error("Error fetching YouTube video details")
		return "", "", fmt.Errorf("failed to fetch video details: %w", err)
	}
	if len(response.Items) == 0 {
		logger.GetLogger().WithField("videoId", videoID).Warn("Video not found on YouTube")
		return "", "", nil
	}

	snippet := response.Items[0].Snippet
	if snippet == nil {
		return "", "", nil
	}
	return snippet.Title, snippet.Description, nil
}
