package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"linkedpost/domain/model"
)

func TestParseVideoReference(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		valid   bool
		videoID string
	}{
		{"long form", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", true, "dQw4w9WgXcQ"},
		{"long form without www", "https://youtube.com/watch?v=abc123", true, "abc123"},
		{"long form extra params", "https://www.youtube.com/watch?v=first&t=42s&list=PL123", true, "first"},
		{"short form", "https://youtu.be/dQw4w9WgXcQ", true, "dQw4w9WgXcQ"},
		{"short form with query", "https://youtu.be/xyz789?t=10", true, "xyz789"},
		{"wrong host", "https://vimeo.com/watch?v=abc", false, ""},
		{"wrong path", "https://www.youtube.com/playlist?list=PL123", false, ""},
		{"missing v param", "https://www.youtube.com/watch?list=PL123", false, ""},
		{"empty v param", "https://www.youtube.com/watch?v=", false, ""},
		{"short form empty path", "https://youtu.be/", false, ""},
		{"channel path rejected", "https://www.youtube.com/channel/UC123", false, ""},
		{"not a url", "not a url at all", false, ""},
		{"empty string", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := model.ParseVideoReference(tt.raw)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.videoID, ref.VideoID)
			assert.Equal(t, tt.raw, ref.RawURL)
		})
	}
}

func TestParseVideoReference_FirstVValueWins(t *testing.T) {
	ref, ok := model.ParseVideoReference("https://www.youtube.com/watch?v=first&v=second")
	assert.True(t, ok)
	assert.Equal(t, "first", ref.VideoID)
}

func TestVideoContent_HasMetadata(t *testing.T) {
	assert.True(t, model.VideoContent{Title: "t", Description: "d"}.HasMetadata())
	assert.False(t, model.VideoContent{Title: "t"}.HasMetadata())
	assert.False(t, model.VideoContent{Description: "d"}.HasMetadata())
	assert.False(t, model.VideoContent{}.HasMetadata())
}

func TestIsFailureSentinel(t *testing.T) {
	assert.True(t, model.IsFailureSentinel(model.SentinelInvalidURL))
	assert.True(t, model.IsFailureSentinel(model.SentinelGenerationEmpty))
	assert.True(t, model.IsFailureSentinel(model.SentinelGenerationFailed))
	assert.False(t, model.IsFailureSentinel("A perfectly good LinkedIn post."))
	assert.False(t, model.IsFailureSentinel(""))
}
