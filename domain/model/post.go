package model

import "strings"

// PostSource records how a generated post came to be.
type PostSource string

const (
	PostSourceGenerated PostSource = "generated"
	PostSourceManual    PostSource = "manual"
	PostSourceError     PostSource = "error"
)

// GeneratedPost is the LinkedIn post text held in the session until it is
// regenerated or published.
type GeneratedPost struct {
	Text   string     `json:"text"`
	Source PostSource `json:"source"`
}

// Sentinel failure strings returned inline by the generation path. Kept as
// exact strings because the orchestrator must recognize them in model output.
const (
	SentinelInvalidURL       = "Invalid YouTube URL provided. Please provide a valid YouTube video link."
	SentinelGenerationEmpty  = "Gemini API failed to generate a post. Please try again or check your API key and prompt."
	SentinelGenerationFailed = "Error generating post. Please check your Gemini API key and connection."
)

// IsFailureSentinel reports whether text is one of the known failure sentinels
// and therefore not a usable post.
func IsFailureSentinel(text string) bool {
	switch strings.TrimSpace(text) {
	case SentinelInvalidURL, SentinelGenerationEmpty, SentinelGenerationFailed:
		return true
	}
	return false
}
