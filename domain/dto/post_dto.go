package dto

// GeneratePostRequest asks for a post derived from a YouTube video link.
type GeneratePostRequest struct {
	URL string `json:"url" binding:"required"`
}

// ManualPostRequest carries the user-provided title and summary used by the
// template fallback when video metadata could not be fetched.
type ManualPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary" binding:"required"`
}

// PublishPostRequest publishes text to LinkedIn. Text is optional; when empty
// the post currently held in the session is published.
type PublishPostRequest struct {
	Text string `json:"text"`
}

// PostResponse is the generated post returned to the client.
type PostResponse struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ErrorResponse is the uniform error body. ManualInputRequired flags the
// distinct "metadata unavailable" outcome so the client can collect
// title+summary instead of treating it as a hard failure.
type ErrorResponse struct {
	Error               string `json:"error"`
	ManualInputRequired bool   `json:"manual_input_required,omitempty"`
}
