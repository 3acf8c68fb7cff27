package repository

import "context"

// IPostGenerator turns video title/description (and optionally a transcript)
// into LinkedIn post text via a generative-text backend. transcript may be
// empty. Implementations never fabricate metadata; they only transform what
// they are given.
type IPostGenerator interface {
	GeneratePost(ctx context.Context, title, description, transcript string) (string, error)
}
