package repository

import "context"

// LinkedInProfile is the identity extracted from the userinfo endpoint.
// URN is the member identifier used as the author of published posts.
type LinkedInProfile struct {
	DisplayName string
	URN         string
}

// ILinkedIn covers the authenticated LinkedIn calls: identity lookup and
// publishing a plain-text post on the member's behalf.
type ILinkedIn interface {
	FetchProfile(ctx context.Context, accessToken string) (*LinkedInProfile, error)
	Publish(ctx context.Context, accessToken, authorURN, text string) error
}
