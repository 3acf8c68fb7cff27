package model

// Session is the per-user interactive state, threaded explicitly through the
// usecases. It lives for the process lifetime only; there is no persistence.
type Session struct {
	ID string `json:"id"`

	// OAuth subsystem fields. OAuthState is the single-use anti-CSRF token
	// issued with the most recent login URL. AccessToken, UserName and
	// UserURN are only ever set together after a fully successful login.
	OAuthState  string `json:"-"`
	AccessToken string `json:"-"`
	UserName    string `json:"user_name,omitempty"`
	UserURN     string `json:"-"`

	// Post is the most recently generated post, kept for publish/retry.
	Post *GeneratedPost `json:"post,omitempty"`
}

// LoggedIn reports whether the session holds a complete LinkedIn identity.
func (s *Session) LoggedIn() bool {
	return s.AccessToken != "" && s.UserURN != ""
}

// ClearAuth unconditionally drops every OAuth-related field, returning the
// session to the logged-out state. The generated post survives.
func (s *Session) ClearAuth() {
	s.OAuthState = ""
	s.AccessToken = ""
	s.UserName = ""
	s.UserURN = ""
}

// AuthCallback is the redirect event delivered by the OAuth provider, decoupled
// from the transport that carried it.
type AuthCallback struct {
	Code  string
	State string
}
