package dto

// SessionResponse describes the current session to the client.
type SessionResponse struct {
	LoggedIn bool   `json:"logged_in"`
	UserName string `json:"user_name,omitempty"`
	HasPost  bool   `json:"has_post"`
}

// AuthURLResponse carries a freshly issued LinkedIn authorization URL.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}
