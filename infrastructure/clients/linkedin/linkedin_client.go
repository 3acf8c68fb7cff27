package linkedin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"linkedpost/domain/repository"
	"linkedpost/infrastructure/logger"
)

// Client performs the authenticated LinkedIn calls: OpenID userinfo and
// UGC post creation.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewLinkedInClient(baseURL string) repository.ILinkedIn {
	if baseURL == "" {
		baseURL = "https://api.linkedin.com"
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

type userinfoResponse struct {
	Sub       string `json:"sub"`
	Name      string `json:"name"`
	GivenName string `json:"given_name"`
}

// FetchProfile resolves the member identity behind an access token. The
// display name falls back from full name to given name to a generic
// placeholder; a missing subject identifier is an error because publishing
// requires an author URN.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*repository.LinkedInProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v2/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read userinfo response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo fetch failed: %s", extractAPIMessage(resp.StatusCode, body))
	}

	var info userinfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse userinfo response: %w", err)
	}
	if info.Sub == "" {
		return nil, fmt.Errorf("userinfo response missing subject identifier")
	}

	name := info.Name
	if name == "" {
		name = info.GivenName
	}
	if name == "" {
		name = "LinkedIn Member"
	}
	return &repository.LinkedInProfile{
		DisplayName: name,
		URN:         "urn:li:person:" + info.Sub,
	}, nil
}

// ugcPost is the fixed payload shape: plain-text commentary, no media,
// visible to connections.
type ugcPost struct {
	Author          string          `json:"author"`
	LifecycleState  string          `json:"lifecycleState"`
	SpecificContent specificContent `json:"specificContent"`
	Visibility      visibility      `json:"visibility"`
}

type specificContent struct {
	ShareContent shareContent `json:"com.linkedin.ugc.ShareContent"`
}

type shareContent struct {
	ShareCommentary    textHolder `json:"shareCommentary"`
	ShareMediaCategory string     `json:"shareMediaCategory"`
}

type textHolder struct {
	Text string `json:"text"`
}

type visibility struct {
	MemberNetworkVisibility string `json:"com.linkedin.ugc.MemberNetworkVisibility"`
}

// Publish creates a UGC post authored by authorURN. Any non-2xx response is
// surfaced with the most specific message found in the body.
func (c *Client) Publish(ctx context.Context, accessToken, authorURN, text string) error {
	payload, err := json.Marshal(ugcPost{
		Author:         authorURN,
		LifecycleState: "PUBLISHED",
		SpecificContent: specificContent{
			ShareContent: shareContent{
				ShareCommentary:    textHolder{Text: text},
				ShareMediaCategory: "NONE",
			},
		},
		Visibility: visibility{MemberNetworkVisibility: "CONNECTIONS"},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/ugcPosts", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("publish request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.GetLogger().WithField("status", resp.StatusCode).WithField("body", string(body)).Error("LinkedIn publish failed")
		return fmt.Errorf("publish failed: %s", extractAPIMessage(resp.StatusCode, body))
	}
	return nil
}

// extractAPIMessage pulls the message field from a LinkedIn error body,
// falling back to the HTTP status text.
func extractAPIMessage(status int, body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return fmt.Sprintf("%d %s", status, http.StatusText(status))
}
