package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"linkedpost/domain/model"
	"linkedpost/domain/repository"
	"linkedpost/infrastructure/configuration"
	"linkedpost/infrastructure/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

var (
	// ErrStateMissing means a callback arrived while no login was pending.
	ErrStateMissing = errors.New("state missing: no login attempt pending")
	// ErrStateMismatch means the callback state does not match the issued one.
	ErrStateMismatch = errors.New("state mismatch: rejecting callback")
)

// IAuthUsecase drives the three-legged OAuth2 flow against LinkedIn and owns
// the session's credential lifecycle.
type IAuthUsecase interface {
	LoginURL(sess *model.Session) string
	HandleCallback(ctx context.Context, sess *model.Session, cb model.AuthCallback) error
	Logout(sess *model.Session)
}

// IOAuthConfig is the slice of *oauth2.Config the usecase needs; extracted so
// tests can substitute the token endpoint.
type IOAuthConfig interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error)
}

// AuthUsecase implements the login state machine:
// LoggedOut -> AwaitingCallback (URL issued) -> LoggedIn (token + identity).
type AuthUsecase struct {
	oauth    IOAuthConfig
	linkedIn repository.ILinkedIn
}

func NewAuthUsecase(cfg configuration.LinkedIn, linkedInClient repository.ILinkedIn) IAuthUsecase {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURI,
		Scopes:       []string{"openid", "profile", "w_member_social"},
		Endpoint:     linkedin.Endpoint,
	}
	return &AuthUsecase{oauth: oauthConfig, linkedIn: linkedInClient}
}

// NewAuthUsecaseWithConfig injects a custom OAuth config (tests).
func NewAuthUsecaseWithConfig(oauth IOAuthConfig, linkedInClient repository.ILinkedIn) IAuthUsecase {
	return &AuthUsecase{oauth: oauth, linkedIn: linkedInClient}
}

// LoginURL issues a fresh anti-CSRF state token and the matching
// authorization URL. Any previously issued, unconsumed state is invalidated.
func (u *AuthUsecase) LoginURL(sess *model.Session) string {
	state := randomState()
	sess.OAuthState = state
	return u.oauth.AuthCodeURL(state)
}

// HandleCallback consumes the provider redirect. The recorded state token is
// single-use: it is cleared before the exchange, whether or not the exchange
// succeeds. Any failure after the exchange purges every credential field so
// the session never holds a token without an identity.
func (u *AuthUsecase) HandleCallback(ctx context.Context, sess *model.Session, cb model.AuthCallback) error {
	if sess.OAuthState == "" {
		return ErrStateMissing
	}
	if cb.State != sess.OAuthState {
		sess.OAuthState = ""
		logger.GetLogger().WithField("sessionId", sess.ID).Warn("OAuth state mismatch; rejecting callback")
		return ErrStateMismatch
	}
	sess.OAuthState = ""

	token, err := u.oauth.Exchange(ctx, cb.Code)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("LinkedIn token exchange failed")
		return fmt.Errorf("token exchange failed: %w", err)
	}
	sess.AccessToken = token.AccessToken

	profile, err := u.linkedIn.FetchProfile(ctx, sess.AccessToken)
	if err != nil {
		sess.ClearAuth()
		logger.GetLogger().WithField("error", err).Error("LinkedIn profile fetch failed; discarding token")
		return fmt.Errorf("profile fetch failed: %w", err)
	}
	if profile.URN == "" {
		sess.ClearAuth()
		return errors.New("profile fetch returned no member identifier; discarding token")
	}

	sess.UserName = profile.DisplayName
	sess.UserURN = profile.URN
	logger.GetLogger().WithField("sessionId", sess.ID).Info("LinkedIn login completed")
	return nil
}

// Logout unconditionally drops all OAuth fields from the session.
func (u *AuthUsecase) Logout(sess *model.Session) {
	sess.ClearAuth()
}

func randomState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
