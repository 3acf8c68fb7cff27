package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"linkedpost/domain/model"
	"linkedpost/domain/repository"
	"linkedpost/usecase"
)

type MockOAuthConfig struct {
	mock.Mock
}

func (m *MockOAuthConfig) AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthConfig) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func newAuthUsecase() (*MockOAuthConfig, *MockLinkedIn, usecase.IAuthUsecase) {
	oauthConfig := new(MockOAuthConfig)
	linkedIn := new(MockLinkedIn)
	return oauthConfig, linkedIn, usecase.NewAuthUsecaseWithConfig(oauthConfig, linkedIn)
}

func TestLoginURL_IssuesFreshStateEachCall(t *testing.T) {
	oauthConfig, _, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1"}

	oauthConfig.On("AuthCodeURL", mock.AnythingOfType("string")).
		Return("https://www.linkedin.com/oauth/v2/authorization?state=x").Twice()

	uc.LoginURL(sess)
	first := sess.OAuthState
	uc.LoginURL(sess)
	second := sess.OAuthState

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	// Re-rendering the login link invalidates the earlier state token.
	assert.NotEqual(t, first, second)
}

func TestHandleCallback_StateMissing(t *testing.T) {
	oauthConfig, _, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1"}

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "code", State: "anything"})

	assert.ErrorIs(t, err, usecase.ErrStateMissing)
	assert.Empty(t, sess.AccessToken)
	oauthConfig.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestHandleCallback_StateMismatchNeverStoresToken(t *testing.T) {
	oauthConfig, _, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1", OAuthState: "expected"}

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "code", State: "forged"})

	assert.ErrorIs(t, err, usecase.ErrStateMismatch)
	assert.Empty(t, sess.AccessToken)
	// The recorded state is cleared even on rejection; it is single-use.
	assert.Empty(t, sess.OAuthState)
	oauthConfig.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
}

func TestHandleCallback_ExchangeFailure(t *testing.T) {
	oauthConfig, linkedIn, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1", OAuthState: "state1"}

	oauthConfig.On("Exchange", mock.Anything, "badcode").
		Return(nil, errors.New("invalid_grant")).Once()

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "badcode", State: "state1"})

	assert.ErrorContains(t, err, "token exchange failed")
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.OAuthState)
	linkedIn.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
}

func TestHandleCallback_ProfileFetchFailurePurgesToken(t *testing.T) {
	oauthConfig, linkedIn, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1", OAuthState: "state1"}

	oauthConfig.On("Exchange", mock.Anything, "code").
		Return(&oauth2.Token{AccessToken: "tok"}, nil).Once()
	linkedIn.On("FetchProfile", mock.Anything, "tok").
		Return(nil, errors.New("503 Service Unavailable")).Once()

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "code", State: "state1"})

	assert.ErrorContains(t, err, "profile fetch failed")
	// No orphaned "logged in but unidentified" state.
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.UserName)
	assert.Empty(t, sess.UserURN)
	assert.False(t, sess.LoggedIn())
}

func TestHandleCallback_MissingURNPurgesEverything(t *testing.T) {
	oauthConfig, linkedIn, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1", OAuthState: "state1"}

	oauthConfig.On("Exchange", mock.Anything, "code").
		Return(&oauth2.Token{AccessToken: "tok"}, nil).Once()
	linkedIn.On("FetchProfile", mock.Anything, "tok").
		Return(&repository.LinkedInProfile{DisplayName: "Jane", URN: ""}, nil).Once()

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "code", State: "state1"})

	assert.Error(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.UserName)
	assert.False(t, sess.LoggedIn())
}

func TestHandleCallback_Success(t *testing.T) {
	oauthConfig, linkedIn, uc := newAuthUsecase()
	sess := &model.Session{ID: "s1", OAuthState: "state1"}

	oauthConfig.On("Exchange", mock.Anything, "code").
		Return(&oauth2.Token{AccessToken: "tok"}, nil).Once()
	linkedIn.On("FetchProfile", mock.Anything, "tok").
		Return(&repository.LinkedInProfile{DisplayName: "Jane Doe", URN: "urn:li:person:42"}, nil).Once()

	err := uc.HandleCallback(context.Background(), sess, model.AuthCallback{Code: "code", State: "state1"})

	assert.NoError(t, err)
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "Jane Doe", sess.UserName)
	assert.Equal(t, "urn:li:person:42", sess.UserURN)
	// Consumed state is discarded after a successful login too.
	assert.Empty(t, sess.OAuthState)
	// Invariant: a stored token always comes with an identifier.
	assert.NotEmpty(t, sess.UserURN)
}

func TestLogout_ClearsAllAuthFields(t *testing.T) {
	_, _, uc := newAuthUsecase()
	sess := &model.Session{
		ID:          "s1",
		OAuthState:  "state",
		AccessToken: "tok",
		UserName:    "Jane Doe",
		UserURN:     "urn:li:person:42",
		Post:        &model.GeneratedPost{Text: "keep me", Source: model.PostSourceGenerated},
	}

	uc.Logout(sess)

	assert.Empty(t, sess.OAuthState)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.UserName)
	assert.Empty(t, sess.UserURN)
	assert.False(t, sess.LoggedIn())
	// The generated post is not part of the auth subsystem.
	assert.NotNil(t, sess.Post)
}
