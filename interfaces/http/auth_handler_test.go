package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"linkedpost/domain/model"
	"linkedpost/domain/repository"
	"linkedpost/infrastructure/configuration"
	"linkedpost/infrastructure/session"
	httpHandler "linkedpost/interfaces/http"
	"linkedpost/interfaces/middleware"
	"linkedpost/usecase"
)

// fakeLinkedIn is a hand-rolled stub; the auth flow only needs FetchProfile.
type fakeLinkedIn struct {
	profile *repository.LinkedInProfile
	err     error
}

func (f *fakeLinkedIn) FetchProfile(ctx context.Context, accessToken string) (*repository.LinkedInProfile, error) {
	return f.profile, f.err
}

func (f *fakeLinkedIn) Publish(ctx context.Context, accessToken, authorURN, text string) error {
	return nil
}

func newAuthRouter(li repository.ILinkedIn) (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	store := session.NewStore()
	authUC := usecase.NewAuthUsecase(testLinkedInConfig(), li)
	handler := httpHandler.NewLinkedInAuthHandler(authUC, "/")

	router := gin.New()
	router.Use(middleware.Session(store))
	router.GET("/auth/linkedin", handler.GetAuthURL)
	router.GET("/auth/linkedin/callback", handler.Callback)
	router.POST("/auth/logout", handler.Logout)
	return router, store
}

func TestGetAuthURL_IssuesStateAndCookie(t *testing.T) {
	router, store := newAuthRouter(&fakeLinkedIn{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/linkedin", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["auth_url"], "state=")
	assert.Contains(t, body["auth_url"], "client_id=client-id")

	cookie := sessionCookieFrom(t, w)
	sess := store.Get(cookie)
	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.OAuthState)
	assert.Contains(t, body["auth_url"], sess.OAuthState)
}

func TestCallback_StateMismatchRedirectsWithoutToken(t *testing.T) {
	router, store := newAuthRouter(&fakeLinkedIn{})

	// First obtain a session with a pending state.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/linkedin", nil))
	cookie := sessionCookieFrom(t, w)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/linkedin/callback?code=c&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: cookie})
	router.ServeHTTP(w, req)

	// The user agent is sent away so code/state leave the visible URL.
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "auth_error=")

	sess := store.Get(cookie)
	assert.Empty(t, sess.AccessToken)
	assert.Empty(t, sess.OAuthState)
	assert.False(t, sess.LoggedIn())
}

func TestCallback_MissingStateRejected(t *testing.T) {
	router, store := newAuthRouter(&fakeLinkedIn{})

	// Fresh session, no login pending.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/linkedin/callback?code=c&state=s", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "state+missing")

	sess := store.Get(sessionCookieFrom(t, w))
	assert.False(t, sess.LoggedIn())
}

func TestLogout_ClearsAuthState(t *testing.T) {
	router, store := newAuthRouter(&fakeLinkedIn{})

	// Seed a logged-in session directly.
	sess := store.Create()
	sess.AccessToken = "tok"
	sess.UserName = "Jane"
	sess.UserURN = "urn:li:person:42"
	sess.Post = &model.GeneratedPost{Text: "keep", Source: model.PostSourceManual}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sess.ID})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, sess.LoggedIn())
	assert.Empty(t, sess.UserName)
	assert.NotNil(t, sess.Post)
}

func sessionCookieFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			return c.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}

func testLinkedInConfig() configuration.LinkedIn {
	return configuration.LinkedIn{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:10001/auth/linkedin/callback",
	}
}
