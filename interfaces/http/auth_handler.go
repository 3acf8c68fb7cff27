package http

import (
	"errors"
	"net/http"
	"net/url"

	"linkedpost/domain/dto"
	"linkedpost/domain/model"
	"linkedpost/infrastructure/logger"
	"linkedpost/interfaces/middleware"
	"linkedpost/usecase"

	"github.com/gin-gonic/gin"
)

// ILinkedInAuthHandler exposes the LinkedIn OAuth2 login flow.
type ILinkedInAuthHandler interface {
	GetAuthURL(c *gin.Context)
	Callback(c *gin.Context)
	Logout(c *gin.Context)
}

type LinkedInAuthHandler struct {
	authUsecase usecase.IAuthUsecase
	frontendURL string
}

// NewLinkedInAuthHandler creates the auth handler. frontendURL is where the
// callback redirects afterwards, which also clears code/state from the
// visible URL.
func NewLinkedInAuthHandler(authUsecase usecase.IAuthUsecase, frontendURL string) ILinkedInAuthHandler {
	if frontendURL == "" {
		frontendURL = "/"
	}
	return &LinkedInAuthHandler{authUsecase: authUsecase, frontendURL: frontendURL}
}

// GetAuthURL handles GET /auth/linkedin. Each call issues a fresh state
// token, invalidating any earlier unconsumed one.
func (h *LinkedInAuthHandler) GetAuthURL(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	authURL := h.authUsecase.LoginURL(sess)
	c.JSON(http.StatusOK, dto.AuthURLResponse{AuthURL: authURL})
}

// Callback handles GET /auth/linkedin/callback. Whatever the outcome, the
// user agent is redirected away so code and state do not linger in the URL.
func (h *LinkedInAuthHandler) Callback(c *gin.Context) {
	sess := middleware.SessionFromContext(c)

	if errParam := c.Query("error"); errParam != "" {
		logger.GetLogger().WithField("error", errParam).Warn("LinkedIn authorization denied")
		h.redirect(c, "LinkedIn authorization failed: "+errParam)
		return
	}

	cb := model.AuthCallback{
		Code:  c.Query("code"),
		State: c.Query("state"),
	}
	if err := h.authUsecase.HandleCallback(c.Request.Context(), sess, cb); err != nil {
		switch {
		case errors.Is(err, usecase.ErrStateMissing), errors.Is(err, usecase.ErrStateMismatch):
			h.redirect(c, err.Error())
		default:
			h.redirect(c, "LinkedIn login failed: "+err.Error())
		}
		return
	}
	h.redirect(c, "")
}

// Logout handles POST /auth/logout.
func (h *LinkedInAuthHandler) Logout(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	h.authUsecase.Logout(sess)
	c.JSON(http.StatusOK, gin.H{"logged_out": true})
}

func (h *LinkedInAuthHandler) redirect(c *gin.Context, errMsg string) {
	target := h.frontendURL
	if errMsg != "" {
		target += "?auth_error=" + url.QueryEscape(errMsg)
	}
	c.Redirect(http.StatusSeeOther, target)
}
