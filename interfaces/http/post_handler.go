package http

import (
	"errors"
	"fmt"
	"net/http"

	"linkedpost/domain/dto"
	"linkedpost/infrastructure/logger"
	"linkedpost/interfaces/middleware"
	"linkedpost/usecase"

	"github.com/gin-gonic/gin"
)

const ErrorUnmarshal = "Error while unmarshal"

// IPostHandler exposes the post generation and publish endpoints.
type IPostHandler interface {
	Generate(c *gin.Context)
	GenerateManual(c *gin.Context)
	Publish(c *gin.Context)
	GetSession(c *gin.Context)
}

type PostHandler struct {
	postUsecase usecase.IPostUsecase
}

func NewPostHandler(postUsecase usecase.IPostUsecase) IPostHandler {
	return &PostHandler{postUsecase: postUsecase}
}

// Generate handles POST /api/posts/generate.
func (h *PostHandler) Generate(c *gin.Context) {
	var req dto.GeneratePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: fmt.Sprintf("%s: %v", ErrorUnmarshal, err)})
		return
	}

	sess := middleware.SessionFromContext(c)
	outcome, err := h.postUsecase.GenerateFromURL(c.Request.Context(), sess, req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if outcome.ManualInputRequired {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error:               "Could not fetch video title and description. Please provide them manually.",
			ManualInputRequired: true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":              dto.PostResponse{Text: outcome.Post.Text, Source: string(outcome.Post.Source)},
		"transcript_notice": outcome.TranscriptNotice,
	})
}

// GenerateManual handles POST /api/posts/manual, the template fallback used
// when video metadata could not be fetched.
func (h *PostHandler) GenerateManual(c *gin.Context) {
	var req dto.ManualPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error(ErrorUnmarshal)
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Please enter both a title and a summary."})
		return
	}

	sess := middleware.SessionFromContext(c)
	post := h.postUsecase.GenerateManual(sess, req.Title, req.Summary)
	c.JSON(http.StatusOK, gin.H{
		"post": dto.PostResponse{Text: post.Text, Source: string(post.Source)},
	})
}

// Publish handles POST /api/posts/publish. A failure leaves the session and
// the generated post untouched so the user can retry.
func (h *PostHandler) Publish(c *gin.Context) {
	// Body is optional; an empty or absent body publishes the held post.
	var req dto.PublishPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Text = ""
	}

	sess := middleware.SessionFromContext(c)
	if err := h.postUsecase.Publish(c.Request.Context(), sess, req.Text); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotLoggedIn):
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrNoPost):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"published": true})
}

// GetSession handles GET /api/session.
func (h *PostHandler) GetSession(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	c.JSON(http.StatusOK, dto.SessionResponse{
		LoggedIn: sess.LoggedIn(),
		UserName: sess.UserName,
		HasPost:  sess.Post != nil,
	})
}
