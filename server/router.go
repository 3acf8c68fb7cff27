package server

import (
	"net/http"
	"time"

	"linkedpost/infrastructure/session"
	httpHandler "linkedpost/interfaces/http"
	"linkedpost/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// InitiateRouter builds the HTTP surface: OAuth login flow, session info and
// the generate/publish endpoints.
func InitiateRouter(
	postHandler httpHandler.IPostHandler,
	authHandler httpHandler.ILinkedInAuthHandler,
	sessionStore *session.Store,
	corsOrigins []string,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Session(sessionStore))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/auth/linkedin", authHandler.GetAuthURL)
	router.GET("/auth/linkedin/callback", authHandler.Callback)
	router.POST("/auth/logout", authHandler.Logout)

	api := router.Group("api")
	{
		api.GET("/session", postHandler.GetSession)
		api.POST("/posts/generate", postHandler.Generate)
		api.POST("/posts/manual", postHandler.GenerateManual)
		api.POST("/posts/publish", postHandler.Publish)
	}

	return router
}
