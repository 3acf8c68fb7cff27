package middleware

import (
	"linkedpost/domain/model"
	"linkedpost/infrastructure/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "session_id"
	contextKey    = "session"
	cookieMaxAge  = 8 * 60 * 60
)

// Session attaches the caller's session to the gin context, issuing a new
// cookie when none is present or the id is no longer known (process restart).
func Session(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess := store.GetOrCreate(id)
		if sess.ID != id {
			c.SetCookie(sessionCookie, sess.ID, cookieMaxAge, "/", "", false, true)
		}
		c.Set(contextKey, sess)
		c.Next()
	}
}

// SessionFromContext retrieves the session placed by the Session middleware.
func SessionFromContext(c *gin.Context) *model.Session {
	if v, ok := c.Get(contextKey); ok {
		if sess, ok := v.(*model.Session); ok {
			return sess
		}
	}
	return nil
}
