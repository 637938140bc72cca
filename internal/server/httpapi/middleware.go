package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const (
	// sessionCookie is the client-held credential; httpOnly, sent on
	// every request.
	sessionCookie = "sessionId"

	ctxUserKey    = "user"
	ctxSessionKey = "sessionId"
)

// sessionMiddleware resolves the session cookie to a user and stashes both
// in the request context. Absence of a cookie, an unknown token, or a
// resolution failure all leave the request anonymous; rejecting anonymous
// callers is up to the individual handler.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := s.auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			s.log.Error(c.Request.Context(), "session resolution failed", "error", err)
			c.Next()
			return
		}

		if user != nil {
			c.Set(ctxUserKey, user)
			c.Set(ctxSessionKey, token)
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// requireUser returns the authenticated user or aborts with a status-only
// 401 response.
func (s *Server) requireUser(c *gin.Context) *models.User {
	user := currentUser(c)
	if user == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	return user
}
