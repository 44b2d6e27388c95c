package middleware

import (
	"net/http"
	"strings"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/session"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the login session token.
	SessionCookie = "session_token"

	userIDKey       = "userID"
	sessionTokenKey = "sessionToken"
)

// RequireSession is the explicit auth gate: it resolves the session token
// from the cookie or an Authorization bearer header and either injects the
// user identity into the request context or stops the request with 401.
func RequireSession(sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		sess, ok := sessions.Get(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}
		c.Set(userIDKey, sess.UserID)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

// UserID returns the authenticated user injected by RequireSession.
func UserID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}

// SessionToken returns the token the current request authenticated with.
func SessionToken(c *gin.Context) string {
	return c.GetString(sessionTokenKey)
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
