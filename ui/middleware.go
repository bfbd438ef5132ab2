package ui

import (
	"net/http"

	"heartbi/domain/core"
	"heartbi/internal"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "heartbi_session"
	sessionKey    = "sessionID"
)

// sessionMiddleware ensures every request carries a session ID, issuing a new
// cookie when the visitor has none or sent a malformed one.
func sessionMiddleware(logger *internal.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var id core.SessionID
		if raw, err := c.Cookie(sessionCookie); err == nil {
			id, err = core.ParseSessionID(raw)
			if err != nil {
				logger.Debug("ignoring malformed session cookie: %v", err)
			}
		}

		if id == "" {
			id = core.NewSessionID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, id.String(), 0, "/", "", false, true)
			logger.Debug("issued session %s", id)
		}

		c.Set(sessionKey, id)
		c.Next()
	}
}

// sessionID returns the request's session, set by sessionMiddleware
func sessionID(c *gin.Context) core.SessionID {
	if v, ok := c.Get(sessionKey); ok {
		if id, ok := v.(core.SessionID); ok {
			return id
		}
	}
	return ""
}
