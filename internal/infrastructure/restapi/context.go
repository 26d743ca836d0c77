package restapi

import (
	"portfolio_dashboard/internal/app/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionKey   = "session"
	ctxRequestIDKey = "request_id"

	// SessionCookie is the cookie the browser keeps the backend token in.
	SessionCookie = "token"

	HeaderRequestID = "X-Request-ID"
)

// sessionFrom returns the session stored by SessionAuth. Handlers mounted
// behind SessionAuth can rely on it being present.
func sessionFrom(c *gin.Context) *session.Session {
	v, ok := c.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
