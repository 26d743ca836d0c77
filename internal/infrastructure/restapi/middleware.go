package restapi

import (
	"errors"
	"net/http"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/app/session"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestLogger logs every HTTP request with zap and tags it with a request ID.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ctxRequestIDKey, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("http request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("http request", fields...)
		default:
			log.Info("http request", fields...)
		}
	}
}

// Recovery turns a panic into a SYS_001 response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				respondError(c, apperror.InternalError(errors.New("panic")))
			}
		}()
		c.Next()
	}
}

// SessionAuth reads the backend token from the session cookie or the
// Authorization header. The backend verifies the token on every call; here
// only presence and expiry are checked.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			token, _ = c.Cookie(SessionCookie)
		}

		sess, err := session.New(token)
		switch {
		case errors.Is(err, session.ErrExpired):
			respondError(c, apperror.ErrSessionExpired())
			return
		case err != nil:
			respondError(c, apperror.ErrUnauthorized())
			return
		}

		c.Set(ctxSessionKey, sess)
		c.Next()
	}
}

// RequireAdmin lets the request through only when the backend reports the
// session's user as an admin.
func RequireAdmin(auth port.AuthAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		if sess == nil {
			respondError(c, apperror.ErrUnauthorized())
			return
		}
		user, err := auth.Verify(c.Request.Context(), sess)
		if err != nil {
			respondError(c, err)
			return
		}
		if !user.IsAdmin() {
			respondError(c, apperror.ErrForbidden())
			return
		}
		c.Next()
	}
}
