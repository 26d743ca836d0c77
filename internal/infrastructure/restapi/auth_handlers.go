package restapi

import (
	"net/http"
	"time"

	"portfolio_dashboard/internal/app/port"
	"portfolio_dashboard/internal/domain/entity"
	"portfolio_dashboard/internal/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// sessionCookieMaxAge matches the 7-day cookie the web client sets.
const sessionCookieMaxAge = 7 * 24 * time.Hour

// AuthHandler обрабатывает вход, регистрацию и выход пользователя.
type AuthHandler struct {
	auth         port.AuthAPI
	portfolio    port.PortfolioService
	banned       port.BannedTokenProvider
	cookieSecure bool
}

func NewAuthHandler(auth port.AuthAPI, portfolio port.PortfolioService, banned port.BannedTokenProvider, cookieSecure bool) *AuthHandler {
	return &AuthHandler{auth: auth, portfolio: portfolio, banned: banned, cookieSecure: cookieSecure}
}

// Login exchanges credentials for a backend token and stores it in the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var creds entity.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		respondError(c, apperror.Validation("username and password are required"))
		return
	}

	result, err := h.auth.Login(c.Request.Context(), creds)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, result.Token, int(sessionCookieMaxAge.Seconds()))
	respondOK(c, result, "Signed in.")
}

func (h *AuthHandler) Register(c *gin.Context) {
	var reg entity.Registration
	if err := c.ShouldBindJSON(&reg); err != nil {
		respondError(c, apperror.Validation("username, email and password are required"))
		return
	}
	if err := h.auth.Register(c.Request.Context(), reg); err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, nil, "Account created, you can now sign in.")
}

// Logout drops the cached state of the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sess := sessionFrom(c); sess != nil {
		h.portfolio.Forget(sess)
		h.banned.Invalidate(sess)
	}
	h.setCookie(c, "", -1)
	respondOK(c, nil, "Signed out.")
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.auth.Verify(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user, "")
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", h.cookieSecure, true)
}
