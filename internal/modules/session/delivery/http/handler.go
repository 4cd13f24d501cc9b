package handler

import (
	"net/http"
	"time"

	"clabs.com/website/internal/modules/session/dto"
	session "clabs.com/website/internal/modules/session/service"
	"clabs.com/website/pkg/response"
	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	service      session.AuthService
	cookieMaxAge int
	cookieSecure bool
}

func NewSessionHandler(service session.AuthService, ttl time.Duration, cookieSecure bool) *SessionHandler {
	return &SessionHandler{
		service:      service,
		cookieMaxAge: int(ttl.Seconds()),
		cookieSecure: cookieSecure,
	}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	s, err := h.service.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, s.SessionID, h.cookieMaxAge)
	c.JSON(http.StatusOK, dto.LoginResponse{
		Success:   true,
		SessionID: s.SessionID,
		Message:   "login successful",
	})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), session.LogoutToken(c.Request)); err != nil {
		response.Error(c, err)
		return
	}

	h.setCookie(c, "", -1)
	response.OK(c, http.StatusOK, "logged out", nil)
}

// Status runs behind the auth gate, so reaching it means the caller is signed in.
func (h *SessionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SessionStatusResponse{Success: true, Authenticated: true})
}

func (h *SessionHandler) setCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     session.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
}
