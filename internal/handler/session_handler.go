package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crossgate/internal/middleware"
	"crossgate/internal/session"
)

// SessionHandler handles the target application's session surface.
type SessionHandler struct {
	cookieOpts session.CookieOptions
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(cookieOpts session.CookieOptions) *SessionHandler {
	return &SessionHandler{cookieOpts: cookieOpts}
}

// Me handles GET /api/session/me. Requires SessionAuth.
func (h *SessionHandler) Me(c *gin.Context) {
	subject, err := middleware.GetSubject(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	c.JSON(http.StatusOK, subject)
}

// Logout handles POST /api/session/logout. Clearing the cookie is the
// whole sign-out; sessions hold no server-side state.
func (h *SessionHandler) Logout(c *gin.Context) {
	session.ClearCookie(c.Writer, h.cookieOpts)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
