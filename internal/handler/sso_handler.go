package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"crossgate/internal/domain"
	"crossgate/internal/middleware"
	"crossgate/internal/service"
	"crossgate/internal/session"
)

// SSOHandler handles the target application's redemption route.
type SSOHandler struct {
	redemptionService service.RedemptionService
	cookieOpts        session.CookieOptions
}

// NewSSOHandler creates a new SSOHandler.
func NewSSOHandler(redemptionService service.RedemptionService, cookieOpts session.CookieOptions) *SSOHandler {
	return &SSOHandler{redemptionService: redemptionService, cookieOpts: cookieOpts}
}

// Redeem handles GET /sso?token=<cross-app token>. Only the token
// parameter is consumed. Successful and already-authenticated runs
// redirect to the home route; failures answer with a retry-oriented
// message and no automatic retry.
func (h *SSOHandler) Redeem(c *gin.Context) {
	cookie, _ := c.Cookie(session.CookieName)

	result := h.redemptionService.Run(c.Request.Context(), service.RedemptionInput{
		Token:         c.Query("token"),
		SessionCookie: cookie,
		RequestID:     middleware.GetRequestID(c),
	})

	switch result.State {
	case domain.RedemptionAlreadyAuthenticated:
		c.Redirect(http.StatusSeeOther, result.RedirectTo)

	case domain.RedemptionDone:
		session.SetCookie(c.Writer, result.SessionValue, result.SessionExpires, h.cookieOpts)
		c.Redirect(http.StatusSeeOther, result.RedirectTo)

	default:
		if errors.Is(result.Err, domain.ErrMissingToken) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  result.Message,
				"detail": "Restart the sign-in from the source application.",
			})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":  result.Message,
			"detail": "Please sign in again or request a new token.",
		})
	}
}
