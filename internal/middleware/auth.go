package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crossgate/internal/domain"
	"crossgate/internal/port"
	"crossgate/internal/session"
)

const (
	ContextKeySubject = "subject"
)

// SessionAuth returns gin middleware that validates the target
// application's session cookie and injects the subject into the
// request context.
func SessionAuth(sessions port.SessionIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(session.CookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}

		subject, err := sessions.Validate(cookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "session is invalid or expired",
			})
			return
		}

		c.Set(ContextKeySubject, subject)
		c.Next()
	}
}

// GetSubject extracts the authenticated subject from the gin context.
func GetSubject(c *gin.Context) (*domain.Subject, error) {
	val, exists := c.Get(ContextKeySubject)
	if !exists {
		return nil, domain.ErrUnauthorized
	}
	subject, ok := val.(*domain.Subject)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return subject, nil
}
