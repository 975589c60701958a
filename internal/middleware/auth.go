package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stedonnelly/accountd/internal/service"
)

// CurrentUserKey is where the guard stores the resolved account in the
// gin context.
const CurrentUserKey = "current_user"

// Auth resolves the session cookie and loads the account behind it.
// Every failure mode (no cookie, tampered or stale cookie, unknown or
// expired session, missing or inactive user) answers the same 401.
func Auth(cookieName string, auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookieName)
		if err != nil {
			raw = ""
		}

		user, err := auth.UserFromCookie(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, service.ErrNotAuthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not_authenticated"})
			} else {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			}
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}
