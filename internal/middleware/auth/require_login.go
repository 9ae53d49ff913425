package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SessionMiddleware struct {
	JWTSecret []byte
}

func NewSessionMiddleware(secret []byte) *SessionMiddleware {
	return &SessionMiddleware{JWTSecret: secret}
}

// RequireLogin gates the cart routes. The session token comes from the
// identity provider; here it is only verified, and the identity it carries
// is threaded into the request context for the handlers.
func (m *SessionMiddleware) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, err := EmailFromRequest(c, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}
		c.Set("user_email", email)
		return next(c)
	}
}
