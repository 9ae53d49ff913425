package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// EmailFromRequest verifies the accessToken cookie and extracts the
// user-identifying email claim. It falls back to the subject claim for
// tokens that put the email there.
func EmailFromRequest(c echo.Context, secret []byte) (string, error) {
	cookie, err := c.Cookie("accessToken")
	if err != nil {
		return "", errors.New("missing auth cookie")
	}
	if cookie.Value == "" {
		return "", errors.New("empty token")
	}

	token, err := jwt.Parse(cookie.Value, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	if email, ok := claims["email"].(string); ok && email != "" {
		return email, nil
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	return "", errors.New("no identity claim")
}
