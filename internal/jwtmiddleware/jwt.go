package jwtmiddleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/wholesaleworks/marketplace/internal/token"
)

const OwnerHeader = "user-email"

// Verify rejects requests whose jwt_token cookie is absent, expired or
// carries a bad signature; on success the parsed token lands in the
// context under "user".
func Verify(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningMethod: "HS256",
		ContextKey:    "user",
		TokenLookup:   "cookie:" + token.CookieName,
		SigningKey:    secret,
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
		},
	})
}

// RequireOwner asserts the caller-supplied user-email header matches the
// email embedded in the verified token. Must run after Verify.
func RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, err := TokenEmail(c)
		if err != nil {
			return err
		}
		if !strings.EqualFold(c.Request().Header.Get(OwnerHeader), email) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
		}
		return next(c)
	}
}

func TokenEmail(c echo.Context) (string, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized access")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing email claim")
	}
	return email, nil
}
