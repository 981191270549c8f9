package middleware

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// APIKey validates the static bearer secret on every data endpoint. The two
// 401 messages are deliberately distinct so callers can tell a malformed
// header apart from a wrong key.
func APIKey(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" {
				log.Printf("API_KEY is not configured, rejecting request")
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal Server Error: Security configuration missing"})
			}

			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if authHeader == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized: Missing or malformed Authorization header"})
			}

			if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized: Invalid API Key"})
			}

			return next(c)
		}
	}
}
