package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// StewardHeader is the header a fronting proxy sets after authenticating the steward.
const StewardHeader = "X-Steward-Id"

// Steward requires the steward id from StewardHeader and answers 401 without one. The
// dev cookie is not consulted in header mode. When enabled is false it falls back to
// DevLogin.
func Steward(enabled bool) echo.MiddlewareFunc {
	if !enabled {
		return DevLogin()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := strings.TrimSpace(c.Request().Header.Get(StewardHeader))
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "steward required"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
