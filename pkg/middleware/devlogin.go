package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// StewardCookie holds the steward id in dev mode.
	StewardCookie = "STEWARD_ID"
	// DefaultSteward is assigned when a dev request names nobody.
	DefaultSteward = "steward-dev"
)

// DevLogin takes the steward from the cookie or ?uid=, falling back to DefaultSteward,
// and stores it under "uid".
func DevLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie(StewardCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DefaultSteward
				}
				c.SetCookie(&http.Cookie{Name: StewardCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
