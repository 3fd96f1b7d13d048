package controller

import "github.com/labstack/echo/v4"

// AuthController serves the dev steward session.
type AuthController interface {
	DevLogin(c echo.Context) error
	Logout(c echo.Context) error
	WhoAmI(c echo.Context) error
}
