package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"conductor/pkg/auth/controller"
	"conductor/pkg/middleware"
)

type authCtrl struct{}

func NewAuthController() controller.AuthController { return &authCtrl{} }

// DevLogin switches the dev steward cookie to ?uid=.
func (h *authCtrl) DevLogin(c echo.Context) error {
	uid := c.QueryParam("uid")
	if uid == "" {
		uid = middleware.DefaultSteward
	}
	c.SetCookie(&http.Cookie{Name: middleware.StewardCookie, Value: uid, Path: "/"})
	return c.JSON(http.StatusOK, echo.Map{"uid": uid})
}

// Logout expires the steward cookie.
func (h *authCtrl) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: middleware.StewardCookie, Value: "", Path: "/", MaxAge: -1})
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.JSON(http.StatusOK, echo.Map{"uid": uid})
}
