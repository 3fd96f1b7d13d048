package router

import (
	"github.com/labstack/echo/v4"

	"conductor/pkg/middleware"
)

func New(
	e *echo.Echo,
	stewardHeader bool,
	catalogCtrl interface {
		Import(echo.Context) error
		ImportURL(echo.Context) error
		List(echo.Context) error
	},
	bedCtrl interface {
		Create(echo.Context) error
		Get(echo.Context) error
		List(echo.Context) error
	},
	plantCtrl interface {
		Candidates(echo.Context) error
		Conflicts(echo.Context) error
		Chord(echo.Context) error
		Accept(echo.Context) error
		Remove(echo.Context) error
		SetOverlays(echo.Context) error
		Voicing(echo.Context) error
	},
	brixCtrl interface {
		Create(echo.Context) error
		List(echo.Context) error
	},
	authCtrl interface {
		DevLogin(echo.Context) error
		Logout(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	api := e.Group("", middleware.Steward(stewardHeader))
	api.GET("/whoami", authCtrl.WhoAmI)
	if !stewardHeader {
		api.GET("/devlogin", authCtrl.DevLogin)
		api.POST("/logout", authCtrl.Logout)
	}

	// catalog
	api.POST("/crops/import", catalogCtrl.Import)
	api.POST("/crops/import/url", catalogCtrl.ImportURL)
	api.GET("/crops", catalogCtrl.List)

	api.POST("/beds", bedCtrl.Create)
	api.GET("/beds", bedCtrl.List)
	api.GET("/beds/:id", bedCtrl.Get)

	g := api.Group("/beds/:id")
	g.PUT("/overlays", plantCtrl.SetOverlays)
	g.GET("/candidates", plantCtrl.Candidates)
	g.POST("/conflicts", plantCtrl.Conflicts)
	g.POST("/chord", plantCtrl.Chord)
	g.POST("/plantings", plantCtrl.Accept)
	g.DELETE("/plantings/:role", plantCtrl.Remove)
	g.GET("/voicing", plantCtrl.Voicing)

	g.POST("/brix", brixCtrl.Create)
	g.GET("/brix", brixCtrl.List)
	return e
}
