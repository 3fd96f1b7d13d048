package controller

import "github.com/labstack/echo/v4"

type PlantingController interface {
	Candidates(c echo.Context) error
	Conflicts(c echo.Context) error
	Chord(c echo.Context) error
	Accept(c echo.Context) error
	Remove(c echo.Context) error
	SetOverlays(c echo.Context) error
	Voicing(c echo.Context) error
}
