package controller

import "github.com/labstack/echo/v4"

type CatalogController interface {
	Import(c echo.Context) error
	ImportURL(c echo.Context) error
	List(c echo.Context) error
}
