package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"conductor/entities"
	bedsvc "conductor/pkg/bed/service"
	"conductor/pkg/brix/controller"
	"conductor/pkg/brix/service"
)

type BrixCtrl struct{ s service.BrixService }

var _ controller.BrixController = (*BrixCtrl)(nil)

func New(s service.BrixService) *BrixCtrl { return &BrixCtrl{s} }

type brixReq struct {
	Date string   `json:"date"`
	Brix *float64 `json:"brix"`
	Note string   `json:"note"`
}

func (h *BrixCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	bid, _ := strconv.Atoi(c.Param("id"))
	var req brixReq
	if err := c.Bind(&req); err != nil || req.Brix == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "brix required"})
	}
	d := time.Now()
	if req.Date != "" {
		if dd, err := time.Parse("2006-01-02", req.Date); err == nil {
			d = dd
		}
	}
	m, err := h.s.Record(uid, &entities.BrixReading{BedID: uint(bid), Date: d, Brix: *req.Brix, Note: req.Note})
	switch {
	case errors.Is(err, service.ErrInvalidReading):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, bedsvc.ErrBedNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *BrixCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	bid, _ := strconv.Atoi(c.Param("id"))
	out, err := h.s.List(uint(bid), uid)
	if errors.Is(err, bedsvc.ErrBedNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "bed not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}
