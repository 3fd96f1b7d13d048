package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"conductor/entities"
	"conductor/pkg/bed/controller"
	"conductor/pkg/bed/service"
)

type BedCtrl struct{ s service.BedService }

var _ controller.BedController = (*BedCtrl)(nil)

func New(s service.BedService) *BedCtrl { return &BedCtrl{s} }

type createReq struct {
	Name      string             `json:"name"`
	Frequency entities.Frequency `json:"frequency"`
}

func (h *BedCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	b, err := h.s.CreateBed(&entities.Bed{UserID: uid, Name: req.Name, Frequency: req.Frequency})
	if errors.Is(err, service.ErrInvalidFrequency) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BedCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, _ := strconv.Atoi(c.Param("id"))
	b, err := h.s.GetBed(uint(id), uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BedCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	bs, err := h.s.ListBeds(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, bs)
}
