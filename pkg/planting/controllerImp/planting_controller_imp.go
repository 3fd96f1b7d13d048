package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	bedsvc "conductor/pkg/bed/service"
	catalogsvc "conductor/pkg/catalog/service"
	"conductor/pkg/planting/controller"
	"conductor/pkg/planting/service"
)

type PlantingCtrl struct{ s service.PlantingService }

var _ controller.PlantingController = (*PlantingCtrl)(nil)

func New(s service.PlantingService) *PlantingCtrl { return &PlantingCtrl{s} }

func bedID(c echo.Context) uint {
	id, _ := strconv.Atoi(c.Param("id"))
	return uint(id)
}

// fail maps service errors onto status codes.
func fail(c echo.Context, err error) error {
	var ge *service.GateError
	switch {
	case errors.As(err, &ge):
		body := echo.Map{"error": "conflict", "verdict": ge.Verdict}
		if errors.Is(err, service.ErrOverrideRequired) {
			body["error"] = "override_required"
		}
		return c.JSON(http.StatusConflict, body)
	case errors.Is(err, bedsvc.ErrBedNotFound), errors.Is(err, catalogsvc.ErrCropNotFound), errors.Is(err, service.ErrRoleEmpty):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidRole):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrRoleTaken), errors.Is(err, service.ErrAlreadyPlanted):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}

func (h *PlantingCtrl) Candidates(c echo.Context) error {
	uid := c.Get("uid").(string)
	out, err := h.s.Candidates(bedID(c), uid, c.QueryParam("role"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PlantingCtrl) Conflicts(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req service.AcceptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	vs, err := h.s.Check(bedID(c), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"verdicts": vs})
}

func (h *PlantingCtrl) Chord(c echo.Context) error {
	uid := c.Get("uid").(string)
	var body struct {
		RootCropID string `json:"root_crop_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	chord, err := h.s.Propose(bedID(c), uid, body.RootCropID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"chord": chord, "voicing": chord.Voicing()})
}

func (h *PlantingCtrl) Accept(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req service.AcceptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	out, err := h.s.Accept(bedID(c), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *PlantingCtrl) Remove(c echo.Context) error {
	uid := c.Get("uid").(string)
	if err := h.s.Remove(bedID(c), uid, c.Param("role")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlantingCtrl) SetOverlays(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req service.OverlayRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad json"})
	}
	b, vs, err := h.s.SetOverlays(bedID(c), uid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bed": b, "verdicts": vs})
}

func (h *PlantingCtrl) Voicing(c echo.Context) error {
	uid := c.Get("uid").(string)
	r, err := h.s.Voicing(bedID(c), uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, r)
}
