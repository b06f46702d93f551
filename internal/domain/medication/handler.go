package medication

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/platform/auth"
	"github.com/clinexa/backoffice/internal/platform/httperr"
	"github.com/clinexa/backoffice/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "pharmacy"))
	g.GET("/medications", h.ListMedications)
	g.GET("/medications/:id", h.GetMedication)
	g.POST("/medications", h.CreateMedication)
	g.PUT("/medications/:id", h.UpdateMedication)
	g.DELETE("/medications/:id", h.DeleteMedication)
	g.GET("/medications/:id/movements", h.Movements)
	g.POST("/medications/:id/entries", h.RecordEntry)
	g.POST("/medications/:id/exits", h.RecordExit)
}

// MovementRequest is the manual stock adjustment payload.
type MovementRequest struct {
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

func (h *Handler) CreateMedication(c echo.Context) error {
	var m model.Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateMedication(c.Request().Context(), &m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) GetMedication(c echo.Context) error {
	m, err := h.svc.GetMedication(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "medication not found")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) ListMedications(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListMedications(c.QueryParam("low_stock") == "true")
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateMedication(c echo.Context) error {
	var m model.Medication
	if err := c.Bind(&m); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	m.ID = c.Param("id")
	if err := h.svc.UpdateMedication(c.Request().Context(), &m); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) DeleteMedication(c echo.Context) error {
	if err := h.svc.DeleteMedication(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Movements(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Movements(c.Param("id")))
}

func (h *Handler) RecordEntry(c echo.Context) error {
	var req MovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	mov, err := h.svc.RecordEntry(c.Request().Context(), c.Param("id"), req.Quantity, req.Reason)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, mov)
}

func (h *Handler) RecordExit(c echo.Context) error {
	var req MovementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	mov, err := h.svc.RecordExit(c.Request().Context(), c.Param("id"), req.Quantity, req.Reason)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, mov)
}
