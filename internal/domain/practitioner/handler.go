package practitioner

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
	g := api.Group("", auth.RequireRole("admin", "reception", "clinical"))
	g.GET("/doctors", h.ListDoctors)
	g.GET("/doctors/on-duty", h.OnDuty)
	g.GET("/doctors/:id", h.GetDoctor)
	g.POST("/doctors", h.CreateDoctor)
	g.PUT("/doctors/:id", h.UpdateDoctor)
	g.DELETE("/doctors/:id", h.DeleteDoctor)
	g.GET("/doctors/:id/roster", h.Roster)
	g.POST("/rosters", h.AddRosterEntry)
	g.DELETE("/rosters/:id", h.DeleteRosterEntry)
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d model.Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	d, err := h.svc.GetDoctor(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListDoctors(c.QueryParam("speciality"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	var d model.Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d.ID = c.Param("id")
	if err := h.svc.UpdateDoctor(c.Request().Context(), &d); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	if err := h.svc.DeleteDoctor(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Roster(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Roster(c.Param("id")))
}

func (h *Handler) AddRosterEntry(c echo.Context) error {
	var e model.RosterEntry
	if err := c.Bind(&e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddRosterEntry(c.Request().Context(), &e); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) DeleteRosterEntry(c echo.Context) error {
	if err := h.svc.DeleteRosterEntry(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) OnDuty(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.OnDuty(h.svc.now()))
}
