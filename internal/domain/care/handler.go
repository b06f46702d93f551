package care

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
	g := api.Group("", auth.RequireRole("admin", "clinical"))
	g.GET("/care-services", h.ListCareServices)
	g.POST("/care-services", h.CreateCareService)
	g.PUT("/care-services/:id", h.UpdateCareService)
	g.DELETE("/care-services/:id", h.DeleteCareService)

	g.GET("/care-records", h.ListCareRecords)
	g.GET("/care-records/:id", h.GetCareRecord)
	g.POST("/care-records", h.CreateCareRecord)
	g.PUT("/care-records/:id", h.UpdateCareRecord)
	g.DELETE("/care-records/:id", h.DeleteCareRecord)
}

func (h *Handler) CreateCareService(c echo.Context) error {
	var cs model.CareService
	if err := c.Bind(&cs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCareService(c.Request().Context(), &cs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, cs)
}

func (h *Handler) ListCareServices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListCareServices())
}

func (h *Handler) UpdateCareService(c echo.Context) error {
	var cs model.CareService
	if err := c.Bind(&cs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cs.ID = c.Param("id")
	if err := h.svc.UpdateCareService(c.Request().Context(), &cs); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, cs)
}

func (h *Handler) DeleteCareService(c echo.Context) error {
	if err := h.svc.DeleteCareService(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateCareRecord(c echo.Context) error {
	var rec model.CareRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateCareRecord(c.Request().Context(), &rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) GetCareRecord(c echo.Context) error {
	rec, err := h.svc.GetCareRecord(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "care record not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) ListCareRecords(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListCareRecords(c.QueryParam("patient_id"), c.QueryParam("status"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCareRecord(c echo.Context) error {
	var rec model.CareRecord
	if err := c.Bind(&rec); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec.ID = c.Param("id")
	if err := h.svc.UpdateCareRecord(c.Request().Context(), &rec); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) DeleteCareRecord(c echo.Context) error {
	if err := h.svc.DeleteCareRecord(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
