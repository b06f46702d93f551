package hospitalization

import (
	"net/http"
	"time"

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
	g.GET("/hospitalizations", h.List)
	g.GET("/hospitalizations/:id", h.Get)
	g.POST("/hospitalizations", h.Admit)
	g.PUT("/hospitalizations/:id", h.Update)
	g.POST("/hospitalizations/:id/discharge", h.Discharge)
	g.POST("/hospitalizations/:id/services", h.AddServiceUsage)
}

// DischargeRequest optionally carries the discharge time; empty means now.
type DischargeRequest struct {
	DischargeDate *time.Time `json:"discharge_date"`
}

func (h *Handler) Admit(c echo.Context) error {
	var stay model.Hospitalization
	if err := c.Bind(&stay); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Admit(c.Request().Context(), &stay); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, stay)
}

func (h *Handler) Get(c echo.Context) error {
	stay, err := h.svc.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "hospitalization not found")
	}
	return c.JSON(http.StatusOK, stay)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.List(c.QueryParam("patient_id"), c.QueryParam("status"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	var stay model.Hospitalization
	if err := c.Bind(&stay); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	stay.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &stay); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, stay)
}

func (h *Handler) Discharge(c echo.Context) error {
	var req DischargeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	at := time.Time{}
	if req.DischargeDate != nil {
		at = *req.DischargeDate
	}
	if err := h.svc.Discharge(c.Request().Context(), c.Param("id"), at); err != nil {
		return httperr.From(err)
	}
	stay, err := h.svc.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "hospitalization not found")
	}
	return c.JSON(http.StatusOK, stay)
}

func (h *Handler) AddServiceUsage(c echo.Context) error {
	var usage model.HospitalizationService
	if err := c.Bind(&usage); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AddServiceUsage(c.Request().Context(), c.Param("id"), usage); err != nil {
		return httperr.From(err)
	}
	stay, err := h.svc.Get(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "hospitalization not found")
	}
	return c.JSON(http.StatusOK, stay)
}
