package insurance

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
	g := api.Group("", auth.RequireRole("admin", "billing"))
	g.GET("/insurance/providers", h.ListProviders)
	g.POST("/insurance/providers", h.CreateProvider)
	g.PUT("/insurance/providers/:id", h.UpdateProvider)
	g.GET("/insurance/policies", h.ListPolicies)
	g.POST("/insurance/policies", h.CreatePolicy)
	g.GET("/insurance/bindings", h.ListBindings)
	g.POST("/insurance/bindings", h.Enroll)
	g.POST("/insurance/bindings/:id/terminate", h.Terminate)
	g.GET("/insurance/claims", h.ListClaims)
	g.GET("/insurance/claims/:id", h.GetClaim)
	g.POST("/insurance/claims/:id/transition", h.TransitionClaim)
}

func (h *Handler) CreateProvider(c echo.Context) error {
	var p model.InsuranceProvider
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProvider(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProvider(c echo.Context) error {
	var p model.InsuranceProvider
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = c.Param("id")
	if err := h.svc.UpdateProvider(c.Request().Context(), &p); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProviders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListProviders())
}

func (h *Handler) CreatePolicy(c echo.Context) error {
	var p model.InsurancePolicy
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreatePolicy(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListPolicies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListPolicies(c.QueryParam("provider_id")))
}

func (h *Handler) Enroll(c echo.Context) error {
	var b model.PatientInsurance
	if err := c.Bind(&b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Enroll(c.Request().Context(), &b); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) ListBindings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListBindings(c.QueryParam("patient_id")))
}

func (h *Handler) Terminate(c echo.Context) error {
	if err := h.svc.Terminate(c.Request().Context(), c.Param("id")); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetClaim(c echo.Context) error {
	claim, err := h.svc.GetClaim(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "claim not found")
	}
	return c.JSON(http.StatusOK, claim)
}

func (h *Handler) ListClaims(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListClaims(c.QueryParam("patient_id"), c.QueryParam("status"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) TransitionClaim(c echo.Context) error {
	var d Decision
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	claim, err := h.svc.Transition(c.Request().Context(), c.Param("id"), d)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, claim)
}
