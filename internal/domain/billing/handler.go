package billing

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/platform/auth"
	"github.com/clinexa/backoffice/internal/platform/export"
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
	g.GET("/invoices", h.ListInvoices)
	g.GET("/invoices/export", h.ExportInvoices)
	g.GET("/invoices/:id", h.GetInvoice)
	g.POST("/invoices", h.CreateInvoice)
	g.PUT("/invoices/:id", h.UpdateInvoice)
	g.DELETE("/invoices/:id", h.DeleteInvoice)
}

// CreateInvoiceRequest wraps the invoice payload with the form's insurance
// toggle.
type CreateInvoiceRequest struct {
	model.Invoice
	ApplyInsurance bool `json:"apply_insurance"`
}

func (h *Handler) CreateInvoice(c echo.Context) error {
	var req CreateInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateInvoice(c.Request().Context(), &req.Invoice, req.ApplyInsurance); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, req.Invoice)
}

func (h *Handler) GetInvoice(c echo.Context) error {
	inv, err := h.svc.GetInvoice(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) ListInvoices(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListInvoices(c.QueryParam("patient_id"), c.QueryParam("status"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateInvoice(c echo.Context) error {
	var inv model.Invoice
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	inv.ID = c.Param("id")
	if err := h.svc.UpdateInvoice(c.Request().Context(), &inv); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) ExportInvoices(c echo.Context) error {
	data, err := export.Invoices(h.svc.ListInvoices("", ""))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		"attachment; filename="+export.Filename("invoices", h.svc.now()))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *Handler) DeleteInvoice(c echo.Context) error {
	if err := h.svc.DeleteInvoice(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
