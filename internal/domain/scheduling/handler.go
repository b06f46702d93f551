package scheduling

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
	g := api.Group("", auth.RequireRole("admin", "reception", "clinical"))
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.POST("/appointments", h.CreateAppointment)
	g.PUT("/appointments/:id", h.UpdateAppointment)
	g.DELETE("/appointments/:id", h.DeleteAppointment)

	clinical := api.Group("", auth.RequireRole("admin", "clinical"))
	clinical.GET("/consultations", h.ListConsultations)
	clinical.POST("/consultations", h.RecordConsultation)
	clinical.PUT("/consultations/:id", h.UpdateConsultation)
	clinical.DELETE("/consultations/:id", h.DeleteConsultation)
	clinical.GET("/lab-results", h.ListLabResults)
	clinical.POST("/lab-results", h.RecordLabResult)
	clinical.DELETE("/lab-results/:id", h.DeleteLabResult)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a model.Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.GetAppointment(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	var day *time.Time
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
		}
		day = &parsed
	}
	pg := pagination.FromContext(c)
	items := h.svc.ListAppointments(c.QueryParam("patient_id"), c.QueryParam("doctor_id"), day)
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var a model.Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = c.Param("id")
	if err := h.svc.UpdateAppointment(c.Request().Context(), &a); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.DeleteAppointment(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RecordConsultation(c echo.Context) error {
	var con model.Consultation
	if err := c.Bind(&con); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordConsultation(c.Request().Context(), &con); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, con)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	var con model.Consultation
	if err := c.Bind(&con); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	con.ID = c.Param("id")
	if err := h.svc.UpdateConsultation(c.Request().Context(), &con); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, con)
}

func (h *Handler) DeleteConsultation(c echo.Context) error {
	if err := h.svc.DeleteConsultation(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListConsultations(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListConsultations(c.QueryParam("patient_id"))
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) RecordLabResult(c echo.Context) error {
	var lr model.LabResult
	if err := c.Bind(&lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordLabResult(c.Request().Context(), &lr); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, lr)
}

func (h *Handler) DeleteLabResult(c echo.Context) error {
	if err := h.svc.DeleteLabResult(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListLabResults(c echo.Context) error {
	pg := pagination.FromContext(c)
	items := h.svc.ListLabResults(c.QueryParam("patient_id"), c.QueryParam("abnormal") == "true")
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}
