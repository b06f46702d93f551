package ward

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinexa/backoffice/internal/platform/auth"
	"github.com/clinexa/backoffice/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "clinical", "reception"))
	g.GET("/rooms", h.ListRooms)
	g.GET("/rooms/:id", h.GetRoom)
	g.GET("/beds/available", h.AvailableBeds)
	g.GET("/beds/occupancy", h.Occupancy)
	g.POST("/rooms/:id/beds/:bedId/assign", h.AssignBed)
	g.POST("/rooms/:id/beds/:bedId/release", h.ReleaseBed)
	g.POST("/rooms/:id/beds/:bedId/clean", h.FinishCleaning)
	g.POST("/rooms/:id/beds/:bedId/maintenance", h.StartMaintenance)
	g.POST("/rooms/:id/beds/:bedId/end-maintenance", h.EndMaintenance)
}

// AssignRequest carries the occupancy references for a bed assignment.
type AssignRequest struct {
	PatientID         string `json:"patient_id"`
	HospitalizationID string `json:"hospitalization_id"`
}

func (h *Handler) ListRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListRooms(c.QueryParam("ward")))
}

func (h *Handler) GetRoom(c echo.Context) error {
	room, err := h.svc.GetRoom(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "room not found")
	}
	return c.JSON(http.StatusOK, room)
}

func (h *Handler) AvailableBeds(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.AvailableBeds())
}

func (h *Handler) Occupancy(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Occupancy())
}

func (h *Handler) AssignBed(c echo.Context) error {
	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	err := h.svc.AssignBed(c.Request().Context(), c.Param("id"), c.Param("bedId"),
		req.PatientID, req.HospitalizationID)
	if err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ReleaseBed(c echo.Context) error {
	if err := h.svc.ReleaseBed(c.Request().Context(), c.Param("id"), c.Param("bedId")); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) FinishCleaning(c echo.Context) error {
	if err := h.svc.FinishCleaning(c.Request().Context(), c.Param("id"), c.Param("bedId")); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) StartMaintenance(c echo.Context) error {
	if err := h.svc.StartMaintenance(c.Request().Context(), c.Param("id"), c.Param("bedId")); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) EndMaintenance(c echo.Context) error {
	if err := h.svc.EndMaintenance(c.Request().Context(), c.Param("id"), c.Param("bedId")); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
