package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinexa/backoffice/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "reception", "clinical", "billing", "pharmacy"))
	g.GET("/dashboard/stats", h.Stats)
	g.GET("/prefs/theme", h.Theme)
	g.PUT("/prefs/theme", h.SetTheme)
}

// ThemeRequest carries the display preference payload.
type ThemeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Refresh())
}

func (h *Handler) Theme(c echo.Context) error {
	userID := auth.UserIDFromContext(c.Request().Context())
	theme, err := h.svc.Theme(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ThemeRequest{Theme: theme})
}

func (h *Handler) SetTheme(c echo.Context) error {
	var req ThemeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	userID := auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.SetTheme(c.Request().Context(), userID, req.Theme); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, req)
}
