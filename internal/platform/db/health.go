package db

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandler pings the journal database and reports pool usage.
func HealthHandler(pool *pgxpool.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
		defer cancel()

		stat := pool.Stat()
		poolInfo := map[string]any{
			"total_conns": stat.TotalConns(),
			"idle_conns":  stat.IdleConns(),
			"max_conns":   stat.MaxConns(),
		}

		if err := pool.Ping(ctx); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status": "unhealthy",
				"error":  err.Error(),
				"pool":   poolInfo,
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status": "healthy",
			"pool":   poolInfo,
		})
	}
}
