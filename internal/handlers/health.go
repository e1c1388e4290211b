package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

var startedAt = time.Now().UTC()

type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	UptimeSec int64  `json:"uptime_sec"`
}

// Health возвращает статус сервиса для проб оркестратора.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   "wagelift-backend",
		UptimeSec: int64(time.Since(startedAt).Seconds()),
	})
}
