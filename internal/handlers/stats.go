package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/auth"
	"example.com/wagelift/backend/internal/repository"
)

type StatsHandler struct {
	Calculations *repository.CalculationRepository
}

// NewStatsHandler создает обработчик статистики.
func NewStatsHandler(calculations *repository.CalculationRepository) *StatsHandler {
	return &StatsHandler{Calculations: calculations}
}

type OverviewResponse struct {
	TotalCalculations int        `json:"total_calculations"`
	AvgPercentageGap  *float64   `json:"avg_percentage_gap,omitempty"`
	BehindInflation   int        `json:"behind_inflation"`
	AheadOfInflation  int        `json:"ahead_of_inflation"`
	LatestCreatedAt   *time.Time `json:"latest_created_at,omitempty"`
}

// Overview возвращает сводку по расчетам пользователя.
func (h *StatsHandler) Overview(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	overview, err := h.Calculations.Overview(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalCalculations: overview.TotalCalculations,
		AvgPercentageGap:  overview.AvgPercentageGap,
		BehindInflation:   overview.BehindInflation,
		AheadOfInflation:  overview.AheadOfInflation,
		LatestCreatedAt:   overview.LatestCreatedAt,
	})
}
