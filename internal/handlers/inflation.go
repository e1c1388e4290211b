package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/inflation"
)

type InflationHandler struct {
	Calculator *inflation.Calculator
}

// NewInflationHandler создает обработчик обзора инфляции.
func NewInflationHandler(calculator *inflation.Calculator) *InflationHandler {
	return &InflationHandler{Calculator: calculator}
}

type InflationSummaryResponse struct {
	StartDate                  string  `json:"start_date"`
	EndDate                    string  `json:"end_date"`
	TotalInflationPercent      float64 `json:"total_inflation_percent"`
	AnnualizedInflationPercent float64 `json:"annualized_inflation_percent"`
	YearsAnalyzed              float64 `json:"years_analyzed"`
	PurchasingPowerLossPercent float64 `json:"purchasing_power_loss_percent"`
	CalculationMethod          string  `json:"calculation_method"`
}

// Summary возвращает суммарную и годовую инфляцию за период.
func (h *InflationHandler) Summary(c echo.Context) error {
	startParam := c.QueryParam("start_date")
	endParam := c.QueryParam("end_date")
	if startParam == "" || endParam == "" {
		return badRequest(c, "start_date and end_date are required")
	}

	startDate, err := parseDate(startParam)
	if err != nil {
		return badRequest(c, "invalid start_date format")
	}

	endDate, err := parseDate(endParam)
	if err != nil {
		return badRequest(c, "invalid end_date format")
	}

	summary, err := h.Calculator.SummarizeInflation(c.Request().Context(), startDate, endDate)
	if err != nil {
		return inflationError(c, err)
	}

	return c.JSON(http.StatusOK, InflationSummaryResponse{
		StartDate:                  summary.StartDate.Format(dateLayout),
		EndDate:                    summary.EndDate.Format(dateLayout),
		TotalInflationPercent:      summary.TotalInflationPercent,
		AnnualizedInflationPercent: summary.AnnualizedInflationPercent,
		YearsAnalyzed:              summary.YearsAnalyzed,
		PurchasingPowerLossPercent: summary.PurchasingPowerLossPercent,
		CalculationMethod:          string(summary.CalculationMethod),
	})
}
