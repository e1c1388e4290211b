package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/auth"
	"example.com/wagelift/backend/internal/models"
)

const exportLimit = 200

const timeLayout = time.RFC3339

// ExportJSON выгружает историю расчетов пользователя в JSON-файл.
func (h *CalculationHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	calcs, err := h.Calculations.ListByUser(c.Request().Context(), userID, exportLimit)
	if err != nil {
		return serverError(c)
	}

	response := make([]GapResponse, 0, len(calcs))
	for _, calc := range calcs {
		response = append(response, toGapResponse(calc))
	}

	filename := "calculations-" + userID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, map[string][]GapResponse{"calculations": response})
}

// ExportCSV выгружает историю расчетов пользователя в CSV-файл.
func (h *CalculationHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	calcs, err := h.Calculations.ListByUser(c.Request().Context(), userID, exportLimit)
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writeCalculationsCSV(writer, calcs); err != nil {
		return serverError(c)
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "calculations-" + userID.String() + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeCalculationsCSV(writer *csv.Writer, calcs []models.GapCalculation) error {
	header := []string{
		"calculation_id",
		"historical_date",
		"current_date",
		"original_salary_cents",
		"current_salary_cents",
		"adjusted_salary_cents",
		"dollar_gap_cents",
		"percentage_gap",
		"inflation_rate",
		"years_elapsed",
		"calculation_method",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, calc := range calcs {
		record := []string{
			calc.ID.String(),
			calc.HistoricalDate.Format(dateLayout),
			calc.CurrentDate.Format(dateLayout),
			formatInt64(calc.OriginalSalaryCents),
			formatOptionalInt64(calc.CurrentSalaryCents),
			formatInt64(calc.AdjustedSalaryCents),
			formatOptionalInt64(calc.DollarGapCents),
			formatOptionalFloat(calc.PercentageGap),
			formatFloat(calc.InflationRate),
			formatFloat(calc.YearsElapsed),
			calc.CalculationMethod,
			calc.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatInt64(value int64) string {
	return strconv.FormatInt(value, 10)
}

func formatOptionalInt64(value *int64) string {
	if value == nil {
		return ""
	}
	return formatInt64(*value)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 4, 64)
}

func formatOptionalFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return formatFloat(*value)
}
