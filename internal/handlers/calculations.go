package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/auth"
	"example.com/wagelift/backend/internal/inflation"
	"example.com/wagelift/backend/internal/models"
	"example.com/wagelift/backend/internal/notifications"
	"example.com/wagelift/backend/internal/repository"
)

const defaultHistoryLimit = 50

type CalculationHandler struct {
	Calculator   *inflation.Calculator
	Calculations *repository.CalculationRepository
	Notifier     *notifications.Hub
}

// NewCalculationHandler создает обработчик расчетов инфляционного разрыва.
func NewCalculationHandler(calculator *inflation.Calculator, calculations *repository.CalculationRepository, notifier *notifications.Hub) *CalculationHandler {
	return &CalculationHandler{
		Calculator:   calculator,
		Calculations: calculations,
		Notifier:     notifier,
	}
}

type GapRequest struct {
	OriginalSalaryCents int64  `json:"original_salary_cents" validate:"required"`
	CurrentSalaryCents  *int64 `json:"current_salary_cents"`
	HistoricalDate      string `json:"historical_date" validate:"required,isodate"`
	CurrentDate         string `json:"current_date" validate:"omitempty,isodate"`
}

type GapResponse struct {
	ID                  uuid.UUID `json:"id"`
	OriginalSalaryCents int64     `json:"original_salary_cents"`
	CurrentSalaryCents  *int64    `json:"current_salary_cents,omitempty"`
	HistoricalDate      string    `json:"historical_date"`
	CurrentDate         string    `json:"current_date"`
	AdjustedSalaryCents int64     `json:"adjusted_salary_cents"`
	DollarGapCents      *int64    `json:"dollar_gap_cents,omitempty"`
	PercentageGap       *float64  `json:"percentage_gap,omitempty"`
	InflationRate       float64   `json:"inflation_rate"`
	YearsElapsed        float64   `json:"years_elapsed"`
	CalculationMethod   string    `json:"calculation_method"`
	CreatedAt           time.Time `json:"created_at"`
}

// CalculateGap считает инфляционный разрыв, сохраняет результат и
// публикует событие пользователю.
func (h *CalculationHandler) CalculateGap(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req GapRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	historicalDate, err := parseDate(req.HistoricalDate)
	if err != nil {
		return badRequest(c, "invalid historical_date format")
	}

	currentDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.CurrentDate != "" {
		currentDate, err = parseDate(req.CurrentDate)
		if err != nil {
			return badRequest(c, "invalid current_date format")
		}
	}

	result, err := h.Calculator.CalculateGap(c.Request().Context(), inflation.SalaryGapRequest{
		OriginalSalaryCents: req.OriginalSalaryCents,
		CurrentSalaryCents:  req.CurrentSalaryCents,
		HistoricalDate:      historicalDate,
		CurrentDate:         currentDate,
	})
	if err != nil {
		return inflationError(c, err)
	}

	calc := models.GapCalculation{
		UserID:              userID,
		OriginalSalaryCents: req.OriginalSalaryCents,
		CurrentSalaryCents:  req.CurrentSalaryCents,
		HistoricalDate:      historicalDate,
		CurrentDate:         currentDate,
		AdjustedSalaryCents: result.AdjustedSalaryCents,
		DollarGapCents:      result.DollarGapCents,
		PercentageGap:       result.PercentageGap,
		InflationRate:       result.InflationRate,
		YearsElapsed:        result.YearsElapsed,
		CalculationMethod:   string(result.CalculationMethod),
	}

	calc, err = h.Calculations.Create(c.Request().Context(), calc)
	if err != nil {
		return serverError(c)
	}

	publishGapCalculated(h.Notifier, userID, calc)
	return c.JSON(http.StatusCreated, toGapResponse(calc))
}

// List возвращает историю расчетов пользователя.
func (h *CalculationHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		if parsed > 200 {
			parsed = 200
		}
		limit = parsed
	}

	calcs, err := h.Calculations.ListByUser(c.Request().Context(), userID, limit)
	if err != nil {
		return serverError(c)
	}

	response := make([]GapResponse, 0, len(calcs))
	for _, calc := range calcs {
		response = append(response, toGapResponse(calc))
	}

	return c.JSON(http.StatusOK, map[string][]GapResponse{"calculations": response})
}

// Get возвращает расчет по идентификатору.
func (h *CalculationHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid calculation id")
	}

	calc, err := h.Calculations.GetByID(c.Request().Context(), userID, calcID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "calculation not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toGapResponse(calc))
}

// Delete удаляет расчет пользователя.
func (h *CalculationHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	calcID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid calculation id")
	}

	if err := h.Calculations.Delete(c.Request().Context(), userID, calcID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "calculation not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// inflationError транслирует типизированные ошибки калькулятора в HTTP-коды:
// 400 для нарушенных инвариантов входа, 422 для недоступных данных CPI.
func inflationError(c echo.Context, err error) error {
	var invalid *inflation.InvalidInputError
	if errors.As(err, &invalid) {
		return badRequest(c, invalid.Error())
	}

	var unavailable *inflation.DataUnavailableError
	if errors.As(err, &unavailable) {
		return unprocessable(c, unavailable.Error())
	}

	return serverError(c)
}

func toGapResponse(calc models.GapCalculation) GapResponse {
	return GapResponse{
		ID:                  calc.ID,
		OriginalSalaryCents: calc.OriginalSalaryCents,
		CurrentSalaryCents:  calc.CurrentSalaryCents,
		HistoricalDate:      calc.HistoricalDate.Format(dateLayout),
		CurrentDate:         calc.CurrentDate.Format(dateLayout),
		AdjustedSalaryCents: calc.AdjustedSalaryCents,
		DollarGapCents:      calc.DollarGapCents,
		PercentageGap:       calc.PercentageGap,
		InflationRate:       calc.InflationRate,
		YearsElapsed:        calc.YearsElapsed,
		CalculationMethod:   calc.CalculationMethod,
		CreatedAt:           calc.CreatedAt,
	}
}
