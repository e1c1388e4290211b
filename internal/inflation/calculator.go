package inflation

import (
	"context"
	"errors"
	"math"
	"time"
)

const daysPerYear = 365.25

// SalaryGapRequest описывает расчет инфляционного разрыва зарплаты.
// Суммы хранятся в центах; текущая зарплата опциональна.
type SalaryGapRequest struct {
	OriginalSalaryCents int64
	CurrentSalaryCents  *int64
	HistoricalDate      time.Time
	CurrentDate         time.Time
}

// SalaryGapResult — результат расчета. Разрыв подписанный: отрицательный
// означает, что текущая зарплата не успела за инфляцией.
type SalaryGapResult struct {
	AdjustedSalaryCents int64
	DollarGapCents      *int64
	PercentageGap       *float64
	InflationRate       float64
	YearsElapsed        float64
	HistoricalIndex     float64
	CurrentIndex        float64
	HistoricalMethod    Method
	CurrentMethod       Method
	CalculationMethod   Method
}

// InflationSummary — обзор инфляции за период без привязки к зарплате.
type InflationSummary struct {
	StartDate                  time.Time
	EndDate                    time.Time
	TotalInflationPercent      float64
	AnnualizedInflationPercent float64
	YearsAnalyzed              float64
	PurchasingPowerLossPercent float64
	CalculationMethod          Method
}

// EstimationPolicy управляет запасным режимом с фиксированной годовой
// ставкой. Выключен по умолчанию: оценка никогда не подменяет реальные
// данные молча.
type EstimationPolicy struct {
	Enabled           bool
	AnnualRatePercent float64
}

// Calculator — чистый калькулятор инфляционного разрыва поверх провайдера
// индекса CPI. Без состояния, безопасен для конкурентных вызовов.
type Calculator struct {
	provider   IndexProvider
	estimation EstimationPolicy
}

// NewCalculator создает калькулятор с провайдером индекса и политикой оценки.
func NewCalculator(provider IndexProvider, estimation EstimationPolicy) *Calculator {
	return &Calculator{provider: provider, estimation: estimation}
}

// CalculateGap считает скорректированную на инфляцию зарплату и разрыв
// против текущей. Ошибки типизированы: InvalidInputError для нарушенных
// инвариантов входа, DataUnavailableError для недоступного индекса.
func (c *Calculator) CalculateGap(ctx context.Context, req SalaryGapRequest) (SalaryGapResult, error) {
	var result SalaryGapResult

	if err := validateGapRequest(req); err != nil {
		return result, err
	}

	historical, current, err := c.resolvePair(ctx, req.HistoricalDate, req.CurrentDate)
	if err != nil {
		return result, err
	}

	ratio := current.Value / historical.Value
	result.HistoricalIndex = historical.Value
	result.CurrentIndex = current.Value
	result.HistoricalMethod = historical.Method
	result.CurrentMethod = current.Method
	result.CalculationMethod = weakerMethod(historical.Method, current.Method)
	result.InflationRate = (ratio - 1) * 100
	result.AdjustedSalaryCents = int64(math.Round(float64(req.OriginalSalaryCents) * ratio))
	result.YearsElapsed = yearsBetween(req.HistoricalDate, req.CurrentDate)

	if req.CurrentSalaryCents != nil {
		gap := *req.CurrentSalaryCents - result.AdjustedSalaryCents
		pct := float64(gap) / float64(result.AdjustedSalaryCents) * 100
		result.DollarGapCents = &gap
		result.PercentageGap = &pct
	}

	return result, nil
}

// SummarizeInflation считает суммарную и годовую (геометрическую) инфляцию
// за период.
func (c *Calculator) SummarizeInflation(ctx context.Context, start, end time.Time) (InflationSummary, error) {
	var summary InflationSummary

	if !start.Before(end) {
		return summary, &InvalidInputError{Field: "start_date", Reason: "must precede end_date"}
	}

	first, last, err := c.resolvePair(ctx, start, end)
	if err != nil {
		return summary, err
	}

	total := (last.Value/first.Value - 1) * 100
	years := yearsBetween(start, end)

	summary.StartDate = start
	summary.EndDate = end
	summary.TotalInflationPercent = total
	summary.YearsAnalyzed = years
	summary.AnnualizedInflationPercent = (math.Pow(1+total/100, 1/years) - 1) * 100
	summary.PurchasingPowerLossPercent = total
	summary.CalculationMethod = weakerMethod(first.Method, last.Method)

	return summary, nil
}

// resolvePair разрешает индекс на обоих концах периода. Если данных нет и
// оценка разрешена политикой, обе точки заменяются синтетическими по
// фиксированной годовой ставке с тегом simplified_estimation.
func (c *Calculator) resolvePair(ctx context.Context, start, end time.Time) (resolution, resolution, error) {
	first, firstErr := resolveIndex(ctx, c.provider, start)
	if firstErr == nil {
		second, secondErr := resolveIndex(ctx, c.provider, end)
		if secondErr == nil {
			return first, second, nil
		}
		firstErr = secondErr
	}

	var unavailable *DataUnavailableError
	if errors.As(firstErr, &unavailable) {
		if estimated, ok := c.estimatePair(start, end); ok {
			return estimated[0], estimated[1], nil
		}
	}

	return resolution{}, resolution{}, firstErr
}

// estimatePair строит пару синтетических значений индекса по предполагаемой
// годовой ставке. Базовое значение произвольно: в расчетах участвует только
// отношение.
func (c *Calculator) estimatePair(start, end time.Time) ([2]resolution, bool) {
	if !c.estimation.Enabled {
		return [2]resolution{}, false
	}

	years := yearsBetween(start, end)
	growth := math.Pow(1+c.estimation.AnnualRatePercent/100, years)

	return [2]resolution{
		{Value: 100, Method: MethodEstimated},
		{Value: 100 * growth, Method: MethodEstimated},
	}, true
}

func validateGapRequest(req SalaryGapRequest) error {
	if req.OriginalSalaryCents <= 0 {
		return &InvalidInputError{Field: "original_salary", Reason: "must be positive"}
	}

	if req.CurrentSalaryCents != nil && *req.CurrentSalaryCents <= 0 {
		return &InvalidInputError{Field: "current_salary", Reason: "must be positive"}
	}

	if !req.HistoricalDate.Before(req.CurrentDate) {
		return &InvalidInputError{Field: "historical_date", Reason: "must precede current_date"}
	}

	return nil
}

func yearsBetween(start, end time.Time) float64 {
	days := end.Sub(start).Hours() / 24
	return days / daysPerYear
}
