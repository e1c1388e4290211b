package inflation

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func int64Ptr(v int64) *int64 {
	return &v
}

// growthTable строит таблицу индекса с постоянным месячным ростом.
func growthTable(startYear int, startMonth time.Month, months int, base, monthlyRate float64) []IndexPoint {
	points := make([]IndexPoint, 0, months)
	cursor := date(startYear, startMonth, 1)
	for i := 0; i < months; i++ {
		points = append(points, IndexPoint{
			Year:  cursor.Year(),
			Month: cursor.Month(),
			Value: base * math.Pow(1+monthlyRate, float64(i)),
		})
		cursor = cursor.AddDate(0, 1, 0)
	}

	return points
}

// TestCalculateGapKnownValues проверяет расчет на опубликованных значениях CPI.
func TestCalculateGapKnownValues(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2020, Month: time.January, Value: 257.971},
		{Year: 2024, Month: time.January, Value: 308.417},
	})
	calc := NewCalculator(provider, EstimationPolicy{})

	result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 50000_00,
		CurrentSalaryCents:  int64Ptr(55000_00),
		HistoricalDate:      date(2020, time.January, 1),
		CurrentDate:         date(2024, time.January, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	ratio := 308.417 / 257.971
	if math.Abs(result.InflationRate-(ratio-1)*100) > 1e-9 {
		t.Fatalf("unexpected inflation rate: %f", result.InflationRate)
	}
	if math.Abs(result.InflationRate-19.56) > 0.01 {
		t.Fatalf("inflation rate out of expected range: %f", result.InflationRate)
	}

	wantAdjusted := int64(math.Round(50000_00 * ratio))
	if result.AdjustedSalaryCents != wantAdjusted {
		t.Fatalf("expected adjusted %d, got %d", wantAdjusted, result.AdjustedSalaryCents)
	}

	if result.DollarGapCents == nil || result.PercentageGap == nil {
		t.Fatal("expected gap fields to be set")
	}
	if *result.DollarGapCents != 55000_00-wantAdjusted {
		t.Fatalf("unexpected dollar gap: %d", *result.DollarGapCents)
	}
	if *result.DollarGapCents >= 0 {
		t.Fatalf("expected negative gap, got %d", *result.DollarGapCents)
	}
	if math.Abs(*result.PercentageGap-(-8.0)) > 0.1 {
		t.Fatalf("unexpected percentage gap: %f", *result.PercentageGap)
	}

	if math.Abs(result.YearsElapsed-4.0) > 0.01 {
		t.Fatalf("unexpected years elapsed: %f", result.YearsElapsed)
	}

	if result.CalculationMethod != MethodExactMonth {
		t.Fatalf("expected exact method, got %s", result.CalculationMethod)
	}
	if result.HistoricalMethod != MethodExactMonth || result.CurrentMethod != MethodExactMonth {
		t.Fatalf("expected exact methods on both lookups, got %s/%s", result.HistoricalMethod, result.CurrentMethod)
	}
}

// TestCalculateGapSignConvention фиксирует знак разрыва: текущая зарплата
// выше скорректированной дает положительный разрыв.
func TestCalculateGapSignConvention(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2022, Month: time.January, Value: 100},
		{Year: 2023, Month: time.January, Value: 110},
	})
	calc := NewCalculator(provider, EstimationPolicy{})

	result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 10000_00,
		CurrentSalaryCents:  int64Ptr(12000_00),
		HistoricalDate:      date(2022, time.January, 1),
		CurrentDate:         date(2023, time.January, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.AdjustedSalaryCents != 11000_00 {
		t.Fatalf("expected adjusted 1100000, got %d", result.AdjustedSalaryCents)
	}
	if *result.DollarGapCents != 1000_00 {
		t.Fatalf("expected gap 100000, got %d", *result.DollarGapCents)
	}
}

// TestCalculateGapValidation проверяет типизированные ошибки валидации.
func TestCalculateGapValidation(t *testing.T) {
	calc := NewCalculator(NewMemoryProvider(nil), EstimationPolicy{})

	cases := []struct {
		name  string
		req   SalaryGapRequest
		field string
	}{
		{
			name: "negative original salary",
			req: SalaryGapRequest{
				OriginalSalaryCents: -100_00,
				HistoricalDate:      date(2020, time.January, 1),
				CurrentDate:         date(2024, time.January, 1),
			},
			field: "original_salary",
		},
		{
			name: "zero current salary",
			req: SalaryGapRequest{
				OriginalSalaryCents: 100_00,
				CurrentSalaryCents:  int64Ptr(0),
				HistoricalDate:      date(2020, time.January, 1),
				CurrentDate:         date(2024, time.January, 1),
			},
			field: "current_salary",
		},
		{
			name: "inverted dates",
			req: SalaryGapRequest{
				OriginalSalaryCents: 100_00,
				HistoricalDate:      date(2024, time.January, 1),
				CurrentDate:         date(2020, time.January, 1),
			},
			field: "historical_date",
		},
		{
			name: "equal dates",
			req: SalaryGapRequest{
				OriginalSalaryCents: 100_00,
				HistoricalDate:      date(2024, time.January, 1),
				CurrentDate:         date(2024, time.January, 1),
			},
			field: "historical_date",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.CalculateGap(context.Background(), tc.req)

			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidInputError, got %v", err)
			}
			if invalid.Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, invalid.Field)
			}
		})
	}
}

// TestCalculateGapUnavailable проверяет ошибку с указанием отсутствующего месяца.
func TestCalculateGapUnavailable(t *testing.T) {
	calc := NewCalculator(NewMemoryProvider(nil), EstimationPolicy{})

	_, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 100_00,
		HistoricalDate:      date(1947, time.March, 1),
		CurrentDate:         date(1948, time.March, 1),
	})

	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if unavailable.Year != 1947 || unavailable.Month != time.March {
		t.Fatalf("expected 1947-03, got %04d-%02d", unavailable.Year, int(unavailable.Month))
	}
	if unavailable.Error() != "inflation data not available for 1947-03" {
		t.Fatalf("unexpected message: %s", unavailable.Error())
	}
}

// TestCalculateGapRoundTrip проверяет, что при постоянном месячном росте r
// итоговая инфляция равна (1+r)^n - 1.
func TestCalculateGapRoundTrip(t *testing.T) {
	const monthlyRate = 0.004
	const months = 36

	provider := NewMemoryProvider(growthTable(2020, time.January, months+1, 200, monthlyRate))
	calc := NewCalculator(provider, EstimationPolicy{})

	result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 60000_00,
		HistoricalDate:      date(2020, time.January, 1),
		CurrentDate:         date(2023, time.January, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := (math.Pow(1+monthlyRate, months) - 1) * 100
	if math.Abs(result.InflationRate-want) > 1e-6 {
		t.Fatalf("expected inflation %f, got %f", want, result.InflationRate)
	}

	if result.DollarGapCents != nil || result.PercentageGap != nil {
		t.Fatal("expected gap fields to be nil without current salary")
	}
}

// TestCalculateGapMonotonicity проверяет рост скорректированной зарплаты
// с ростом исходной.
func TestCalculateGapMonotonicity(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2020, Month: time.January, Value: 250},
		{Year: 2024, Month: time.January, Value: 300},
	})
	calc := NewCalculator(provider, EstimationPolicy{})

	var previous int64
	for _, salary := range []int64{10000_00, 20000_00, 40000_00, 80000_00} {
		result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
			OriginalSalaryCents: salary,
			HistoricalDate:      date(2020, time.January, 1),
			CurrentDate:         date(2024, time.January, 1),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.AdjustedSalaryCents <= previous {
			t.Fatalf("expected adjusted salary to grow, got %d after %d", result.AdjustedSalaryCents, previous)
		}
		previous = result.AdjustedSalaryCents
	}
}

// TestCalculateGapDeterminism проверяет побитовую идентичность повторного расчета.
func TestCalculateGapDeterminism(t *testing.T) {
	provider := NewMemoryProvider(growthTable(2019, time.January, 72, 230, 0.003))
	calc := NewCalculator(provider, EstimationPolicy{})

	req := SalaryGapRequest{
		OriginalSalaryCents: 75000_00,
		CurrentSalaryCents:  int64Ptr(82000_00),
		HistoricalDate:      date(2019, time.March, 15),
		CurrentDate:         date(2024, time.November, 2),
	}

	first, err := calc.CalculateGap(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := calc.CalculateGap(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

// TestCalculateGapEstimation проверяет явный режим оценки по фиксированной ставке.
func TestCalculateGapEstimation(t *testing.T) {
	calc := NewCalculator(nil, EstimationPolicy{Enabled: true, AnnualRatePercent: 3.0})

	result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 50000_00,
		HistoricalDate:      date(2020, time.January, 1),
		CurrentDate:         date(2023, time.January, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.CalculationMethod != MethodEstimated {
		t.Fatalf("expected simplified_estimation, got %s", result.CalculationMethod)
	}

	want := (math.Pow(1.03, result.YearsElapsed) - 1) * 100
	if math.Abs(result.InflationRate-want) > 1e-9 {
		t.Fatalf("expected inflation %f, got %f", want, result.InflationRate)
	}
}

// TestCalculateGapEstimationDisabled проверяет, что без явного разрешения
// оценка не подменяет отсутствующие данные.
func TestCalculateGapEstimationDisabled(t *testing.T) {
	calc := NewCalculator(nil, EstimationPolicy{AnnualRatePercent: 3.0})

	_, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 50000_00,
		HistoricalDate:      date(2020, time.January, 1),
		CurrentDate:         date(2023, time.January, 1),
	})

	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
}

// TestCalculateGapRealDataBeatsEstimation проверяет, что при доступных данных
// режим оценки не используется даже когда он включен.
func TestCalculateGapRealDataBeatsEstimation(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2020, Month: time.January, Value: 250},
		{Year: 2024, Month: time.January, Value: 300},
	})
	calc := NewCalculator(provider, EstimationPolicy{Enabled: true, AnnualRatePercent: 3.0})

	result, err := calc.CalculateGap(context.Background(), SalaryGapRequest{
		OriginalSalaryCents: 50000_00,
		HistoricalDate:      date(2020, time.January, 1),
		CurrentDate:         date(2024, time.January, 1),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.CalculationMethod != MethodExactMonth {
		t.Fatalf("expected exact method, got %s", result.CalculationMethod)
	}
	if math.Abs(result.InflationRate-20.0) > 1e-9 {
		t.Fatalf("expected measured inflation 20%%, got %f", result.InflationRate)
	}
}

// TestSummarizeInflation проверяет суммарную и годовую инфляцию на таблице
// с ростом 3% в год.
func TestSummarizeInflation(t *testing.T) {
	annual := 0.03
	monthly := math.Pow(1+annual, 1.0/12) - 1
	provider := NewMemoryProvider(growthTable(2019, time.January, 61, 100, monthly))
	calc := NewCalculator(provider, EstimationPolicy{})

	summary, err := calc.SummarizeInflation(context.Background(), date(2019, time.January, 1), date(2024, time.January, 1))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if math.Abs(summary.TotalInflationPercent-15.93) > 0.01 {
		t.Fatalf("unexpected total inflation: %f", summary.TotalInflationPercent)
	}
	if math.Abs(summary.AnnualizedInflationPercent-3.00) > 0.01 {
		t.Fatalf("unexpected annualized inflation: %f", summary.AnnualizedInflationPercent)
	}
	if math.Abs(summary.YearsAnalyzed-5.0) > 0.01 {
		t.Fatalf("unexpected years analyzed: %f", summary.YearsAnalyzed)
	}
	if summary.PurchasingPowerLossPercent != summary.TotalInflationPercent {
		t.Fatal("expected purchasing power loss to equal total inflation")
	}
	if summary.CalculationMethod != MethodExactMonth {
		t.Fatalf("expected exact method, got %s", summary.CalculationMethod)
	}
}

// TestSummarizeInflationInvalidRange проверяет валидацию диапазона дат.
func TestSummarizeInflationInvalidRange(t *testing.T) {
	calc := NewCalculator(NewMemoryProvider(nil), EstimationPolicy{})

	_, err := calc.SummarizeInflation(context.Background(), date(2024, time.January, 1), date(2024, time.January, 1))

	var invalid *InvalidInputError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidInputError, got %v", err)
	}
	if invalid.Field != "start_date" {
		t.Fatalf("expected start_date, got %s", invalid.Field)
	}
}
