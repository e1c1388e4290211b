package inflation

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// TestResolveIndexExactMonth проверяет прямое попадание в месяц.
func TestResolveIndexExactMonth(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2023, Month: time.June, Value: 305.109},
	})

	res, err := resolveIndex(context.Background(), provider, date(2023, time.June, 20))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Method != MethodExactMonth {
		t.Fatalf("expected exact_month_match, got %s", res.Method)
	}
	if res.Value != 305.109 {
		t.Fatalf("unexpected value: %f", res.Value)
	}
}

// TestResolveIndexNearestMonth проверяет выбор ближайшего месяца в окне ±2.
func TestResolveIndexNearestMonth(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2023, Month: time.April, Value: 303.363},
	})

	res, err := resolveIndex(context.Background(), provider, date(2023, time.June, 10))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Method != MethodNearestMonth {
		t.Fatalf("expected nearest_month, got %s", res.Method)
	}
	if res.Value != 303.363 {
		t.Fatalf("unexpected value: %f", res.Value)
	}
}

// TestResolveIndexNearestPrefersPast проверяет детерминированный выбор при
// равном расстоянии: более ранний месяц побеждает.
func TestResolveIndexNearestPrefersPast(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2023, Month: time.May, Value: 304.127},
		{Year: 2023, Month: time.July, Value: 305.691},
	})

	res, err := resolveIndex(context.Background(), provider, date(2023, time.June, 10))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Method != MethodNearestMonth {
		t.Fatalf("expected nearest_month, got %s", res.Method)
	}
	if res.Value != 304.127 {
		t.Fatalf("expected past month to win, got %f", res.Value)
	}
}

// TestResolveIndexInterpolated проверяет линейную интерполяцию между
// опорными точками за пределами окна ближайшего месяца.
func TestResolveIndexInterpolated(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2023, Month: time.January, Value: 100},
		{Year: 2023, Month: time.September, Value: 108},
	})

	target := date(2023, time.May, 1)
	res, err := resolveIndex(context.Background(), provider, target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Method != MethodInterpolated {
		t.Fatalf("expected interpolated, got %s", res.Method)
	}

	span := date(2023, time.September, 1).Sub(date(2023, time.January, 1))
	elapsed := target.Sub(date(2023, time.January, 1))
	want := 100 + 8*float64(elapsed)/float64(span)
	if math.Abs(res.Value-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, res.Value)
	}
}

// TestResolveIndexUnavailable проверяет ошибку с указанием месяца.
func TestResolveIndexUnavailable(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2010, Month: time.January, Value: 216.687},
	})

	_, err := resolveIndex(context.Background(), provider, date(2023, time.June, 1))

	var unavailable *DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected DataUnavailableError, got %v", err)
	}
	if unavailable.Year != 2023 || unavailable.Month != time.June {
		t.Fatalf("expected 2023-06, got %04d-%02d", unavailable.Year, int(unavailable.Month))
	}
}

// TestResolveIndexMethodPrecedence проверяет, что точное попадание побеждает
// интерполяцию при наличии обеих возможностей.
func TestResolveIndexMethodPrecedence(t *testing.T) {
	provider := NewMemoryProvider([]IndexPoint{
		{Year: 2023, Month: time.January, Value: 100},
		{Year: 2023, Month: time.May, Value: 104},
		{Year: 2023, Month: time.September, Value: 108},
	})

	res, err := resolveIndex(context.Background(), provider, date(2023, time.May, 17))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if res.Method != MethodExactMonth {
		t.Fatalf("expected exact_month_match, got %s", res.Method)
	}
	if res.Value != 104 {
		t.Fatalf("unexpected value: %f", res.Value)
	}
}

// TestWeakerMethod проверяет ранжирование тегов стратегий.
func TestWeakerMethod(t *testing.T) {
	if got := weakerMethod(MethodExactMonth, MethodNearestMonth); got != MethodNearestMonth {
		t.Fatalf("expected nearest_month, got %s", got)
	}
	if got := weakerMethod(MethodInterpolated, MethodNearestMonth); got != MethodInterpolated {
		t.Fatalf("expected interpolated, got %s", got)
	}
	if got := weakerMethod(MethodExactMonth, MethodExactMonth); got != MethodExactMonth {
		t.Fatalf("expected exact_month_match, got %s", got)
	}
}
