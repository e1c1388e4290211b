package inflation

import (
	"context"
	"time"
)

// Method помечает стратегию, которой было разрешено значение индекса.
type Method string

const (
	MethodExactMonth   Method = "exact_month_match"
	MethodNearestMonth Method = "nearest_month"
	MethodInterpolated Method = "interpolated"
	MethodEstimated    Method = "simplified_estimation"
)

const (
	// Окно поиска ближайшего месяца в каждую сторону.
	nearestWindowMonths = 2
	// Максимальное расстояние до опорных точек интерполяции.
	interpolationMaxSpanMonths = 12
)

var methodRank = map[Method]int{
	MethodExactMonth:   0,
	MethodNearestMonth: 1,
	MethodInterpolated: 2,
	MethodEstimated:    3,
}

// weakerMethod возвращает менее точный из двух тегов.
func weakerMethod(a, b Method) Method {
	if methodRank[a] >= methodRank[b] {
		return a
	}
	return b
}

type resolution struct {
	Value  float64
	Method Method
}

// resolveIndex подбирает значение индекса для произвольной даты.
// Порядок стратегий фиксирован: точный месяц, ближайший месяц в окне,
// линейная интерполяция между опорными точками, иначе ошибка.
func resolveIndex(ctx context.Context, provider IndexProvider, date time.Time) (resolution, error) {
	if provider == nil {
		return resolution{}, &DataUnavailableError{Year: date.Year(), Month: date.Month()}
	}

	point, found, err := provider.Lookup(ctx, date.Year(), date.Month())
	if err != nil {
		return resolution{}, err
	}
	if found {
		return resolution{Value: point.Value, Method: MethodExactMonth}, nil
	}

	if value, ok, err := nearestMonth(ctx, provider, date); err != nil {
		return resolution{}, err
	} else if ok {
		return resolution{Value: value, Method: MethodNearestMonth}, nil
	}

	if value, ok, err := interpolate(ctx, provider, date); err != nil {
		return resolution{}, err
	} else if ok {
		return resolution{Value: value, Method: MethodInterpolated}, nil
	}

	return resolution{}, &DataUnavailableError{Year: date.Year(), Month: date.Month()}
}

// nearestMonth ищет точку в окне ±nearestWindowMonths, ближайшую к дате.
// При равном расстоянии предпочитается более ранний месяц, чтобы выбор
// был детерминированным.
func nearestMonth(ctx context.Context, provider IndexProvider, date time.Time) (float64, bool, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)

	for offset := 1; offset <= nearestWindowMonths; offset++ {
		for _, shifted := range []time.Time{
			monthStart.AddDate(0, -offset, 0),
			monthStart.AddDate(0, offset, 0),
		} {
			point, found, err := provider.Lookup(ctx, shifted.Year(), shifted.Month())
			if err != nil {
				return 0, false, err
			}
			if found {
				return point.Value, true, nil
			}
		}
	}

	return 0, false, nil
}

// interpolate линейно интерполирует индекс между последней точкой до даты и
// первой точкой после нее, пропорционально прошедшим дням.
func interpolate(ctx context.Context, provider IndexProvider, date time.Time) (float64, bool, error) {
	monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
	windowStart := monthStart.AddDate(0, -interpolationMaxSpanMonths, 0)
	windowEnd := monthStart.AddDate(0, interpolationMaxSpanMonths, 0)

	points, err := provider.LookupRange(ctx, windowStart, windowEnd)
	if err != nil {
		return 0, false, err
	}

	var before, after *IndexPoint
	for i := range points {
		point := points[i]
		if !point.Date().After(date) {
			before = &point
			continue
		}
		after = &point
		break
	}

	if before == nil || after == nil {
		return 0, false, nil
	}

	span := after.Date().Sub(before.Date())
	if span <= 0 {
		return 0, false, nil
	}

	elapsed := date.Sub(before.Date())
	fraction := float64(elapsed) / float64(span)
	value := before.Value + (after.Value-before.Value)*fraction
	return value, true, nil
}
