package inflation

import (
	"context"
	"sort"
	"time"
)

// IndexPoint — опубликованное значение индекса CPI за календарный месяц.
type IndexPoint struct {
	Year  int
	Month time.Month
	Value float64
}

// Date возвращает первый день месяца точки в UTC.
func (p IndexPoint) Date() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// IndexProvider отдает значения индекса CPI помесячно. Реализация может
// ходить в базу или держать таблицу в памяти; калькулятор этого не знает.
type IndexProvider interface {
	Lookup(ctx context.Context, year int, month time.Month) (IndexPoint, bool, error)
	LookupRange(ctx context.Context, start, end time.Time) ([]IndexPoint, error)
}

// MemoryProvider — детерминированный провайдер поверх таблицы в памяти.
// Используется в тестах и в деградированном режиме без базы.
type MemoryProvider struct {
	points []IndexPoint
}

// NewMemoryProvider копирует точки и сортирует их по (год, месяц).
func NewMemoryProvider(points []IndexPoint) *MemoryProvider {
	sorted := make([]IndexPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].Month < sorted[j].Month
	})

	return &MemoryProvider{points: sorted}
}

// Lookup возвращает точку за точный месяц, если она есть.
func (p *MemoryProvider) Lookup(_ context.Context, year int, month time.Month) (IndexPoint, bool, error) {
	for _, point := range p.points {
		if point.Year == year && point.Month == month {
			return point, true, nil
		}
	}

	return IndexPoint{}, false, nil
}

// LookupRange возвращает точки в диапазоне дат по возрастанию.
func (p *MemoryProvider) LookupRange(_ context.Context, start, end time.Time) ([]IndexPoint, error) {
	out := make([]IndexPoint, 0)
	for _, point := range p.points {
		date := point.Date()
		if date.Before(start) || date.After(end) {
			continue
		}
		out = append(out, point)
	}

	return out, nil
}
