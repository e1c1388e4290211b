package inflation

import (
	"fmt"
	"time"
)

// InvalidInputError возвращается, когда запрос нарушает инвариант входных данных.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// DataUnavailableError возвращается, когда индекс CPI не удалось разрешить
// для запрошенного месяца ни одной из стратегий.
type DataUnavailableError struct {
	Year  int
	Month time.Month
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("inflation data not available for %04d-%02d", e.Year, int(e.Month))
}
