package handlers

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"

	"example.com/wagelift/backend/internal/models"
)

// TestWriteCalculationsCSV проверяет структуру CSV-выгрузки.
func TestWriteCalculationsCSV(t *testing.T) {
	gap := int64(-477756)
	pct := -7.99
	current := int64(5500000)

	calcs := []models.GapCalculation{
		{
			ID:                  uuid.New(),
			OriginalSalaryCents: 5000000,
			CurrentSalaryCents:  &current,
			HistoricalDate:      time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
			CurrentDate:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			AdjustedSalaryCents: 5977756,
			DollarGapCents:      &gap,
			PercentageGap:       &pct,
			InflationRate:       19.5551,
			YearsElapsed:        4.0,
			CalculationMethod:   "exact_month_match",
			CreatedAt:           time.Now().UTC(),
		},
		{
			ID:                  uuid.New(),
			OriginalSalaryCents: 6000000,
			HistoricalDate:      time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
			CurrentDate:         time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			AdjustedSalaryCents: 6900000,
			InflationRate:       15.0,
			YearsElapsed:        3.0,
			CalculationMethod:   "nearest_month",
			CreatedAt:           time.Now().UTC(),
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeCalculationsCSV(writer, calcs); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("expected valid csv, got %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d records", len(records))
	}

	if records[0][0] != "calculation_id" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][10] != "exact_month_match" {
		t.Fatalf("unexpected method column: %s", records[1][10])
	}
	if records[2][4] != "" {
		t.Fatalf("expected empty current salary for row without it, got %q", records[2][4])
	}
}
