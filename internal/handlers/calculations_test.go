package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/inflation"
)

// TestParseDate проверяет разбор даты запроса.
func TestParseDate(t *testing.T) {
	got, err := parseDate(" 2024-01-15 ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Format(dateLayout) != "2024-01-15" {
		t.Fatalf("unexpected date: %s", got.Format(dateLayout))
	}

	if _, err := parseDate("2024/01/15"); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

// TestInflationErrorMapping проверяет трансляцию ошибок калькулятора в HTTP-коды.
func TestInflationErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "invalid input",
			err:  &inflation.InvalidInputError{Field: "original_salary", Reason: "must be positive"},
			code: http.StatusBadRequest,
		},
		{
			name: "data unavailable",
			err:  &inflation.DataUnavailableError{Year: 1947, Month: time.March},
			code: http.StatusUnprocessableEntity,
		},
		{
			name: "unknown",
			err:  http.ErrBodyNotAllowed,
			code: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			if err := inflationError(c, tc.err); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected status %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

// TestNormalizeName проверяет нормализацию опциональных строк.
func TestNormalizeName(t *testing.T) {
	if got := normalizeName(nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}

	empty := "   "
	if got := normalizeName(&empty); got != nil {
		t.Fatalf("expected nil for blank string, got %v", got)
	}

	value := "  Acme Corp  "
	got := normalizeName(&value)
	if got == nil || *got != "Acme Corp" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}
