package bls

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetchSeries проверяет разбор успешного ответа BLS.
func TestFetchSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		if !strings.HasSuffix(r.URL.Path, "/timeseries/data/") {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "REQUEST_SUCCEEDED",
			"Results": {
				"series": [{
					"seriesID": "CUUR0000SA0",
					"data": [
						{"year": "2024", "period": "M02", "value": "310.326"},
						{"year": "2024", "period": "M01", "value": "308.417"},
						{"year": "2023", "period": "M13", "value": "304.702"}
					]
				}]
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	observations, err := client.FetchSeries(context.Background(), "CUUR0000SA0", 2023, 2024)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(observations) != 2 {
		t.Fatalf("expected 2 observations (annual M13 skipped), got %d", len(observations))
	}

	first := observations[0]
	if first.Year != 2024 || first.Month != time.February || first.Value != 310.326 {
		t.Fatalf("unexpected observation: %+v", first)
	}
}

// TestFetchSeriesAPIError проверяет обработку неуспешного статуса API.
func TestFetchSeriesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "REQUEST_NOT_PROCESSED", "message": ["daily threshold reached"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "", 5*time.Second)

	_, err := client.FetchSeries(context.Background(), "CUUR0000SA0", 2023, 2024)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "daily threshold reached") {
		t.Fatalf("expected API message in error, got %v", err)
	}
}

// TestFetchSeriesInvalidRange проверяет валидацию диапазона лет.
func TestFetchSeriesInvalidRange(t *testing.T) {
	client := NewClient("http://localhost", "", time.Second)

	if _, err := client.FetchSeries(context.Background(), "CUUR0000SA0", 2024, 2020); err == nil {
		t.Fatal("expected error for inverted years")
	}

	if _, err := client.FetchSeries(context.Background(), " ", 2020, 2024); err == nil {
		t.Fatal("expected error for missing series id")
	}
}

// TestParsePeriod проверяет разбор месячных периодов.
func TestParsePeriod(t *testing.T) {
	if month, ok := parsePeriod("M07"); !ok || month != time.July {
		t.Fatalf("expected July, got %v (ok=%v)", month, ok)
	}

	for _, period := range []string{"M13", "A01", "S01", "M00", "January"} {
		if _, ok := parsePeriod(period); ok {
			t.Fatalf("expected %s to be rejected", period)
		}
	}
}
