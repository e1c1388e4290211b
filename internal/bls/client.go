package bls

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const statusSucceeded = "REQUEST_SUCCEEDED"

// Client обращается к публичному API BLS v2 за рядами CPI.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Observation — одно месячное значение ряда, уже разобранное из ответа API.
type Observation struct {
	Year  int
	Month time.Month
	Value float64
}

type timeseriesRequest struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

type timeseriesResponse struct {
	Status  string   `json:"status"`
	Message []string `json:"message,omitempty"`
	Results struct {
		Series []struct {
			SeriesID string `json:"seriesID"`
			Data     []struct {
				Year   string `json:"year"`
				Period string `json:"period"`
				Value  string `json:"value"`
			} `json:"data"`
		} `json:"series"`
	} `json:"Results"`
}

// NewClient создает клиент BLS с заданными параметрами.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	trimmedURL := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: trimmedURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchSeries запрашивает месячные значения ряда за диапазон лет.
// Годовые агрегаты (период M13) отбрасываются.
func (c *Client) FetchSeries(ctx context.Context, seriesID string, startYear, endYear int) ([]Observation, error) {
	if strings.TrimSpace(seriesID) == "" {
		return nil, errors.New("series id is missing")
	}
	if startYear > endYear {
		return nil, errors.New("start year is after end year")
	}

	reqBody := timeseriesRequest{
		SeriesID:        []string{seriesID},
		StartYear:       strconv.Itoa(startYear),
		EndYear:         strconv.Itoa(endYear),
		RegistrationKey: c.apiKey,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/timeseries/data/", c.baseURL)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("bls api error: %s", strings.TrimSpace(string(body)))
	}

	var parsed timeseriesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	if parsed.Status != statusSucceeded {
		if len(parsed.Message) > 0 {
			return nil, fmt.Errorf("bls api error: %s", strings.Join(parsed.Message, "; "))
		}
		return nil, fmt.Errorf("bls api error: status %s", parsed.Status)
	}

	if len(parsed.Results.Series) == 0 {
		return nil, errors.New("bls response missing series")
	}

	observations := make([]Observation, 0, len(parsed.Results.Series[0].Data))
	for _, item := range parsed.Results.Series[0].Data {
		month, ok := parsePeriod(item.Period)
		if !ok {
			continue
		}

		year, err := strconv.Atoi(item.Year)
		if err != nil {
			return nil, fmt.Errorf("bls response has invalid year %q: %w", item.Year, err)
		}

		value, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("bls response has invalid value %q: %w", item.Value, err)
		}

		observations = append(observations, Observation{
			Year:  year,
			Month: month,
			Value: value,
		})
	}

	return observations, nil
}

// parsePeriod разбирает месячный период вида M01..M12.
func parsePeriod(period string) (time.Month, bool) {
	if len(period) != 3 || period[0] != 'M' {
		return 0, false
	}

	num, err := strconv.Atoi(period[1:])
	if err != nil || num < 1 || num > 12 {
		return 0, false
	}

	return time.Month(num), true
}
