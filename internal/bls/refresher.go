package bls

import (
	"context"
	"log/slog"
	"time"

	"example.com/wagelift/backend/internal/models"
	"example.com/wagelift/backend/internal/repository"
)

// Refresher периодически подтягивает опубликованные точки CPI из BLS и
// складывает их в хранилище. Калькулятор про этот цикл не знает: он видит
// только провайдер индекса.
type Refresher struct {
	client    *Client
	repo      *repository.CPIRepository
	logger    *slog.Logger
	seriesID  string
	startYear int
	interval  time.Duration
}

// NewRefresher создает фоновый обновлятор точек CPI.
func NewRefresher(client *Client, repo *repository.CPIRepository, logger *slog.Logger, seriesID string, startYear int, interval time.Duration) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		client:    client,
		repo:      repo,
		logger:    logger,
		seriesID:  seriesID,
		startYear: startYear,
		interval:  interval,
	}
}

// Run обновляет данные сразу и далее по интервалу до отмены контекста.
func (r *Refresher) Run(ctx context.Context) {
	if _, err := r.RefreshOnce(ctx); err != nil {
		r.logger.Error("cpi refresh failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.RefreshOnce(ctx); err != nil {
				r.logger.Error("cpi refresh failed", slog.String("error", err.Error()))
			}
		}
	}
}

// RefreshOnce запрашивает ряд от последнего сохраненного года (или стартового)
// до текущего и сохраняет новые точки. Возвращает число сохраненных точек.
func (r *Refresher) RefreshOnce(ctx context.Context) (int, error) {
	fromYear := r.startYear
	if latestYear, _, err := r.repo.LatestPeriod(ctx); err == nil {
		// Перезапрашиваем последний год: в нем могли появиться новые месяцы
		// или уточненные значения.
		fromYear = latestYear
	}

	toYear := time.Now().UTC().Year()
	if fromYear > toYear {
		fromYear = toYear
	}

	observations, err := r.client.FetchSeries(ctx, r.seriesID, fromYear, toYear)
	if err != nil {
		return 0, err
	}

	points := make([]models.CPIIndexPoint, 0, len(observations))
	for _, obs := range observations {
		points = append(points, models.CPIIndexPoint{
			SeriesID: r.seriesID,
			Year:     obs.Year,
			Month:    int(obs.Month),
			Value:    obs.Value,
		})
	}

	stored, err := r.repo.Upsert(ctx, points)
	if err != nil {
		return 0, err
	}

	r.logger.Info("cpi refresh completed",
		slog.String("series_id", r.seriesID),
		slog.Int("from_year", fromYear),
		slog.Int("to_year", toYear),
		slog.Int("points", stored),
	)

	return stored, nil
}
