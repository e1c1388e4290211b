package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/wagelift/backend/internal/inflation"
	"example.com/wagelift/backend/internal/models"
)

// CPIRepository хранит опубликованные точки индекса CPI и реализует
// inflation.IndexProvider поверх PostgreSQL.
type CPIRepository struct {
	db       *pgxpool.Pool
	seriesID string
}

// NewCPIRepository создает репозиторий точек CPI для заданного ряда.
func NewCPIRepository(db *pgxpool.Pool, seriesID string) *CPIRepository {
	if seriesID == "" {
		seriesID = models.DefaultCPISeriesID
	}

	return &CPIRepository{db: db, seriesID: seriesID}
}

// Lookup возвращает значение индекса за точный месяц, если оно опубликовано.
func (r *CPIRepository) Lookup(ctx context.Context, year int, month time.Month) (inflation.IndexPoint, bool, error) {
	var point inflation.IndexPoint
	var monthNum int

	err := r.db.QueryRow(ctx,
		`SELECT year, month, value
		 FROM cpi_index_points
		 WHERE series_id = $1 AND year = $2 AND month = $3`,
		r.seriesID, year, int(month),
	).Scan(&point.Year, &monthNum, &point.Value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inflation.IndexPoint{}, false, nil
		}
		return inflation.IndexPoint{}, false, err
	}

	point.Month = time.Month(monthNum)
	return point, true, nil
}

// LookupRange возвращает точки ряда в диапазоне дат по возрастанию.
func (r *CPIRepository) LookupRange(ctx context.Context, start, end time.Time) ([]inflation.IndexPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT year, month, value
		 FROM cpi_index_points
		 WHERE series_id = $1
		   AND make_date(year, month, 1) BETWEEN $2 AND $3
		 ORDER BY year, month`,
		r.seriesID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]inflation.IndexPoint, 0)
	for rows.Next() {
		var point inflation.IndexPoint
		var monthNum int
		if err := rows.Scan(&point.Year, &monthNum, &point.Value); err != nil {
			return nil, err
		}
		point.Month = time.Month(monthNum)
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Upsert сохраняет точки индекса, обновляя уже известные месяцы.
func (r *CPIRepository) Upsert(ctx context.Context, points []models.CPIIndexPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	stored := 0
	for _, point := range points {
		if point.Month < 1 || point.Month > 12 || point.Value <= 0 {
			return 0, ErrInvalid
		}

		seriesID := point.SeriesID
		if seriesID == "" {
			seriesID = r.seriesID
		}
		category := point.Category
		if category == "" {
			category = models.DefaultCPICategory
		}
		region := point.Region
		if region == "" {
			region = models.DefaultCPIRegion
		}

		_, err := tx.Exec(ctx,
			`INSERT INTO cpi_index_points (series_id, year, month, value, category, region, fetched_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())
			 ON CONFLICT (series_id, year, month)
			 DO UPDATE SET value = EXCLUDED.value, fetched_at = NOW()`,
			seriesID, point.Year, point.Month, point.Value, category, region,
		)
		if err != nil {
			return 0, err
		}
		stored++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return stored, nil
}

// LatestPeriod возвращает последний опубликованный месяц ряда.
func (r *CPIRepository) LatestPeriod(ctx context.Context) (int, time.Month, error) {
	var year, month int

	err := r.db.QueryRow(ctx,
		`SELECT year, month
		 FROM cpi_index_points
		 WHERE series_id = $1
		 ORDER BY year DESC, month DESC
		 LIMIT 1`,
		r.seriesID,
	).Scan(&year, &month)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}

	return year, time.Month(month), nil
}

// Count возвращает число сохраненных точек ряда.
func (r *CPIRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cpi_index_points WHERE series_id = $1`,
		r.seriesID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
