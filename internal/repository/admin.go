package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/wagelift/backend/internal/models"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

type UsageStats struct {
	TotalUsers         int64
	TotalSalaryRecords int64
	TotalCalculations  int64
	TotalCPIPoints     int64
	LatestCPIFetchedAt *time.Time
}

// NewAdminRepository создает репозиторий административной статистики.
func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

// ListUsers возвращает пользователей с числом их расчетов.
func (r *AdminRepository) ListUsers(ctx context.Context, limit, offset int) ([]models.User, []int64, error) {
	if limit <= 0 || offset < 0 {
		return nil, nil, ErrInvalid
	}

	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.email, u.name, u.created_at, u.updated_at,
		        COUNT(c.id) AS calculations
		 FROM users u
		 LEFT JOIN gap_calculations c ON c.user_id = u.id
		 GROUP BY u.id
		 ORDER BY u.created_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	users := make([]models.User, 0)
	counts := make([]int64, 0)
	for rows.Next() {
		var user models.User
		var nameValue *string
		var count int64
		err := rows.Scan(&user.ID, &user.Email, &nameValue, &user.CreatedAt, &user.UpdatedAt, &count)
		if err != nil {
			return nil, nil, err
		}
		user.Name = nameValue
		users = append(users, user)
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return users, counts, nil
}

// Usage возвращает сводные счетчики сервиса.
func (r *AdminRepository) Usage(ctx context.Context) (UsageStats, error) {
	var stats UsageStats

	err := r.db.QueryRow(ctx,
		`SELECT (SELECT COUNT(*) FROM users),
		        (SELECT COUNT(*) FROM salary_records),
		        (SELECT COUNT(*) FROM gap_calculations),
		        (SELECT COUNT(*) FROM cpi_index_points),
		        (SELECT MAX(fetched_at) FROM cpi_index_points)`,
	).Scan(&stats.TotalUsers, &stats.TotalSalaryRecords, &stats.TotalCalculations, &stats.TotalCPIPoints, &stats.LatestCPIFetchedAt)
	if err != nil {
		return stats, err
	}

	return stats, nil
}
