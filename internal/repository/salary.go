package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/wagelift/backend/internal/models"
)

type SalaryRepository struct {
	db *pgxpool.Pool
}

// NewSalaryRepository создает репозиторий записей о зарплате.
func NewSalaryRepository(db *pgxpool.Pool) *SalaryRepository {
	return &SalaryRepository{db: db}
}

// Create сохраняет запись о зарплате пользователя.
func (r *SalaryRepository) Create(ctx context.Context, userID uuid.UUID, jobTitle string, employer *string, salaryCents int64, effectiveDate time.Time) (models.SalaryRecord, error) {
	var record models.SalaryRecord
	var employerValue *string

	err := r.db.QueryRow(ctx,
		`INSERT INTO salary_records (user_id, job_title, employer, salary_cents, effective_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, job_title, employer, salary_cents, effective_date, created_at, updated_at`,
		userID, jobTitle, employer, salaryCents, effectiveDate,
	).Scan(&record.ID, &record.UserID, &record.JobTitle, &employerValue, &record.SalaryCents, &record.EffectiveDate, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return record, err
	}

	record.Employer = employerValue
	return record, nil
}

// ListByUser возвращает записи пользователя от новых к старым по дате действия.
func (r *SalaryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SalaryRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, job_title, employer, salary_cents, effective_date, created_at, updated_at
		 FROM salary_records
		 WHERE user_id = $1
		 ORDER BY effective_date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.SalaryRecord, 0)
	for rows.Next() {
		var record models.SalaryRecord
		var employerValue *string
		err := rows.Scan(&record.ID, &record.UserID, &record.JobTitle, &employerValue, &record.SalaryCents, &record.EffectiveDate, &record.CreatedAt, &record.UpdatedAt)
		if err != nil {
			return nil, err
		}
		record.Employer = employerValue
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByID возвращает запись пользователя по идентификатору.
func (r *SalaryRepository) GetByID(ctx context.Context, userID, recordID uuid.UUID) (models.SalaryRecord, error) {
	var record models.SalaryRecord
	var employerValue *string

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, job_title, employer, salary_cents, effective_date, created_at, updated_at
		 FROM salary_records
		 WHERE id = $1 AND user_id = $2`,
		recordID, userID,
	).Scan(&record.ID, &record.UserID, &record.JobTitle, &employerValue, &record.SalaryCents, &record.EffectiveDate, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record, ErrNotFound
		}
		return record, err
	}

	record.Employer = employerValue
	return record, nil
}

// Update обновляет запись о зарплате.
func (r *SalaryRepository) Update(ctx context.Context, userID, recordID uuid.UUID, jobTitle string, employer *string, salaryCents int64, effectiveDate time.Time) (models.SalaryRecord, error) {
	var record models.SalaryRecord
	var employerValue *string

	err := r.db.QueryRow(ctx,
		`UPDATE salary_records
		 SET job_title = $3, employer = $4, salary_cents = $5, effective_date = $6, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, job_title, employer, salary_cents, effective_date, created_at, updated_at`,
		recordID, userID, jobTitle, employer, salaryCents, effectiveDate,
	).Scan(&record.ID, &record.UserID, &record.JobTitle, &employerValue, &record.SalaryCents, &record.EffectiveDate, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record, ErrNotFound
		}
		return record, err
	}

	record.Employer = employerValue
	return record, nil
}

// Delete удаляет запись пользователя.
func (r *SalaryRepository) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM salary_records WHERE id = $1 AND user_id = $2`,
		recordID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
