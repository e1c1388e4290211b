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

type CalculationRepository struct {
	db *pgxpool.Pool
}

// NewCalculationRepository создает репозиторий сохраненных расчетов.
func NewCalculationRepository(db *pgxpool.Pool) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// Create сохраняет результат расчета вместе с входными данными.
func (r *CalculationRepository) Create(ctx context.Context, calc models.GapCalculation) (models.GapCalculation, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO gap_calculations
		   (user_id, original_salary_cents, current_salary_cents, historical_date, current_date_value,
		    adjusted_salary_cents, dollar_gap_cents, percentage_gap, inflation_rate, years_elapsed, calculation_method)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		calc.UserID, calc.OriginalSalaryCents, calc.CurrentSalaryCents, calc.HistoricalDate, calc.CurrentDate,
		calc.AdjustedSalaryCents, calc.DollarGapCents, calc.PercentageGap, calc.InflationRate, calc.YearsElapsed, calc.CalculationMethod,
	).Scan(&calc.ID, &calc.CreatedAt)
	if err != nil {
		return calc, err
	}

	return calc, nil
}

// ListByUser возвращает расчеты пользователя от новых к старым.
func (r *CalculationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.GapCalculation, error) {
	if limit <= 0 {
		return nil, ErrInvalid
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, original_salary_cents, current_salary_cents, historical_date, current_date_value,
		        adjusted_salary_cents, dollar_gap_cents, percentage_gap, inflation_rate, years_elapsed, calculation_method, created_at
		 FROM gap_calculations
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	calcs := make([]models.GapCalculation, 0)
	for rows.Next() {
		calc, err := scanCalculation(rows)
		if err != nil {
			return nil, err
		}
		calcs = append(calcs, calc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return calcs, nil
}

// GetByID возвращает расчет пользователя по идентификатору.
func (r *CalculationRepository) GetByID(ctx context.Context, userID, calcID uuid.UUID) (models.GapCalculation, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, original_salary_cents, current_salary_cents, historical_date, current_date_value,
		        adjusted_salary_cents, dollar_gap_cents, percentage_gap, inflation_rate, years_elapsed, calculation_method, created_at
		 FROM gap_calculations
		 WHERE id = $1 AND user_id = $2`,
		calcID, userID,
	)

	calc, err := scanCalculation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calc, ErrNotFound
		}
		return calc, err
	}

	return calc, nil
}

// Delete удаляет расчет пользователя.
func (r *CalculationRepository) Delete(ctx context.Context, userID, calcID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM gap_calculations WHERE id = $1 AND user_id = $2`,
		calcID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

type CalculationOverview struct {
	TotalCalculations int
	AvgPercentageGap  *float64
	BehindInflation   int
	AheadOfInflation  int
	LatestCreatedAt   *time.Time
}

// Overview возвращает сводку по расчетам пользователя.
func (r *CalculationRepository) Overview(ctx context.Context, userID uuid.UUID) (CalculationOverview, error) {
	var overview CalculationOverview

	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) AS total,
		        AVG(percentage_gap) AS avg_gap,
		        COUNT(*) FILTER (WHERE dollar_gap_cents < 0) AS behind,
		        COUNT(*) FILTER (WHERE dollar_gap_cents >= 0) AS ahead,
		        MAX(created_at) AS latest
		 FROM gap_calculations
		 WHERE user_id = $1`,
		userID,
	).Scan(&overview.TotalCalculations, &overview.AvgPercentageGap, &overview.BehindInflation, &overview.AheadOfInflation, &overview.LatestCreatedAt)
	if err != nil {
		return overview, err
	}

	return overview, nil
}

func scanCalculation(row pgx.Row) (models.GapCalculation, error) {
	var calc models.GapCalculation
	var currentSalary *int64
	var dollarGap *int64
	var percentageGap *float64

	err := row.Scan(
		&calc.ID, &calc.UserID, &calc.OriginalSalaryCents, &currentSalary, &calc.HistoricalDate, &calc.CurrentDate,
		&calc.AdjustedSalaryCents, &dollarGap, &percentageGap, &calc.InflationRate, &calc.YearsElapsed, &calc.CalculationMethod, &calc.CreatedAt,
	)
	if err != nil {
		return calc, err
	}

	calc.CurrentSalaryCents = currentSalary
	calc.DollarGapCents = dollarGap
	calc.PercentageGap = percentageGap
	return calc, nil
}
