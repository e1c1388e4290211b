package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Ряд CPI по умолчанию: All Urban Consumers, U.S. city average.
	DefaultCPISeriesID = "CUUR0000SA0"
	DefaultCPICategory = "All Urban Consumers"
	DefaultCPIRegion   = "US"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SalaryRecord struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	JobTitle      string    `json:"job_title"`
	Employer      *string   `json:"employer,omitempty"`
	SalaryCents   int64     `json:"salary_cents"`
	EffectiveDate time.Time `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CPIIndexPoint — опубликованное значение индекса за месяц. Точки приходят
// из внешнего источника и внутри сервиса только читаются.
type CPIIndexPoint struct {
	SeriesID  string    `json:"series_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Value     float64   `json:"value"`
	Category  string    `json:"category"`
	Region    string    `json:"region"`
	FetchedAt time.Time `json:"fetched_at"`
}

// GapCalculation — сохраненный результат расчета инфляционного разрыва
// вместе с входными данными, по которым он был получен.
type GapCalculation struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	OriginalSalaryCents int64     `json:"original_salary_cents"`
	CurrentSalaryCents  *int64    `json:"current_salary_cents,omitempty"`
	HistoricalDate      time.Time `json:"historical_date"`
	CurrentDate         time.Time `json:"current_date"`
	AdjustedSalaryCents int64     `json:"adjusted_salary_cents"`
	DollarGapCents      *int64    `json:"dollar_gap_cents,omitempty"`
	PercentageGap       *float64  `json:"percentage_gap,omitempty"`
	InflationRate       float64   `json:"inflation_rate"`
	YearsElapsed        float64   `json:"years_elapsed"`
	CalculationMethod   string    `json:"calculation_method"`
	CreatedAt           time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}
