package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/auth"
	"example.com/wagelift/backend/internal/models"
	"example.com/wagelift/backend/internal/repository"
)

const dateLayout = "2006-01-02"

type SalaryHandler struct {
	Salaries *repository.SalaryRepository
}

// NewSalaryHandler создает обработчик записей о зарплате.
func NewSalaryHandler(salaries *repository.SalaryRepository) *SalaryHandler {
	return &SalaryHandler{Salaries: salaries}
}

type SalaryRequest struct {
	JobTitle      string  `json:"job_title" validate:"required,max=200"`
	Employer      *string `json:"employer" validate:"omitempty,max=200"`
	SalaryCents   int64   `json:"salary_cents" validate:"required,gt=0"`
	EffectiveDate string  `json:"effective_date" validate:"required,isodate"`
}

type SalaryResponse struct {
	ID            uuid.UUID `json:"id"`
	JobTitle      string    `json:"job_title"`
	Employer      *string   `json:"employer,omitempty"`
	SalaryCents   int64     `json:"salary_cents"`
	EffectiveDate string    `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// List возвращает записи о зарплате пользователя.
func (h *SalaryHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	records, err := h.Salaries.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]SalaryResponse, 0, len(records))
	for _, record := range records {
		response = append(response, toSalaryResponse(record))
	}

	return c.JSON(http.StatusOK, map[string][]SalaryResponse{"salary_records": response})
}

// Create добавляет запись о зарплате.
func (h *SalaryHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	req, effectiveDate, err := bindSalaryRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	record, err := h.Salaries.Create(c.Request().Context(), userID, req.JobTitle, req.Employer, req.SalaryCents, effectiveDate)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toSalaryResponse(record))
}

// Get возвращает запись по идентификатору.
func (h *SalaryHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid salary record id")
	}

	record, err := h.Salaries.GetByID(c.Request().Context(), userID, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "salary record not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toSalaryResponse(record))
}

// Update обновляет запись о зарплате.
func (h *SalaryHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid salary record id")
	}

	req, effectiveDate, err := bindSalaryRequest(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	record, err := h.Salaries.Update(c.Request().Context(), userID, recordID, req.JobTitle, req.Employer, req.SalaryCents, effectiveDate)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "salary record not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toSalaryResponse(record))
}

// Delete удаляет запись о зарплате.
func (h *SalaryHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid salary record id")
	}

	if err := h.Salaries.Delete(c.Request().Context(), userID, recordID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "salary record not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func bindSalaryRequest(c echo.Context) (SalaryRequest, time.Time, error) {
	var req SalaryRequest
	if err := c.Bind(&req); err != nil {
		return req, time.Time{}, errors.New("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return req, time.Time{}, errors.New("validation failed")
	}

	req.JobTitle = strings.TrimSpace(req.JobTitle)
	if req.JobTitle == "" {
		return req, time.Time{}, errors.New("job_title is required")
	}

	req.Employer = normalizeName(req.Employer)

	effectiveDate, err := parseDate(req.EffectiveDate)
	if err != nil {
		return req, time.Time{}, errors.New("invalid effective_date format")
	}
	if effectiveDate.After(time.Now().UTC()) {
		return req, time.Time{}, errors.New("effective_date must not be in the future")
	}

	return req, effectiveDate, nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(value))
}

func toSalaryResponse(record models.SalaryRecord) SalaryResponse {
	return SalaryResponse{
		ID:            record.ID,
		JobTitle:      record.JobTitle,
		Employer:      record.Employer,
		SalaryCents:   record.SalaryCents,
		EffectiveDate: record.EffectiveDate.Format(dateLayout),
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
