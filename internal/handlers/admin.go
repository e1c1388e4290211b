package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/auth"
	"example.com/wagelift/backend/internal/bls"
	"example.com/wagelift/backend/internal/models"
	"example.com/wagelift/backend/internal/repository"
)

type AdminHandler struct {
	Admin     *repository.AdminRepository
	CPI       *repository.CPIRepository
	Refresher *bls.Refresher
}

// NewAdminHandler создает административный обработчик.
func NewAdminHandler(admin *repository.AdminRepository, cpi *repository.CPIRepository, refresher *bls.Refresher) *AdminHandler {
	return &AdminHandler{
		Admin:     admin,
		CPI:       cpi,
		Refresher: refresher,
	}
}

// AdminMiddleware пропускает только пользователей из списка администраторов.
func AdminMiddleware(users *repository.UserRepository, adminEmails []string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowed[strings.ToLower(email)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := auth.UserIDFromContext(c)
			if !ok {
				return unauthorized(c)
			}

			user, err := users.GetByID(c.Request().Context(), userID)
			if err != nil {
				return unauthorized(c)
			}

			if _, ok := allowed[strings.ToLower(user.Email)]; !ok {
				return forbidden(c)
			}

			return next(c)
		}
	}
}

type AdminUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name,omitempty"`
	Calculations int64     `json:"calculations"`
	CreatedAt    time.Time `json:"created_at"`
}

type AdminUsersResponse struct {
	Users []AdminUser `json:"users"`
}

type UsageResponse struct {
	TotalUsers         int64      `json:"total_users"`
	TotalSalaryRecords int64      `json:"total_salary_records"`
	TotalCalculations  int64      `json:"total_calculations"`
	TotalCPIPoints     int64      `json:"total_cpi_points"`
	LatestCPIFetchedAt *time.Time `json:"latest_cpi_fetched_at,omitempty"`
}

type CPIPointRequest struct {
	Year  int     `json:"year" validate:"required,gte=1913"`
	Month int     `json:"month" validate:"required,gte=1,lte=12"`
	Value float64 `json:"value" validate:"required,gt=0"`
}

type CPIPointsRequest struct {
	Points []CPIPointRequest `json:"points" validate:"required,min=1,dive"`
}

type CPIRefreshResponse struct {
	PointsStored int `json:"points_stored"`
}

// ListUsers возвращает список пользователей с числом их расчетов.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return badRequest(c, "invalid limit")
		}
		if parsed > 200 {
			parsed = 200
		}
		limit = parsed
	}

	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return badRequest(c, "invalid offset")
		}
		offset = parsed
	}

	users, counts, err := h.Admin.ListUsers(c.Request().Context(), limit, offset)
	if err != nil {
		return serverError(c)
	}

	response := make([]AdminUser, 0, len(users))
	for i, user := range users {
		response = append(response, AdminUser{
			ID:           user.ID,
			Email:        user.Email,
			Name:         user.Name,
			Calculations: counts[i],
			CreatedAt:    user.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, AdminUsersResponse{Users: response})
}

// Usage возвращает сводные счетчики сервиса.
func (h *AdminHandler) Usage(c echo.Context) error {
	stats, err := h.Admin.Usage(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, UsageResponse{
		TotalUsers:         stats.TotalUsers,
		TotalSalaryRecords: stats.TotalSalaryRecords,
		TotalCalculations:  stats.TotalCalculations,
		TotalCPIPoints:     stats.TotalCPIPoints,
		LatestCPIFetchedAt: stats.LatestCPIFetchedAt,
	})
}

// UpsertCPIPoints сохраняет вручную загруженные точки индекса.
func (h *AdminHandler) UpsertCPIPoints(c echo.Context) error {
	var req CPIPointsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	points := make([]models.CPIIndexPoint, 0, len(req.Points))
	for _, point := range req.Points {
		points = append(points, models.CPIIndexPoint{
			Year:  point.Year,
			Month: point.Month,
			Value: point.Value,
		})
	}

	stored, err := h.CPI.Upsert(c.Request().Context(), points)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, CPIRefreshResponse{PointsStored: stored})
}

// TriggerRefresh запускает внеочередное обновление данных из BLS.
func (h *AdminHandler) TriggerRefresh(c echo.Context) error {
	if h.Refresher == nil {
		return unprocessable(c, "cpi refresher is not configured")
	}

	stored, err := h.Refresher.RefreshOnce(c.Request().Context())
	if err != nil {
		return unprocessable(c, "cpi refresh failed")
	}

	return c.JSON(http.StatusOK, CPIRefreshResponse{PointsStored: stored})
}
