package server

import (
	"github.com/labstack/echo/v4"

	"example.com/wagelift/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	salaryHandler *handlers.SalaryHandler,
	calculationHandler *handlers.CalculationHandler,
	inflationHandler *handlers.InflationHandler,
	statsHandler *handlers.StatsHandler,
	notificationHandler *handlers.NotificationHandler,
	adminHandler *handlers.AdminHandler,
	authMiddleware echo.MiddlewareFunc,
	adminMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
	calcRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	salary := api.Group("/salary", authMiddleware)
	salary.GET("", salaryHandler.List)
	salary.POST("", salaryHandler.Create)
	salary.GET("/:id", salaryHandler.Get)
	salary.PUT("/:id", salaryHandler.Update)
	salary.DELETE("/:id", salaryHandler.Delete)

	calculations := api.Group("/calculations", authMiddleware)
	calculations.POST("/gap", calculationHandler.CalculateGap, calcRateLimiter)
	calculations.GET("", calculationHandler.List)
	calculations.GET("/export/json", calculationHandler.ExportJSON)
	calculations.GET("/export/csv", calculationHandler.ExportCSV)
	calculations.GET("/:id", calculationHandler.Get)
	calculations.DELETE("/:id", calculationHandler.Delete)

	inflationGroup := api.Group("/inflation", authMiddleware)
	inflationGroup.GET("/summary", inflationHandler.Summary, calcRateLimiter)

	stats := api.Group("/stats", authMiddleware)
	stats.GET("/overview", statsHandler.Overview)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)

	admin := api.Group("/admin", authMiddleware, adminMiddleware)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/usage", adminHandler.Usage)
	admin.POST("/cpi/points", adminHandler.UpsertCPIPoints)
	admin.POST("/cpi/refresh", adminHandler.TriggerRefresh)
}
