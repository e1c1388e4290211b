package server

import (
	"time"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator создает валидатор запросов. Помимо стандартных тегов
// регистрирует isodate для дат в формате YYYY-MM-DD.
func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("isodate", isISODate)
	return &CustomValidator{validator: v}
}

// Validate запускает проверку структуры по тегам.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func isISODate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
