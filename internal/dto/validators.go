package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/finovo/erp-backend/internal/core/domain"
)

// RegisterCustomValidators installs domain-aware validation tags on the gin
// binding validator. Call once at startup before routes are registered.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("documentkind", func(fl validator.FieldLevel) bool {
		return domain.DocumentKind(fl.Field().String()).Valid()
	})
}
