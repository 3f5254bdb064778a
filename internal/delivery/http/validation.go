package http

import (
	"fmt"

	"github.com/gdugdh24/videochat-backend/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the domain tags used in binding rules:
// "gender" accepts a person's gender, "pref_gender" also accepts "Any".
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		return domain.Gender(fl.Field().String()).IsValid()
	}); err != nil {
		return fmt.Errorf("failed to register gender validator: %w", err)
	}

	if err := v.RegisterValidation("pref_gender", func(fl validator.FieldLevel) bool {
		return domain.Gender(fl.Field().String()).IsValidPreference()
	}); err != nil {
		return fmt.Errorf("failed to register pref_gender validator: %w", err)
	}

	return nil
}
