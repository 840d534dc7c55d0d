// Package validation checks declared build intents for required fields.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// IntentValidator validates build intents using struct tags on the domain entities
type IntentValidator struct {
	validate *validator.Validate
}

// NewIntentValidator creates a validator that reports fields by their manifest names
func NewIntentValidator() *IntentValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("field")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &IntentValidator{validate: v}
}

// ValidateIntent checks identity and SDK fields for non-emptiness.
// The first failing field is returned as a ConfigurationError.
func (iv *IntentValidator) ValidateIntent(intent *entities.BuildIntent) error {
	if intent == nil {
		return &entities.ConfigurationError{Field: "manifest", Reason: "no build intent provided"}
	}

	if err := iv.check(intent.Identity); err != nil {
		return err
	}
	if err := iv.check(intent.SDK); err != nil {
		return err
	}

	for i, p := range intent.Plugins {
		if strings.TrimSpace(p) == "" {
			return &entities.ConfigurationError{Field: fmt.Sprintf("plugins[%d]", i), Reason: "plugin id must not be empty"}
		}
	}

	return nil
}

func (iv *IntentValidator) check(s interface{}) error {
	err := iv.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate build intent: %w", err)
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return &entities.ConfigurationError{Field: fe.Field()}
	}
	return &entities.ConfigurationError{
		Field:  fe.Field(),
		Reason: fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param()),
	}
}
