package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
)

// Validator checks request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce    sync.Once
	requestValidator *Validator
)

// InitValidator builds the shared request validator. Calls after the first are no-ops.
func InitValidator() {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// Report fields under the name clients send
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("itemtype", validateItemType)
		requestValidator = &Validator{validate: v}
	})
}

// GetValidator returns the shared request validator
func GetValidator() *Validator {
	InitValidator()
	return requestValidator
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing JSON field to a message a player can act on
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return map[string]string{"error": "Invalid request format"}
	}

	errs := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			errs[e.Field()] = "This field is required"
		case "itemtype":
			errs[e.Field()] = "Must be one of " + strings.Join(itemTypeNames(), ", ")
		case "max":
			errs[e.Field()] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[e.Field()] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[e.Field()] = "Invalid value"
		}
	}
	return errs
}

// validateItemType accepts item types case-insensitively
func validateItemType(fl validator.FieldLevel) bool {
	_, err := domain.ParseItemType(fl.Field().String())
	return err == nil
}

func itemTypeNames() []string {
	return []string{string(domain.ItemTypeGood), string(domain.ItemTypeWeapon), string(domain.ItemTypeArmor)}
}
