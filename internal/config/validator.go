package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks the constraints declared on Config fields. All violations
// are reported together.
func (c *Config) Validate() error {
	return validateStruct(c)
}

func validateStruct(s any) error {
	err := configValidator.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " must be set"
	case "required_if":
		return fmt.Sprintf("%s must be set when %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s] (got %q)", name, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s (got %v)", name, fe.Param(), fe.Value())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s (got %v)", name, fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("%s must be at most %s (got %v)", name, fe.Param(), fe.Value())
	case "ip":
		return fmt.Sprintf("%s is not an IP address (got %q)", name, fe.Value())
	case "numeric":
		return fmt.Sprintf("%s must be a number (got %q)", name, fe.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL (got %q)", name, fe.Value())
	}
	return fmt.Sprintf("%s failed %s", name, fe.Tag())
}

// Warnings lists settings that load fine but are probably unintended
func (c *Config) Warnings() []string {
	var warnings []string
	prod := c.Environment == "prod" || c.Environment == "production"

	if prod && c.RNGSeed != 0 {
		warnings = append(warnings, "RNG_SEED is set in prod - craft outcomes will be reproducible")
	}

	if c.SaveBackend == SaveBackendPostgres && c.DBPassword == "postgres" && prod {
		warnings = append(warnings, "DB_PASSWORD is the default value - please use a secure password")
	}

	if c.SaveBackend == SaveBackendMemory && prod {
		warnings = append(warnings, "SAVE_BACKEND=memory in prod - the recipe book is lost on restart")
	}

	if c.SaveBackend == SaveBackendPostgres && c.AutosaveInterval == 0 {
		warnings = append(warnings, "AUTOSAVE_INTERVAL=0 - progress is only saved on shutdown or /save")
	}

	return warnings
}
