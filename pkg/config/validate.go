package config

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/gradslides/pkg/errors"
	"github.com/matzehuels/gradslides/pkg/layout"
	"github.com/matzehuels/gradslides/pkg/roster"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance reports field errors by their TOML key.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("preset", func(fl validator.FieldLevel) bool {
			return layout.IsPreset(fl.Field().String())
		})
		_ = v.RegisterValidation("session", func(fl validator.FieldLevel) bool {
			_, err := roster.ParseSession(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// Validate checks the configuration and the layout it resolves to. All
// problems are reported together.
func (c Config) Validate() error {
	v := validatorInstance()
	var problems []string
	problems = append(problems, fieldErrors(v.Struct(c), "")...)

	l, err := c.Layout.Resolve()
	if err != nil {
		problems = append(problems, errors.UserMessage(err))
	} else {
		problems = append(problems, fieldErrors(v.Struct(l), "layout")...)
		if err := l.Check(); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidConfig, "%s", strings.Join(problems, "; "))
}

func fieldErrors(err error, prefix string) []string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, fmt.Sprintf("%s: %s", fieldPath(e.Namespace(), prefix), getValidationMessage(e)))
	}
	return out
}

// fieldPath drops the root type from a validator namespace.
func fieldPath(ns, prefix string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	if prefix != "" {
		return prefix + "." + ns
	}
	return ns
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return "needs at least " + e.Param() + " entries"
		}
		return "must be at least " + e.Param()
	case "max":
		if e.Kind() == reflect.Slice {
			return "allows at most " + e.Param() + " entries"
		}
		return "must be at most " + e.Param()
	case "len":
		return "must be exactly " + e.Param() + " characters"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	case "hexadecimal":
		return "must be a hex colour such as 000000"
	case "contains":
		return "must contain " + e.Param()
	case "session":
		return "must be one of: morning, afternoon, pagi, siang"
	case "preset":
		return "unknown preset, available: " + strings.Join(layout.Presets(), ", ")
	default:
		return "invalid value"
	}
}
