package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/neuroeducatimo/landing/pkg/locale"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// Validator returns the shared validator with the custom tags registered
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("slug", validateSlug)
		_ = validate.RegisterValidation("lang", validateLang)
		_ = validate.RegisterValidation("content_format", validateContentFormat)
	})
	return validate
}

// ValidateStruct validates s and returns a *ValidationError on failure
func ValidateStruct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return NewValidationError(verrs)
	}
	return err
}

// ValidateVar validates a single value against tag
func ValidateVar(field interface{}, tag string) error {
	return Validator().Var(field, tag)
}

// IsSlug reports whether s is a URL-safe slug: letters and digits in lowercase
// separated by single dashes.
func IsSlug(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") || strings.Contains(s, "--") {
		return false
	}
	for _, r := range s {
		if r == '-' {
			continue
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func validateSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}

func validateLang(fl validator.FieldLevel) bool {
	_, ok := locale.Normalize(fl.Field().String())
	return ok
}

func validateContentFormat(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "html", "markdown":
		return true
	}
	return false
}
