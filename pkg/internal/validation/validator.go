package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/alpixn/site/pkg/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	imageRefPattern  = regexp.MustCompile(`^(https?://|data:image/)`)
	httpURLPattern   = regexp.MustCompile(`^https?://`)
	githubURLPattern = regexp.MustCompile(`^https?://github\.com/`)
)

var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	oneOf := func(values []string) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return lo.Contains(values, fl.Field().String())
		}
	}
	matches := func(re *regexp.Regexp) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return re.MatchString(fl.Field().String())
		}
	}

	_ = v.RegisterValidation("post_category", oneOf(models.PostCategories))
	_ = v.RegisterValidation("project_category", oneOf(models.ProjectCategories))
	_ = v.RegisterValidation("project_status", oneOf(models.ProjectStatuses))
	_ = v.RegisterValidation("technology_category", oneOf(models.TechnologyCategories))
	_ = v.RegisterValidation("image_ref", matches(imageRefPattern))
	_ = v.RegisterValidation("http_url", matches(httpURLPattern))
	_ = v.RegisterValidation("github_url", matches(githubURLPattern))
	_ = v.RegisterValidation("project_year", func(fl validator.FieldLevel) bool {
		year := int(fl.Field().Int())
		return year >= MinProjectYear && year <= MaxProjectYear(time.Now())
	})

	return v
}

const MinProjectYear = 2000

func MaxProjectYear(now time.Time) int {
	return now.Year() + 1
}

// Error carries one human readable message per rejected field.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return "validation error: " + strings.Join(e.Fields, "; ")
}

func NewError(messages ...string) *Error {
	return &Error{Fields: messages}
}

// Struct validates data against its validate tags and converts the outcome into *Error.
func Struct(data any) error {
	err := V.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	return &Error{Fields: lo.Map(fieldErrs, func(item validator.FieldError, _ int) string {
		return describe(item)
	})}
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "post_category", "project_category", "technology_category":
		return fmt.Sprintf("%s must be one of the predefined options", field)
	case "project_status":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(models.ProjectStatuses, ", "))
	case "project_year":
		return fmt.Sprintf("%s must be between %d and %d", field, MinProjectYear, MaxProjectYear(time.Now()))
	case "image_ref":
		return fmt.Sprintf("%s must be a valid URL or base64 string", field)
	case "http_url":
		return fmt.Sprintf("%s must be a valid HTTP/HTTPS URL", field)
	case "github_url":
		return fmt.Sprintf("%s must be a valid GitHub repository URL", field)
	default:
		return fmt.Sprintf("%s failed on the '%s' rule", field, fe.Tag())
	}
}
