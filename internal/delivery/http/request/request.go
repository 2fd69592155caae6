package request

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ImportRecipeRequest accepts any JSON value for url so a non-string can be
// reported as a missing URL rather than a decoding error.
type ImportRecipeRequest struct {
	URL any `json:"url"`
}

// URLString returns the url field when it is a JSON string.
func (r ImportRecipeRequest) URLString() (string, bool) {
	s, ok := r.URL.(string)
	return s, ok
}

type CreateRecipeRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,max=2048,url"`
	Tags        []string `json:"tags" validate:"max=10,dive,required,max=40"`
	Ingredients []string `json:"ingredients" validate:"min=1,max=50,dive,required,max=500"`
	Steps       []string `json:"steps" validate:"min=1,max=30,dive,required,max=2000"`
}

// Normalize trims every text field so blank values fail "required".
func (r *CreateRecipeRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
	r.ImageURL = trimPtr(r.ImageURL)
	trimEach(r.Tags)
	trimEach(r.Ingredients)
	trimEach(r.Steps)
}

type SignupRequest struct {
	Username    string  `json:"username" validate:"required,min=3,max=32"`
	Password    string  `json:"password" validate:"required,min=8,max=72"`
	DisplayName *string `json:"displayName" validate:"omitempty,max=64"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks a request DTO and returns a human-readable message for the first violation.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}
	return errors.New(translateError(validationErrs[0]))
}

func translateError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s needs at least %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s can have at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func trimEach(items []string) {
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
}
