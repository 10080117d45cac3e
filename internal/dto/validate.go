package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("objecturl", func(fl validator.FieldLevel) bool {
		return IsObjectURL(fl.Field().String())
	})
	v.RegisterStructValidation(validateUserPhoto, CreateReviewRequest{})
	return v
}

// validateUserPhoto applies the objecturl rule to userDetails.userPhoto,
// the one media reference that lives inside free-form JSON.
func validateUserPhoto(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateReviewRequest)
	photo, ok := req.UserDetails["userPhoto"]
	if !ok || photo == nil {
		return
	}
	if s, isString := photo.(string); isString && (s == "" || IsObjectURL(s)) {
		return
	}
	sl.ReportError(photo, "userDetails.userPhoto", "UserDetails", "objecturl", "")
}

// ValidationError reports the first invalid field of a request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks req against its validate tags.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return describe(fieldErrs[0])
	}
	return err
}

func describe(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "url", "objecturl":
		msg = fmt.Sprintf("%s must be an absolute URL", field)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return &ValidationError{Field: field, Message: msg}
}
