package validator

import (
	"reflect"
	"strings"

	"content-admin/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report fields by their wire name rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "schema"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// ValidateRequest validates i and converts failures into an apperror validation error.
func (cv *CustomValidator) ValidateRequest(i interface{}) error {
	if err := cv.Validate(i); err != nil {
		fields := cv.FormatValidationErrors(err)
		if fields.Empty() {
			return apperror.Validation(err.Error(), nil)
		}
		return apperror.Validation("", fields)
	}
	return nil
}

func (cv *CustomValidator) FormatValidationErrors(err error) apperror.Fields {
	errors := apperror.Fields{}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors.Add(field, field+" is required")
			case "email":
				errors.Add(field, field+" must be a valid email address")
			case "url":
				errors.Add(field, field+" must be a valid URL")
			case "min":
				if e.Kind() == reflect.Slice {
					errors.Add(field, field+" must contain at least "+e.Param()+" item(s)")
					break
				}
				errors.Add(field, field+" must be at least "+e.Param()+" characters")
			case "max":
				errors.Add(field, field+" must be at most "+e.Param()+" characters")
			case "gte":
				errors.Add(field, field+" must be greater than or equal to "+e.Param())
			case "lte":
				errors.Add(field, field+" must be less than or equal to "+e.Param())
			case "oneof":
				errors.Add(field, field+" must be one of ["+e.Param()+"]")
			case "gt":
				errors.Add(field, field+" must be greater than "+e.Param())
			default:
				errors.Add(field, field+" is invalid")
			}
		}
	}

	return errors
}
