package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name so violations line up with the request body.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// violationMessages maps field -> failed tag -> client message.
var violationMessages = map[string]map[string]string{
	"title": {
		"notblank": "Title is required",
		"min":      "Title must be between 5 and 200 characters",
		"max":      "Title must be between 5 and 200 characters",
	},
	"content": {
		"notblank": "Content is required",
		"min":      "Content must be at least 50 characters long",
		"max":      "Content cannot exceed 10,000 characters",
	},
	"summary": {
		"max": "Summary cannot exceed 500 characters",
	},
}

// Validate checks the create payload. A nil result means the input is valid.
func (in CreateBlogInput) Validate() errs.FieldViolations {
	return validateStruct(in)
}

// Validate checks only the fields present in the update payload.
func (in UpdateBlogInput) Validate() errs.FieldViolations {
	return validateStruct(in)
}

func validateStruct(s any) errs.FieldViolations {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errs.FieldViolations{{Field: "payload", Message: err.Error()}}
	}

	violations := make(errs.FieldViolations, 0, len(validationErrs))
	for _, fe := range validationErrs {
		violations = append(violations, errs.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return violations
}

func violationMessage(fe validator.FieldError) string {
	if msg, ok := violationMessages[fe.Field()][fe.Tag()]; ok {
		return msg
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed the %s=%s rule", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed the %s rule", fe.Field(), fe.Tag())
}
