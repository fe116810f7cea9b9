package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Asset type validation
	validate.RegisterValidation("asset_type", func(fl validator.FieldLevel) bool {
		t := fl.Field().String()
		validTypes := []string{"frame", "filter", "sticker"}
		for _, v := range validTypes {
			if t == v {
				return true
			}
		}
		return false
	})

	// Photobooth status validation
	validate.RegisterValidation("booth_status", func(fl validator.FieldLevel) bool {
		status := fl.Field().String()
		validStatuses := []string{"available", "busy", "maintenance", "offline", ""}
		for _, s := range validStatuses {
			if status == s {
				return true
			}
		}
		return false
	})

}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "asset_type":
			errors[field] = "Invalid asset type. Must be: frame, filter, or sticker"
		case "booth_status":
			errors[field] = "Invalid status. Must be: available, busy, maintenance, or offline"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
