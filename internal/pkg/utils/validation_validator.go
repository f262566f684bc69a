package utils

import (
	"regexp"
	"telecare-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock_time", validateClockTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

var clockTimeRegex = regexp.MustCompile(constvars.RegexClockTime)

func validateClockTime(fl validator.FieldLevel) bool {
	return clockTimeRegex.MatchString(fl.Field().String())
}

var emailRegex = regexp.MustCompile(constvars.RegexEmail)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}
