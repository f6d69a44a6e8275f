package utils

import (
	"regexp"
	"rehab-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	validate        *validator.Validate
	phoneNumberExpr = regexp.MustCompile(constvars.RegexPhoneNumber)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("slot_time", validateSlotTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// IsValidPhoneNumber accepts an optional leading + followed by 10 to 15 digits.
func IsValidPhoneNumber(phoneNumber string) bool {
	return phoneNumberExpr.MatchString(phoneNumber)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return IsValidPhoneNumber(fl.Field().String())
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.SlotTimeParseLayout, fl.Field().String())
	return err == nil
}
