package bookingclient

import (
	"errors"
	"rehab-service/internal/pkg/exceptions"
	"rehab-service/internal/pkg/utils"
	"strings"
)

var ErrInvalidDetails = errors.New("bookingclient: invalid patient details")

type PatientDetails struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phone_number"`
}

func (d PatientDetails) normalized() PatientDetails {
	return PatientDetails{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
		Phone: strings.TrimSpace(d.Phone),
	}
}

// ValidateDetails runs the same rules the server applies so bad input never
// leaves the client.
func ValidateDetails(details PatientDetails) error {
	details = details.normalized()
	if err := utils.ValidateStruct(details); err != nil {
		return &DetailsError{Message: exceptions.FormatFirstValidationError(err), err: err}
	}
	return nil
}

type DetailsError struct {
	Message string
	err     error
}

func (e *DetailsError) Error() string {
	return e.Message
}

func (e *DetailsError) Is(target error) bool {
	return target == ErrInvalidDetails
}

func (e *DetailsError) Unwrap() error {
	return e.err
}
