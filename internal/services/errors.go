package services

import "errors"

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDeliveryFailed     = errors.New("failed to deliver otp email")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrTooManyAttempts    = errors.New("too many otp attempts")
	ErrNoPending          = errors.New("no registration in progress")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidDate        = errors.New("date must be in YYYY-MM-DD form")

	ErrNoJSONFound   = errors.New("no json object found in model reply")
	ErrMalformedJSON = errors.New("model reply contained invalid json")
)

// MissingFieldError reports a parsed extraction object that lacks one of the
// six required keys.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "extraction missing required field: " + e.Field
}
