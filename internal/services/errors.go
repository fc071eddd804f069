package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFields is returned when a required request field is absent or empty
	ErrMissingFields = errors.New("required fields are missing")

	// ErrNotConfigured is returned when the credentials for an external system are absent
	ErrNotConfigured = errors.New("service is not configured")

	// ErrInvalidFileData is returned when file data is not valid base64
	ErrInvalidFileData = errors.New("file data is not valid base64")
)

// DeliveryError reports a failure of the external system a request was handed to
type DeliveryError struct {
	Target string
	Err    error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s delivery failed: %v", e.Target, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Detail returns the underlying error text without the target prefix
func (e *DeliveryError) Detail() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}
