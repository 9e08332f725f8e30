package patient

import "errors"

var (
	ErrMissingFullName    = errors.New("patient full name is required")
	ErrInvalidDateOfBirth = errors.New("date of birth must use the YYYY-MM-DD format")
	ErrInvalidLoyalty     = errors.New("loyalty points cannot be negative")
	ErrPatientNotFound    = errors.New("patient not found")
)
