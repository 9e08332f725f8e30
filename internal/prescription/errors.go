package prescription

import "errors"

var (
	ErrMissingPatientID     = errors.New("patient id is required")
	ErrMissingMedication    = errors.New("medication is required")
	ErrInvalidDuration      = errors.New("duration must not be negative")
	ErrPrescriptionNotFound = errors.New("prescription not found")
)
