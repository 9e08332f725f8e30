package consultation

import "errors"

var (
	ErrMissingPatientID     = errors.New("patient id is required")
	ErrMissingSubject       = errors.New("consultation subject is required")
	ErrInvalidDate          = errors.New("consultation date must use the YYYY-MM-DD format")
	ErrConsultationNotFound = errors.New("consultation not found")
)
