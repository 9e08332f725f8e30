package surveillance

import "errors"

var (
	ErrMissingPatientID  = errors.New("patient id is required")
	ErrMissingParameters = errors.New("at least one lab parameter is required")
	ErrInvalidFrequency  = errors.New("frequency must be at least one month")
	ErrInvalidKind       = errors.New("invalid surveillance kind")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrInvalidTier       = errors.New("invalid urgency tier")
	ErrInvalidDate       = errors.New("invalid date, expected YYYY-MM-DD")
	ErrStartDateInFuture = errors.New("start date cannot be in the future")
	ErrFirstDueTooEarly  = errors.New("first due date cannot precede start date")

	ErrPlanNotFound       = errors.New("surveillance plan not found")
	ErrPlanTerminal       = errors.New("surveillance plan is completed or cancelled")
	ErrPlanNotActive      = errors.New("surveillance plan is not active")
	ErrPlanNotSuspended   = errors.New("surveillance plan is not suspended")
	ErrFutureAnalysisDate = errors.New("analysis date cannot be in the future")
	ErrVersionConflict    = errors.New("surveillance plan was modified concurrently, retry the operation")
)
