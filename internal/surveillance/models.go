package surveillance

import (
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// Kind identifies which organ function a plan monitors.
type Kind string

const (
	KindHepatic Kind = "hepatic"
	KindRenal   Kind = "renal"
	KindMixed   Kind = "mixed"
	KindOther   Kind = "other"
)

// Status is the lifecycle state of a plan. Completed and cancelled are
// terminal: no operation leaves them.
type Status string

const (
	StatusActive    Status = "active"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Priority is the caller-assigned clinical severity. It is independent of
// the due-date urgency tier and never recomputed by the engine.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Plan represents one recurring biological-surveillance obligation for a
// patient, as persisted and as returned to clients.
type Plan struct {
	ID               string            `json:"id"`
	PatientID        string            `json:"patient_id"`
	MedicationID     *string           `json:"medication_id,omitempty"`
	Kind             Kind              `json:"kind"`
	Parameters       []string          `json:"parameters"`
	FrequencyMonths  int               `json:"frequency_months"`
	StartDate        time.Time         `json:"start_date"`
	NextDueDate      time.Time         `json:"next_due_date"`
	LastAnalysisDate *time.Time        `json:"last_analysis_date,omitempty"`
	LastResults      map[string]string `json:"last_results,omitempty"`
	Status           Status            `json:"status"`
	Priority         Priority          `json:"priority"`
	Notes            string            `json:"notes,omitempty"`
	Lab              string            `json:"lab,omitempty"`
	LabContact       string            `json:"lab_contact,omitempty"`
	Version          int               `json:"version"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"`
}

// Terminal reports whether the plan is in an absorbing state.
func (p *Plan) Terminal() bool {
	return p.Status == StatusCompleted || p.Status == StatusCancelled
}

// AnchorDate is the date the next due date is computed from: the last
// recorded analysis, or the plan start when none has been recorded yet.
func (p *Plan) AnchorDate() time.Time {
	if p.LastAnalysisDate != nil {
		return *p.LastAnalysisDate
	}
	return p.StartDate
}

// CreatePlanRequest represents the request to create a surveillance plan.
// Dates use the YYYY-MM-DD format.
type CreatePlanRequest struct {
	PatientID       string   `json:"patient_id"`
	MedicationID    *string  `json:"medication_id,omitempty"`
	Kind            string   `json:"kind"`
	Parameters      []string `json:"parameters"`
	FrequencyMonths int      `json:"frequency_months"`
	StartDate       string   `json:"start_date"`
	FirstDueDate    string   `json:"first_due_date,omitempty"` // optional override, must not precede start_date
	Priority        string   `json:"priority,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	Lab             string   `json:"lab,omitempty"`
	LabContact      string   `json:"lab_contact,omitempty"`
}

// RecordResultRequest represents a lab analysis result being logged against
// a plan.
type RecordResultRequest struct {
	AnalysisDate string            `json:"analysis_date"`
	Results      map[string]string `json:"results,omitempty"`
	Complete     bool              `json:"complete,omitempty"` // also close the plan
}

// ListFilter narrows repository listing.
type ListFilter struct {
	Status    Status
	PatientID string
	Kind      Kind
}

// UrgentFilter narrows the urgent-plans query surface.
type UrgentFilter struct {
	PatientID  string
	Kind       Kind
	MinUrgency Tier // zero value means no minimum
}

// PlanUrgency pairs a plan with its computed urgency tier for dashboard and
// reminder consumption.
type PlanUrgency struct {
	Plan      Plan `json:"plan"`
	Tier      Tier `json:"urgency"`
	DaysUntil int  `json:"days_until_due"`
}

// PaginatedPlansResponse is the paginated dashboard listing payload.
type PaginatedPlansResponse struct {
	Success    bool            `json:"success"`
	Plans      []Plan          `json:"plans"`
	Pagination pagination.Meta `json:"pagination"`
}
