package prescription

import (
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// CreatePrescriptionRequest represents the request to record a prescription.
// Medication is a free-form reference; drug directories live outside this
// service.
type CreatePrescriptionRequest struct {
	PatientID    string `json:"patient_id" validate:"required"`
	Prescriber   string `json:"prescriber"`
	Medication   string `json:"medication" validate:"required"`
	Dosage       string `json:"dosage"`
	DurationDays int    `json:"duration_days"`
	Renewable    bool   `json:"renewable"`
	Notes        string `json:"notes"`
}

// UpdatePrescriptionRequest represents a partial prescription update. Nil
// fields are left unchanged.
type UpdatePrescriptionRequest struct {
	Prescriber   *string `json:"prescriber,omitempty"`
	Medication   *string `json:"medication,omitempty"`
	Dosage       *string `json:"dosage,omitempty"`
	DurationDays *int    `json:"duration_days,omitempty"`
	Renewable    *bool   `json:"renewable,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// PrescriptionResponse represents the prescription data returned to clients
type PrescriptionResponse struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	Prescriber   string     `json:"prescriber"`
	Medication   string     `json:"medication"`
	Dosage       string     `json:"dosage"`
	DurationDays int        `json:"duration_days"`
	Renewable    bool       `json:"renewable"`
	Notes        string     `json:"notes"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// PaginatedPrescriptionsResponse is the per-patient listing payload.
type PaginatedPrescriptionsResponse struct {
	Success       bool                   `json:"success"`
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Pagination    pagination.Meta        `json:"pagination"`
}
