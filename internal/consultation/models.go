package consultation

import "time"

// CreateConsultationRequest records a pharmacist consultation note.
type CreateConsultationRequest struct {
	PatientID        string `json:"patient_id" validate:"required"`
	ConsultationDate string `json:"consultation_date"` // Format: YYYY-MM-DD, defaults to today
	Subject          string `json:"subject" validate:"required"`
	Summary          string `json:"summary"`
	FollowUpRequired bool   `json:"follow_up_required"`
}

// UpdateConsultationRequest represents a partial consultation update. Nil
// fields are left unchanged.
type UpdateConsultationRequest struct {
	Subject          *string `json:"subject,omitempty"`
	Summary          *string `json:"summary,omitempty"`
	FollowUpRequired *bool   `json:"follow_up_required,omitempty"`
}

// ConsultationResponse represents the consultation data returned to clients
type ConsultationResponse struct {
	ID               string     `json:"id"`
	PatientID        string     `json:"patient_id"`
	ConsultationDate string     `json:"consultation_date"`
	Subject          string     `json:"subject"`
	Summary          string     `json:"summary"`
	FollowUpRequired bool       `json:"follow_up_required"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}
