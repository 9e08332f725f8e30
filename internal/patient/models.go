package patient

import (
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/loyalty"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// CreatePatientRequest represents the request to create a new patient
type CreatePatientRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	DateOfBirth   string `json:"date_of_birth"` // Format: YYYY-MM-DD
	Address       string `json:"address"`
	Allergies     string `json:"allergies"`
	MedicalNotes  string `json:"medical_notes"`
	LoyaltyPoints int    `json:"loyalty_points"`
}

// UpdatePatientRequest represents the request to update a patient. Nil fields
// are left unchanged.
type UpdatePatientRequest struct {
	FullName      *string `json:"full_name,omitempty"`
	Email         *string `json:"email,omitempty"`
	PhoneNumber   *string `json:"phone_number,omitempty"`
	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	Address       *string `json:"address,omitempty"`
	Allergies     *string `json:"allergies,omitempty"`
	MedicalNotes  *string `json:"medical_notes,omitempty"`
	LoyaltyPoints *int    `json:"loyalty_points,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

// PatientResponse represents the patient data returned to clients. The
// loyalty level is derived from the point balance on every read.
type PatientResponse struct {
	ID            string        `json:"id"`
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phone_number"`
	DateOfBirth   *string       `json:"date_of_birth,omitempty"`
	Address       string        `json:"address"`
	Allergies     string        `json:"allergies"`
	MedicalNotes  string        `json:"medical_notes"`
	LoyaltyPoints int           `json:"loyalty_points"`
	LoyaltyLevel  loyalty.Level `json:"loyalty_level"`
	IsActive      bool          `json:"is_active"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     *time.Time    `json:"updated_at,omitempty"`
}

// PaginatedPatientsResponse is the paginated listing payload.
type PaginatedPatientsResponse struct {
	Success    bool              `json:"success"`
	Patients   []PatientResponse `json:"patients"`
	Pagination pagination.Meta   `json:"pagination"`
}
