package patient

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const patientColumns = `id, full_name, email, phone_number, date_of_birth, address,
			allergies, medical_notes, loyalty_points, is_active, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	patientID := uuid.New().String()
	createdAt := time.Now()

	query := `
		INSERT INTO pharmacy.patients
		(id, full_name, email, phone_number, date_of_birth, address, allergies, medical_notes, loyalty_points, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true, $10)
	`

	var dob interface{}
	if req.DateOfBirth != "" {
		dob = req.DateOfBirth
	}

	_, err := r.db.ExecContext(ctx, query,
		patientID,
		req.FullName,
		req.Email,
		req.PhoneNumber,
		dob,
		req.Address,
		req.Allergies,
		req.MedicalNotes,
		req.LoyaltyPoints,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	log.Printf("Created patient %s (%s)", patientID, req.FullName)

	patient := &PatientResponse{
		ID:            patientID,
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		Allergies:     req.Allergies,
		MedicalNotes:  req.MedicalNotes,
		LoyaltyPoints: req.LoyaltyPoints,
		IsActive:      true,
		CreatedAt:     createdAt,
	}
	if req.DateOfBirth != "" {
		patient.DateOfBirth = &req.DateOfBirth
	}
	return patient, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*PatientResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.patients
		WHERE id = $1 AND deleted_at IS NULL
	`, patientColumns)

	patient, err := scanPatient(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// ListWithPagination returns non-deleted patients newest first. A non-empty
// search term matches the full name case-insensitively.
func (r *Repository) ListWithPagination(ctx context.Context, limit, offset int, search string) ([]PatientResponse, int, error) {
	var totalCount int
	countQuery := `
		SELECT COUNT(*) FROM pharmacy.patients
		WHERE deleted_at IS NULL AND ($1 = '' OR full_name ILIKE '%' || $1 || '%')
	`

	err := r.db.QueryRowContext(ctx, countQuery, search).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.patients
		WHERE deleted_at IS NULL AND ($1 = '' OR full_name ILIKE '%%' || $1 || '%%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, patientColumns)

	rows, err := r.db.QueryContext(ctx, query, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []PatientResponse
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, totalCount, nil
}

func (r *Repository) Update(ctx context.Context, patient *PatientResponse) error {
	now := time.Now()

	query := `
		UPDATE pharmacy.patients
		SET full_name = $1, email = $2, phone_number = $3, date_of_birth = $4,
		    address = $5, allergies = $6, medical_notes = $7, loyalty_points = $8,
		    is_active = $9, updated_at = $10
		WHERE id = $11 AND deleted_at IS NULL
	`

	var dob interface{}
	if patient.DateOfBirth != nil {
		dob = *patient.DateOfBirth
	}

	result, err := r.db.ExecContext(ctx, query,
		patient.FullName,
		patient.Email,
		patient.PhoneNumber,
		dob,
		patient.Address,
		patient.Allergies,
		patient.MedicalNotes,
		patient.LoyaltyPoints,
		patient.IsActive,
		now,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	patient.UpdatedAt = &now
	return nil
}

// SoftDelete marks the patient deleted without removing the row, so past
// prescriptions and surveillance plans keep a valid reference.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	query := `
		UPDATE pharmacy.patients
		SET deleted_at = $1, is_active = false
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	log.Printf("Soft deleted patient %s", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*PatientResponse, error) {
	patient := &PatientResponse{}
	var email, phoneNumber, address, allergies, medicalNotes sql.NullString
	var dob sql.NullTime
	var updatedAt sql.NullTime

	err := row.Scan(
		&patient.ID,
		&patient.FullName,
		&email,
		&phoneNumber,
		&dob,
		&address,
		&allergies,
		&medicalNotes,
		&patient.LoyaltyPoints,
		&patient.IsActive,
		&patient.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		patient.Email = email.String
	}
	if phoneNumber.Valid {
		patient.PhoneNumber = phoneNumber.String
	}
	if dob.Valid {
		d := dob.Time.Format("2006-01-02")
		patient.DateOfBirth = &d
	}
	if address.Valid {
		patient.Address = address.String
	}
	if allergies.Valid {
		patient.Allergies = allergies.String
	}
	if medicalNotes.Valid {
		patient.MedicalNotes = medicalNotes.String
	}
	if updatedAt.Valid {
		patient.UpdatedAt = &updatedAt.Time
	}

	return patient, nil
}
