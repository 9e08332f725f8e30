package prescription

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const prescriptionColumns = `id, patient_id, prescriber, medication, dosage,
			duration_days, renewable, notes, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error) {
	prescriptionID := uuid.New().String()
	createdAt := time.Now()

	query := `
		INSERT INTO pharmacy.prescriptions
		(id, patient_id, prescriber, medication, dosage, duration_days, renewable, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		prescriptionID,
		req.PatientID,
		req.Prescriber,
		req.Medication,
		req.Dosage,
		req.DurationDays,
		req.Renewable,
		req.Notes,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	log.Printf("Created prescription %s for patient %s (%s)", prescriptionID, req.PatientID, req.Medication)

	return &PrescriptionResponse{
		ID:           prescriptionID,
		PatientID:    req.PatientID,
		Prescriber:   req.Prescriber,
		Medication:   req.Medication,
		Dosage:       req.Dosage,
		DurationDays: req.DurationDays,
		Renewable:    req.Renewable,
		Notes:        req.Notes,
		CreatedAt:    createdAt,
	}, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*PrescriptionResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.prescriptions
		WHERE id = $1
	`, prescriptionColumns)

	prescription, err := scanPrescription(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return prescription, nil
}

// ListByPatient returns a patient's prescriptions newest first.
func (r *Repository) ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]PrescriptionResponse, int, error) {
	var totalCount int
	countQuery := `SELECT COUNT(*) FROM pharmacy.prescriptions WHERE patient_id = $1`

	err := r.db.QueryRowContext(ctx, countQuery, patientID).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count prescriptions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.prescriptions
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, prescriptionColumns)

	rows, err := r.db.QueryContext(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []PrescriptionResponse
	for rows.Next() {
		prescription, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, *prescription)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating prescriptions: %w", err)
	}

	return prescriptions, totalCount, nil
}

func (r *Repository) Update(ctx context.Context, prescription *PrescriptionResponse) error {
	now := time.Now()

	query := `
		UPDATE pharmacy.prescriptions
		SET prescriber = $1, medication = $2, dosage = $3, duration_days = $4,
		    renewable = $5, notes = $6, updated_at = $7
		WHERE id = $8
	`

	result, err := r.db.ExecContext(ctx, query,
		prescription.Prescriber,
		prescription.Medication,
		prescription.Dosage,
		prescription.DurationDays,
		prescription.Renewable,
		prescription.Notes,
		now,
		prescription.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPrescriptionNotFound
	}

	prescription.UpdatedAt = &now
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pharmacy.prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPrescriptionNotFound
	}

	log.Printf("Deleted prescription %s", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrescription(row rowScanner) (*PrescriptionResponse, error) {
	prescription := &PrescriptionResponse{}
	var prescriber, dosage, notes sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&prescription.ID,
		&prescription.PatientID,
		&prescriber,
		&prescription.Medication,
		&dosage,
		&prescription.DurationDays,
		&prescription.Renewable,
		&notes,
		&prescription.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if prescriber.Valid {
		prescription.Prescriber = prescriber.String
	}
	if dosage.Valid {
		prescription.Dosage = dosage.String
	}
	if notes.Valid {
		prescription.Notes = notes.String
	}
	if updatedAt.Valid {
		prescription.UpdatedAt = &updatedAt.Time
	}

	return prescription, nil
}
