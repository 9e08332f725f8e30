package consultation

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const consultationColumns = `id, patient_id, consultation_date, subject, summary,
			follow_up_required, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, req CreateConsultationRequest) (*ConsultationResponse, error) {
	consultationID := uuid.New().String()
	createdAt := time.Now()

	query := `
		INSERT INTO pharmacy.consultations
		(id, patient_id, consultation_date, subject, summary, follow_up_required, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		consultationID,
		req.PatientID,
		req.ConsultationDate,
		req.Subject,
		req.Summary,
		req.FollowUpRequired,
		createdAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}

	log.Printf("Created consultation %s for patient %s", consultationID, req.PatientID)

	return &ConsultationResponse{
		ID:               consultationID,
		PatientID:        req.PatientID,
		ConsultationDate: req.ConsultationDate,
		Subject:          req.Subject,
		Summary:          req.Summary,
		FollowUpRequired: req.FollowUpRequired,
		CreatedAt:        createdAt,
	}, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*ConsultationResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.consultations
		WHERE id = $1
	`, consultationColumns)

	consultation, err := scanConsultation(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrConsultationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	return consultation, nil
}

// ListByPatient returns a patient's consultations, most recent first.
func (r *Repository) ListByPatient(ctx context.Context, patientID string) ([]ConsultationResponse, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.consultations
		WHERE patient_id = $1
		ORDER BY consultation_date DESC
	`, consultationColumns)

	rows, err := r.db.QueryContext(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list consultations: %w", err)
	}
	defer rows.Close()

	var consultations []ConsultationResponse
	for rows.Next() {
		consultation, err := scanConsultation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consultation: %w", err)
		}
		consultations = append(consultations, *consultation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consultations: %w", err)
	}

	return consultations, nil
}

func (r *Repository) Update(ctx context.Context, consultation *ConsultationResponse) error {
	now := time.Now()

	query := `
		UPDATE pharmacy.consultations
		SET subject = $1, summary = $2, follow_up_required = $3, updated_at = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		consultation.Subject,
		consultation.Summary,
		consultation.FollowUpRequired,
		now,
		consultation.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update consultation: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrConsultationNotFound
	}

	consultation.UpdatedAt = &now
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConsultation(row rowScanner) (*ConsultationResponse, error) {
	consultation := &ConsultationResponse{}
	var consultationDate time.Time
	var summary sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&consultation.ID,
		&consultation.PatientID,
		&consultationDate,
		&consultation.Subject,
		&summary,
		&consultation.FollowUpRequired,
		&consultation.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	consultation.ConsultationDate = consultationDate.Format("2006-01-02")
	if summary.Valid {
		consultation.Summary = summary.String
	}
	if updatedAt.Valid {
		consultation.UpdatedAt = &updatedAt.Time
	}

	return consultation, nil
}
