package surveillance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const planColumns = `id, patient_id, medication_id, kind, parameters, frequency_months,
		start_date, next_due_date, last_analysis_date, last_results,
		status, priority, notes, lab, lab_contact, version, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, plan *Plan) error {
	plan.ID = uuid.New().String()
	plan.Version = 1
	plan.CreatedAt = time.Now()

	results, err := marshalResults(plan.LastResults)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pharmacy.surveillance_plans
		(id, patient_id, medication_id, kind, parameters, frequency_months,
		 start_date, next_due_date, last_analysis_date, last_results,
		 status, priority, notes, lab, lab_contact, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err = r.db.ExecContext(ctx, query,
		plan.ID,
		plan.PatientID,
		plan.MedicationID,
		string(plan.Kind),
		pq.Array(plan.Parameters),
		plan.FrequencyMonths,
		plan.StartDate,
		plan.NextDueDate,
		plan.LastAnalysisDate,
		results,
		string(plan.Status),
		string(plan.Priority),
		plan.Notes,
		plan.Lab,
		plan.LabContact,
		plan.Version,
		plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create surveillance plan: %w", err)
	}

	log.Printf("Created surveillance plan %s for patient %s (kind: %s)", plan.ID, plan.PatientID, plan.Kind)
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Plan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.surveillance_plans
		WHERE id = $1
	`, planColumns)

	plan, err := scanPlan(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get surveillance plan: %w", err)
	}
	return plan, nil
}

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Plan, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.surveillance_plans
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR patient_id = $2)
		  AND ($3 = '' OR kind = $3)
		ORDER BY next_due_date ASC
	`, planColumns)

	rows, err := r.db.QueryContext(ctx, query, string(filter.Status), filter.PatientID, string(filter.Kind))
	if err != nil {
		return nil, fmt.Errorf("failed to list surveillance plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan surveillance plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating surveillance plans: %w", err)
	}

	return plans, nil
}

// ListWithPagination retrieves plans for the dashboard table, newest first.
func (r *Repository) ListWithPagination(ctx context.Context, limit, offset int) ([]Plan, int, error) {
	var totalCount int
	countQuery := `SELECT COUNT(*) FROM pharmacy.surveillance_plans`

	err := r.db.QueryRowContext(ctx, countQuery).Scan(&totalCount)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count surveillance plans: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM pharmacy.surveillance_plans
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, planColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list surveillance plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan surveillance plan: %w", err)
		}
		plans = append(plans, *plan)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating surveillance plans: %w", err)
	}

	return plans, totalCount, nil
}

// Update commits the plan only when the stored row still carries the version
// the caller read. A concurrent writer that committed first bumps the version
// and the losing write fails with ErrVersionConflict instead of silently
// overwriting the fresher schedule.
func (r *Repository) Update(ctx context.Context, plan *Plan) error {
	now := time.Now()

	results, err := marshalResults(plan.LastResults)
	if err != nil {
		return err
	}

	query := `
		UPDATE pharmacy.surveillance_plans
		SET next_due_date = $1, last_analysis_date = $2, last_results = $3,
		    status = $4, priority = $5, notes = $6, lab = $7, lab_contact = $8,
		    version = version + 1, updated_at = $9
		WHERE id = $10 AND version = $11
	`

	result, err := r.db.ExecContext(ctx, query,
		plan.NextDueDate,
		plan.LastAnalysisDate,
		results,
		string(plan.Status),
		string(plan.Priority),
		plan.Notes,
		plan.Lab,
		plan.LabContact,
		now,
		plan.ID,
		plan.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update surveillance plan: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		// Distinguish a stale version from a missing plan.
		var exists int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM pharmacy.surveillance_plans WHERE id = $1`, plan.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrPlanNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to check surveillance plan existence: %w", err)
		}
		return ErrVersionConflict
	}

	plan.Version++
	plan.UpdatedAt = &now

	log.Printf("Updated surveillance plan %s (status: %s, next due: %s)",
		plan.ID, plan.Status, plan.NextDueDate.Format("2006-01-02"))
	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlan(row rowScanner) (*Plan, error) {
	plan := &Plan{}
	var medicationID sql.NullString
	var parameters pq.StringArray
	var lastAnalysisDate sql.NullTime
	var lastResults []byte
	var kind, status, priority string
	var notes, lab, labContact sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&plan.ID,
		&plan.PatientID,
		&medicationID,
		&kind,
		&parameters,
		&plan.FrequencyMonths,
		&plan.StartDate,
		&plan.NextDueDate,
		&lastAnalysisDate,
		&lastResults,
		&status,
		&priority,
		&notes,
		&lab,
		&labContact,
		&plan.Version,
		&plan.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if medicationID.Valid {
		plan.MedicationID = &medicationID.String
	}
	plan.Kind = Kind(kind)
	plan.Parameters = []string(parameters)
	plan.Status = Status(status)
	plan.Priority = Priority(priority)
	if lastAnalysisDate.Valid {
		d := DateOnly(lastAnalysisDate.Time)
		plan.LastAnalysisDate = &d
	}
	if len(lastResults) > 0 {
		if err := json.Unmarshal(lastResults, &plan.LastResults); err != nil {
			return nil, fmt.Errorf("failed to decode last results: %w", err)
		}
	}
	if notes.Valid {
		plan.Notes = notes.String
	}
	if lab.Valid {
		plan.Lab = lab.String
	}
	if labContact.Valid {
		plan.LabContact = labContact.String
	}
	if updatedAt.Valid {
		plan.UpdatedAt = &updatedAt.Time
	}

	plan.StartDate = DateOnly(plan.StartDate)
	plan.NextDueDate = DateOnly(plan.NextDueDate)

	return plan, nil
}

func marshalResults(results map[string]string) ([]byte, error) {
	if len(results) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to encode results payload: %w", err)
	}
	return data, nil
}
