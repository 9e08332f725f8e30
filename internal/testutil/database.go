package testutil

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB creates a connection to the test database
// This connects to the local pharmacy_test database
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := "host=localhost port=5432 user=localadmin password=Stoplying! dbname=pharmacy_test sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return db
}

// SetupTestTransaction creates a test database connection and begins a transaction
// The transaction is automatically rolled back when the test ends
// This ensures test isolation without needing cleanup
func SetupTestTransaction(t *testing.T) (*sql.DB, *sql.Tx) {
	t.Helper()

	db := SetupTestDB(t)

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		db.Close()
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	// Ensure transaction is rolled back when test ends
	t.Cleanup(func() {
		tx.Rollback()
		db.Close()
	})

	return db, tx
}

// CleanupTestDB cleans up test data from the database
// Use this if you're not using transactions
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	// Surveillance plans and prescriptions reference patients, truncate together
	_, err := db.Exec(`TRUNCATE TABLE
		pharmacy.surveillance_plans,
		pharmacy.prescriptions,
		pharmacy.consultations,
		pharmacy.patients
		CASCADE`)
	if err != nil {
		t.Logf("Warning: Failed to clean up test tables: %v", err)
	}
}

// CreateTestPatient inserts a patient row and returns its ID
// This is a helper for tests that need a referenced patient
func CreateTestPatient(t *testing.T, db *sql.DB, fullName string) string {
	t.Helper()

	query := `
		INSERT INTO pharmacy.patients
		(id, full_name, is_active, loyalty_points, created_at)
		VALUES (gen_random_uuid(), $1, true, 0, NOW())
		RETURNING id
	`

	var patientID string
	if err := db.QueryRow(query, fullName).Scan(&patientID); err != nil {
		t.Fatalf("Failed to create test patient: %v", err)
	}

	return patientID
}
