//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/auth"
	httpserver "github.com/OfficineVitale-Pharma/pharmacy-service/internal/http"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/testutil"
)

// TestServer represents a complete E2E test environment
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	Verifier      *auth.Verifier
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest creates a complete test environment for E2E testing
// This includes:
// - Real PostgreSQL database
// - Real HTTP server with all routes
// - Mock RabbitMQ publisher (in-memory only)
// - Test JWT verifier and signing key
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	// Setup real database
	db := testutil.SetupTestDB(t)

	// Create mock RabbitMQ publisher (in-memory only, no real RabbitMQ calls)
	mockPublisher := testutil.NewMockPublisher()

	// Load permissions from file
	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}

	// Create test verifier and get private key for signing tokens
	verifier, privateKey := testutil.CreateTestVerifier(t)

	// Setup router with the real database and the mock publisher
	router := httpserver.SetupRouter(db, mockPublisher, verifier, perms)

	// Create test HTTP server
	server := httptest.NewServer(router)

	return &TestServer{
		Server:        server,
		DB:            db,
		MockPublisher: mockPublisher,
		Verifier:      verifier,
		PrivateKey:    privateKey,
	}
}

// Cleanup cleans up all test resources
func (ts *TestServer) Cleanup(t *testing.T) {
	t.Helper()

	// Close HTTP server
	ts.Server.Close()

	// Clean up database
	testutil.CleanupTestDB(t, ts.DB)
	ts.DB.Close()
}

// GenerateAdminToken generates an ADMIN token for this test server
func (ts *TestServer) GenerateAdminToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateAdminToken(t, ts.PrivateKey)
}

// GeneratePharmacistToken generates a PHARMACIST token for this test server
func (ts *TestServer) GeneratePharmacistToken(t *testing.T) string {
	t.Helper()
	return testutil.GeneratePharmacistToken(t, ts.PrivateKey)
}

// GenerateAssistantToken generates an ASSISTANT token for this test server
func (ts *TestServer) GenerateAssistantToken(t *testing.T) string {
	t.Helper()
	return testutil.GenerateAssistantToken(t, ts.PrivateKey)
}

// NewClient creates a new HTTP test client for this server with the given token
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	return testutil.NewHTTPTestClient(ts.Server.URL, token)
}
