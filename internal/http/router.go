package http

import (
	"database/sql"
	"net/http"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/auth"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/consultation"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/patient"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/prescription"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/surveillance"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application
func SetupRouter(db *sql.DB, publisher messaging.PublisherInterface, verifier *auth.Verifier, perms map[string][]string) *mux.Router {
	// Initialize surveillance components
	surveillanceRepo := surveillance.NewRepository(db)
	surveillanceService := surveillance.NewService(surveillanceRepo, surveillance.SystemClock(), publisher)
	surveillanceHandler := surveillance.NewHandler(surveillanceService)

	// Initialize patient components
	patientRepo := patient.NewRepository(db)
	patientService := patient.NewService(patientRepo, publisher)
	patientHandler := patient.NewHandler(patientService)

	// Initialize prescription components
	prescriptionRepo := prescription.NewRepository(db)
	prescriptionService := prescription.NewService(prescriptionRepo, publisher)
	prescriptionHandler := prescription.NewHandler(prescriptionService)

	// Initialize consultation components
	consultationRepo := consultation.NewRepository(db)
	consultationService := consultation.NewService(consultationRepo)
	consultationHandler := consultation.NewHandler(consultationService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("pharmacy-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pharmacy-service"}`))
	}).Methods("GET")

	// Surveillance plan routes
	r.Handle("/surveillance",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:create", perms)(
				http.HandlerFunc(surveillanceHandler.CreatePlan),
			),
		),
	).Methods("POST")

	r.Handle("/surveillance",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:view", perms)(
				http.HandlerFunc(surveillanceHandler.ListPlans),
			),
		),
	).Methods("GET")

	// Registered before /surveillance/{id} so "urgent" is not taken for an ID
	r.Handle("/surveillance/urgent",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:view", perms)(
				http.HandlerFunc(surveillanceHandler.ListUrgent),
			),
		),
	).Methods("GET")

	r.Handle("/surveillance/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:view", perms)(
				http.HandlerFunc(surveillanceHandler.GetPlan),
			),
		),
	).Methods("GET")

	r.Handle("/surveillance/{id}/results",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:update", perms)(
				http.HandlerFunc(surveillanceHandler.RecordResult),
			),
		),
	).Methods("POST")

	r.Handle("/surveillance/{id}/suspend",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:update", perms)(
				http.HandlerFunc(surveillanceHandler.SuspendPlan),
			),
		),
	).Methods("POST")

	r.Handle("/surveillance/{id}/resume",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:update", perms)(
				http.HandlerFunc(surveillanceHandler.ResumePlan),
			),
		),
	).Methods("POST")

	r.Handle("/surveillance/{id}/cancel",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:delete", perms)(
				http.HandlerFunc(surveillanceHandler.CancelPlan),
			),
		),
	).Methods("POST")

	r.Handle("/surveillance/{id}/complete",
		auth.Middleware(verifier)(
			auth.RequirePermission("surveillance:update", perms)(
				http.HandlerFunc(surveillanceHandler.CompletePlan),
			),
		),
	).Methods("POST")

	// Patient routes
	r.Handle("/patients",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:create", perms)(
				http.HandlerFunc(patientHandler.CreatePatient),
			),
		),
	).Methods("POST")

	r.Handle("/patients",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.ListPatients),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:view", perms)(
				http.HandlerFunc(patientHandler.GetPatient),
			),
		),
	).Methods("GET")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:update", perms)(
				http.HandlerFunc(patientHandler.UpdatePatient),
			),
		),
	).Methods("PUT")

	r.Handle("/patients/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("patient:delete", perms)(
				http.HandlerFunc(patientHandler.DeletePatient),
			),
		),
	).Methods("DELETE")

	// Prescription routes
	r.Handle("/prescriptions",
		auth.Middleware(verifier)(
			auth.RequirePermission("prescription:create", perms)(
				http.HandlerFunc(prescriptionHandler.CreatePrescription),
			),
		),
	).Methods("POST")

	r.Handle("/patients/{patientId}/prescriptions",
		auth.Middleware(verifier)(
			auth.RequirePermission("prescription:view", perms)(
				http.HandlerFunc(prescriptionHandler.ListByPatient),
			),
		),
	).Methods("GET")

	r.Handle("/prescriptions/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("prescription:view", perms)(
				http.HandlerFunc(prescriptionHandler.GetPrescription),
			),
		),
	).Methods("GET")

	r.Handle("/prescriptions/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("prescription:update", perms)(
				http.HandlerFunc(prescriptionHandler.UpdatePrescription),
			),
		),
	).Methods("PUT")

	r.Handle("/prescriptions/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("prescription:delete", perms)(
				http.HandlerFunc(prescriptionHandler.DeletePrescription),
			),
		),
	).Methods("DELETE")

	// Consultation routes
	r.Handle("/consultations",
		auth.Middleware(verifier)(
			auth.RequirePermission("consultation:create", perms)(
				http.HandlerFunc(consultationHandler.CreateConsultation),
			),
		),
	).Methods("POST")

	r.Handle("/patients/{patientId}/consultations",
		auth.Middleware(verifier)(
			auth.RequirePermission("consultation:view", perms)(
				http.HandlerFunc(consultationHandler.ListByPatient),
			),
		),
	).Methods("GET")

	r.Handle("/consultations/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("consultation:view", perms)(
				http.HandlerFunc(consultationHandler.GetConsultation),
			),
		),
	).Methods("GET")

	r.Handle("/consultations/{id}",
		auth.Middleware(verifier)(
			auth.RequirePermission("consultation:update", perms)(
				http.HandlerFunc(consultationHandler.UpdateConsultation),
			),
		),
	).Methods("PUT")

	return r
}
