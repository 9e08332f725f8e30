package surveillance

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/auth"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Plan    *Plan  `json:"plan,omitempty"`
}

type UrgentListResponse struct {
	Success bool          `json:"success"`
	Plans   []PlanUrgency `json:"plans"`
	Total   int           `json:"total"`
}

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	plan, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Printf("Failed to create surveillance plan: %v", err)
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Surveillance plan created successfully",
		Plan:    plan,
	})
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Plan ID is required")
		return
	}

	plan, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Surveillance plan retrieved successfully",
		Plan:    plan,
	})
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	params := pagination.ParseParams(r)

	response, err := h.service.List(r.Context(), params)
	if err != nil {
		log.Printf("Failed to list surveillance plans: %v", err)
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// ListUrgent serves the dashboard alert feed: active plans tagged with their
// urgency tier, most pressing first.
func (h *Handler) ListUrgent(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	minUrgency, err := parseTier(r.URL.Query().Get("min_urgency"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	filter := UrgentFilter{
		PatientID:  r.URL.Query().Get("patient_id"),
		Kind:       Kind(r.URL.Query().Get("kind")),
		MinUrgency: minUrgency,
	}

	plans, err := h.service.ListUrgent(r.Context(), filter)
	if err != nil {
		log.Printf("Failed to list urgent surveillance plans: %v", err)
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(UrgentListResponse{
		Success: true,
		Plans:   plans,
		Total:   len(plans),
	})
}

func (h *Handler) RecordResult(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]

	var req RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	plan, err := h.service.RecordResult(r.Context(), id, req)
	if err != nil {
		log.Printf("Failed to record result for plan %s: %v", id, err)
		respondServiceError(w, err, "record_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Analysis result recorded successfully",
		Plan:    plan,
	})
}

func (h *Handler) SuspendPlan(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Suspend, "Surveillance plan suspended")
}

func (h *Handler) ResumePlan(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Resume, "Surveillance plan resumed")
}

func (h *Handler) CancelPlan(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Cancel, "Surveillance plan cancelled")
}

func (h *Handler) CompletePlan(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Complete, "Surveillance plan completed")
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id string) (*Plan, error), message string) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Plan ID is required")
		return
	}

	plan, err := op(r.Context(), id)
	if err != nil {
		log.Printf("Failed transition for plan %s: %v", id, err)
		respondServiceError(w, err, "transition_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: message,
		Plan:    plan,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrMissingParameters),
		errors.Is(err, ErrInvalidFrequency),
		errors.Is(err, ErrInvalidKind),
		errors.Is(err, ErrInvalidPriority),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrStartDateInFuture),
		errors.Is(err, ErrFirstDueTooEarly):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPlanNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrPlanTerminal),
		errors.Is(err, ErrPlanNotActive),
		errors.Is(err, ErrPlanNotSuspended):
		respondError(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, ErrFutureAnalysisDate):
		respondError(w, http.StatusUnprocessableEntity, "future_date", err.Error())
	case errors.Is(err, ErrVersionConflict):
		respondError(w, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, fallbackType, err.Error())
	}
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errorType,
		Message: message,
	})
}
