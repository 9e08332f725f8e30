package prescription

import (
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
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Prescription *PrescriptionResponse `json:"prescription,omitempty"`
}

func (h *Handler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	prescription, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Printf("Failed to create prescription: %v", err)
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Prescription created successfully",
		Prescription: prescription,
	})
}

func (h *Handler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Prescription ID is required")
		return
	}

	prescription, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Prescription retrieved successfully",
		Prescription: prescription,
	})
}

// ListByPatient serves a patient's prescription history.
func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patientID := mux.Vars(r)["patientId"]
	params := pagination.ParseParams(r)

	response, err := h.service.ListByPatient(r.Context(), patientID, params)
	if err != nil {
		log.Printf("Failed to list prescriptions for patient %s: %v", patientID, err)
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) UpdatePrescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Prescription ID is required")
		return
	}

	var req UpdatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	prescription, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Printf("Failed to update prescription %s: %v", id, err)
		respondServiceError(w, err, "update_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Prescription updated successfully",
		Prescription: prescription,
	})
}

func (h *Handler) DeletePrescription(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Prescription ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Printf("Failed to delete prescription %s: %v", id, err)
		respondServiceError(w, err, "deletion_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Prescription deleted successfully",
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrMissingMedication),
		errors.Is(err, ErrInvalidDuration):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPrescriptionNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
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
