package consultation

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/auth"
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
	Consultation *ConsultationResponse `json:"consultation,omitempty"`
}

type ListResponse struct {
	Success       bool                   `json:"success"`
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

func (h *Handler) CreateConsultation(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	var req CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	consultation, err := h.service.Create(r.Context(), req)
	if err != nil {
		log.Printf("Failed to create consultation: %v", err)
		respondServiceError(w, err, "creation_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Consultation recorded successfully",
		Consultation: consultation,
	})
}

func (h *Handler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Consultation ID is required")
		return
	}

	consultation, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Consultation retrieved successfully",
		Consultation: consultation,
	})
}

func (h *Handler) ListByPatient(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	patientID := mux.Vars(r)["patientId"]

	consultations, err := h.service.ListByPatient(r.Context(), patientID)
	if err != nil {
		log.Printf("Failed to list consultations for patient %s: %v", patientID, err)
		respondServiceError(w, err, "fetch_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{
		Success:       true,
		Consultations: consultations,
		Total:         len(consultations),
	})
}

func (h *Handler) UpdateConsultation(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.FromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "User not authenticated")
		return
	}

	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Consultation ID is required")
		return
	}

	var req UpdateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	consultation, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		log.Printf("Failed to update consultation %s: %v", id, err)
		respondServiceError(w, err, "update_failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:      true,
		Message:      "Consultation updated successfully",
		Consultation: consultation,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallbackType string) {
	switch {
	case errors.Is(err, ErrMissingPatientID),
		errors.Is(err, ErrMissingSubject),
		errors.Is(err, ErrInvalidDate):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrConsultationNotFound):
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
