package messaging

import (
	"fmt"
	"time"
)

// Event routing keys as constants
const (
	// Patient events
	EventPatientCreated = "patient.created"
	EventPatientUpdated = "patient.updated"
	EventPatientDeleted = "patient.deleted"

	// Prescription events
	EventPrescriptionCreated = "prescription.created"

	// Surveillance events
	EventSurveillanceCreated        = "surveillance.created"
	EventSurveillanceResultRecorded = "surveillance.result_recorded"
	EventSurveillanceStatusChanged  = "surveillance.status_changed"
	EventSurveillanceReminder       = "surveillance.reminder"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "pharmacy-service",
	}
}

// PatientCreatedEvent represents a patient creation event
type PatientCreatedEvent struct {
	BaseEvent
	Data PatientCreatedData `json:"data"`
}

type PatientCreatedData struct {
	PatientID   string    `json:"patient_id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// PatientUpdatedEvent represents a patient update event
type PatientUpdatedEvent struct {
	BaseEvent
	Data PatientUpdatedData `json:"data"`
}

type PatientUpdatedData struct {
	PatientID string `json:"patient_id"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
}

// PatientDeletedEvent represents a patient deletion event
type PatientDeletedEvent struct {
	BaseEvent
	Data PatientDeletedData `json:"data"`
}

type PatientDeletedData struct {
	PatientID string    `json:"patient_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// PrescriptionCreatedEvent represents a prescription creation event
type PrescriptionCreatedEvent struct {
	BaseEvent
	Data PrescriptionCreatedData `json:"data"`
}

type PrescriptionCreatedData struct {
	PrescriptionID string    `json:"prescription_id"`
	PatientID      string    `json:"patient_id"`
	Medication     string    `json:"medication"`
	Prescriber     string    `json:"prescriber,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SurveillanceCreatedEvent signals a new biological surveillance plan
type SurveillanceCreatedEvent struct {
	BaseEvent
	Data SurveillanceCreatedData `json:"data"`
}

type SurveillanceCreatedData struct {
	PlanID          string `json:"plan_id"`
	PatientID       string `json:"patient_id"`
	Kind            string `json:"kind"`
	FrequencyMonths int    `json:"frequency_months"`
	NextDueDate     string `json:"next_due_date"`
}

// SurveillanceResultRecordedEvent signals a lab result was logged and the
// schedule rolled forward
type SurveillanceResultRecordedEvent struct {
	BaseEvent
	Data SurveillanceResultRecordedData `json:"data"`
}

type SurveillanceResultRecordedData struct {
	PlanID       string `json:"plan_id"`
	PatientID    string `json:"patient_id"`
	AnalysisDate string `json:"analysis_date"`
	NextDueDate  string `json:"next_due_date"`
}

// SurveillanceStatusChangedEvent signals a lifecycle transition
type SurveillanceStatusChangedEvent struct {
	BaseEvent
	Data SurveillanceStatusChangedData `json:"data"`
}

type SurveillanceStatusChangedData struct {
	PlanID    string `json:"plan_id"`
	PatientID string `json:"patient_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// SurveillanceReminderEvent is published by the reminder job for each plan
// that is due or overdue
type SurveillanceReminderEvent struct {
	BaseEvent
	Data SurveillanceReminderData `json:"data"`
}

type SurveillanceReminderData struct {
	PlanID       string `json:"plan_id"`
	PatientID    string `json:"patient_id"`
	Kind         string `json:"kind"`
	Urgency      string `json:"urgency"`
	DaysUntilDue int    `json:"days_until_due"`
	NextDueDate  string `json:"next_due_date"`
}
