package prescription

import (
	"context"
	"fmt"
	"log"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Medication == "" {
		return nil, ErrMissingMedication
	}
	if req.DurationDays < 0 {
		return nil, ErrInvalidDuration
	}

	prescription, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	s.publishCreated(ctx, prescription)

	return prescription, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PrescriptionResponse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string, params pagination.Params) (*PaginatedPrescriptionsResponse, error) {
	if patientID == "" {
		return nil, ErrMissingPatientID
	}
	params.Validate()

	prescriptions, totalCount, err := s.repo.ListByPatient(ctx, patientID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}

	return &PaginatedPrescriptionsResponse{
		Success:       true,
		Prescriptions: prescriptions,
		Pagination:    params.CalculateMeta(totalCount),
	}, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdatePrescriptionRequest) (*PrescriptionResponse, error) {
	prescription, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Prescriber != nil {
		prescription.Prescriber = *req.Prescriber
	}
	if req.Medication != nil {
		if *req.Medication == "" {
			return nil, ErrMissingMedication
		}
		prescription.Medication = *req.Medication
	}
	if req.Dosage != nil {
		prescription.Dosage = *req.Dosage
	}
	if req.DurationDays != nil {
		if *req.DurationDays < 0 {
			return nil, ErrInvalidDuration
		}
		prescription.DurationDays = *req.DurationDays
	}
	if req.Renewable != nil {
		prescription.Renewable = *req.Renewable
	}
	if req.Notes != nil {
		prescription.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, err
	}

	return prescription, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) publishCreated(ctx context.Context, prescription *PrescriptionResponse) {
	if s.publisher == nil {
		return
	}
	event := messaging.PrescriptionCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPrescriptionCreated),
		Data: messaging.PrescriptionCreatedData{
			PrescriptionID: prescription.ID,
			PatientID:      prescription.PatientID,
			Medication:     prescription.Medication,
			Prescriber:     prescription.Prescriber,
			CreatedAt:      prescription.CreatedAt,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPrescriptionCreated, event); err != nil {
		log.Printf("Warning: failed to publish prescription.created event: %v", err)
	}
}
