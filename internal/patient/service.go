package patient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/loyalty"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/messaging"
	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// Service carries the patient directory rules: field validation, loyalty
// level derivation on reads, and event publication.
type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error) {
	if req.FullName == "" {
		return nil, ErrMissingFullName
	}
	if req.DateOfBirth != "" {
		if _, err := time.Parse("2006-01-02", req.DateOfBirth); err != nil {
			return nil, ErrInvalidDateOfBirth
		}
	}
	if req.LoyaltyPoints < 0 {
		return nil, ErrInvalidLoyalty
	}

	patient, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	patient.LoyaltyLevel = loyalty.LevelFor(patient.LoyaltyPoints)

	s.publishCreated(ctx, patient)

	return patient, nil
}

func (s *Service) Get(ctx context.Context, id string) (*PatientResponse, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.LoyaltyLevel = loyalty.LevelFor(patient.LoyaltyPoints)
	return patient, nil
}

func (s *Service) List(ctx context.Context, params pagination.Params, search string) (*PaginatedPatientsResponse, error) {
	params.Validate()

	patients, totalCount, err := s.repo.ListWithPagination(ctx, params.Limit, params.CalculateOffset(), search)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	for i := range patients {
		patients[i].LoyaltyLevel = loyalty.LevelFor(patients[i].LoyaltyPoints)
	}

	return &PaginatedPatientsResponse{
		Success:    true,
		Patients:   patients,
		Pagination: params.CalculateMeta(totalCount),
	}, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error) {
	patient, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, ErrMissingFullName
		}
		patient.FullName = *req.FullName
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		patient.PhoneNumber = *req.PhoneNumber
	}
	if req.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *req.DateOfBirth); err != nil {
			return nil, ErrInvalidDateOfBirth
		}
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Allergies != nil {
		patient.Allergies = *req.Allergies
	}
	if req.MedicalNotes != nil {
		patient.MedicalNotes = *req.MedicalNotes
	}
	if req.LoyaltyPoints != nil {
		if *req.LoyaltyPoints < 0 {
			return nil, ErrInvalidLoyalty
		}
		patient.LoyaltyPoints = *req.LoyaltyPoints
	}
	if req.IsActive != nil {
		patient.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	patient.LoyaltyLevel = loyalty.LevelFor(patient.LoyaltyPoints)

	s.publishUpdated(ctx, patient)

	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.publishDeleted(ctx, id)
	return nil
}

func (s *Service) publishCreated(ctx context.Context, patient *PatientResponse) {
	if s.publisher == nil {
		return
	}
	data := messaging.PatientCreatedData{
		PatientID:   patient.ID,
		FullName:    patient.FullName,
		Email:       patient.Email,
		PhoneNumber: patient.PhoneNumber,
		IsActive:    patient.IsActive,
		CreatedAt:   patient.CreatedAt,
	}
	if patient.DateOfBirth != nil {
		data.DateOfBirth = *patient.DateOfBirth
	}
	event := messaging.PatientCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientCreated),
		Data:      data,
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientCreated, event); err != nil {
		log.Printf("Warning: failed to publish patient.created event: %v", err)
	}
}

func (s *Service) publishUpdated(ctx context.Context, patient *PatientResponse) {
	if s.publisher == nil {
		return
	}
	event := messaging.PatientUpdatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientUpdated),
		Data: messaging.PatientUpdatedData{
			PatientID: patient.ID,
			FullName:  patient.FullName,
			IsActive:  patient.IsActive,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientUpdated, event); err != nil {
		log.Printf("Warning: failed to publish patient.updated event: %v", err)
	}
}

func (s *Service) publishDeleted(ctx context.Context, id string) {
	if s.publisher == nil {
		return
	}
	event := messaging.PatientDeletedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventPatientDeleted),
		Data: messaging.PatientDeletedData{
			PatientID: id,
			DeletedAt: time.Now().UTC(),
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventPatientDeleted, event); err != nil {
		log.Printf("Warning: failed to publish patient.deleted event: %v", err)
	}
}
