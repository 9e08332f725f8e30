package consultation

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateConsultationRequest) (*ConsultationResponse, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Subject == "" {
		return nil, ErrMissingSubject
	}
	if req.ConsultationDate == "" {
		req.ConsultationDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", req.ConsultationDate); err != nil {
		return nil, ErrInvalidDate
	}

	consultation, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create consultation: %w", err)
	}
	return consultation, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ConsultationResponse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID string) ([]ConsultationResponse, error) {
	if patientID == "" {
		return nil, ErrMissingPatientID
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, id string, req UpdateConsultationRequest) (*ConsultationResponse, error) {
	consultation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		if *req.Subject == "" {
			return nil, ErrMissingSubject
		}
		consultation.Subject = *req.Subject
	}
	if req.Summary != nil {
		consultation.Summary = *req.Summary
	}
	if req.FollowUpRequired != nil {
		consultation.FollowUpRequired = *req.FollowUpRequired
	}

	if err := s.repo.Update(ctx, consultation); err != nil {
		return nil, err
	}
	return consultation, nil
}
