package consultation

import "context"

// RepositoryInterface defines the contract for consultation data access
type RepositoryInterface interface {
	Create(ctx context.Context, req CreateConsultationRequest) (*ConsultationResponse, error)
	GetByID(ctx context.Context, id string) (*ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]ConsultationResponse, error)
	Update(ctx context.Context, consultation *ConsultationResponse) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
