package consultation

import "context"

// ServiceInterface defines the contract for consultation operations
type ServiceInterface interface {
	Create(ctx context.Context, req CreateConsultationRequest) (*ConsultationResponse, error)
	Get(ctx context.Context, id string) (*ConsultationResponse, error)
	ListByPatient(ctx context.Context, patientID string) ([]ConsultationResponse, error)
	Update(ctx context.Context, id string, req UpdateConsultationRequest) (*ConsultationResponse, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
