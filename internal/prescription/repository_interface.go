package prescription

import "context"

// RepositoryInterface defines the contract for prescription data access
type RepositoryInterface interface {
	Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error)
	GetByID(ctx context.Context, id string) (*PrescriptionResponse, error)
	ListByPatient(ctx context.Context, patientID string, limit, offset int) ([]PrescriptionResponse, int, error)
	Update(ctx context.Context, prescription *PrescriptionResponse) error
	Delete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
