package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	GetByID(ctx context.Context, id string) (*PatientResponse, error)
	ListWithPagination(ctx context.Context, limit, offset int, search string) ([]PatientResponse, int, error)
	Update(ctx context.Context, patient *PatientResponse) error
	SoftDelete(ctx context.Context, id string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
