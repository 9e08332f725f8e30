package patient

import (
	"context"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// ServiceInterface defines the contract for patient directory operations
type ServiceInterface interface {
	Create(ctx context.Context, req CreatePatientRequest) (*PatientResponse, error)
	Get(ctx context.Context, id string) (*PatientResponse, error)
	List(ctx context.Context, params pagination.Params, search string) (*PaginatedPatientsResponse, error)
	Update(ctx context.Context, id string, req UpdatePatientRequest) (*PatientResponse, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
