package prescription

import (
	"context"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// ServiceInterface defines the contract for prescription operations
type ServiceInterface interface {
	Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionResponse, error)
	Get(ctx context.Context, id string) (*PrescriptionResponse, error)
	ListByPatient(ctx context.Context, patientID string, params pagination.Params) (*PaginatedPrescriptionsResponse, error)
	Update(ctx context.Context, id string, req UpdatePrescriptionRequest) (*PrescriptionResponse, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
