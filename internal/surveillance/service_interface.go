package surveillance

import (
	"context"

	"github.com/OfficineVitale-Pharma/pharmacy-service/internal/pagination"
)

// ServiceInterface defines the contract for the surveillance scheduling
// engine: lifecycle transitions and the urgency query surface.
type ServiceInterface interface {
	Create(ctx context.Context, req CreatePlanRequest) (*Plan, error)
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, params pagination.Params) (*PaginatedPlansResponse, error)
	ListUrgent(ctx context.Context, filter UrgentFilter) ([]PlanUrgency, error)
	RecordResult(ctx context.Context, id string, req RecordResultRequest) (*Plan, error)
	Suspend(ctx context.Context, id string) (*Plan, error)
	Resume(ctx context.Context, id string) (*Plan, error)
	Cancel(ctx context.Context, id string) (*Plan, error)
	Complete(ctx context.Context, id string) (*Plan, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
