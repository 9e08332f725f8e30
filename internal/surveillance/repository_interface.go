package surveillance

import "context"

// RepositoryInterface defines the contract for surveillance plan persistence.
// Update carries the optimistic-concurrency check: it only commits when the
// stored version matches the version read, and fails with ErrVersionConflict
// otherwise.
type RepositoryInterface interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, filter ListFilter) ([]Plan, error)
	ListWithPagination(ctx context.Context, limit, offset int) ([]Plan, int, error)
	Update(ctx context.Context, plan *Plan) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
