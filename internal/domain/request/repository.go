package request

import (
	"context"
	"time"

	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

type Repository interface {
	// Create inserts the request with its direction links and sets its ID.
	Create(ctx context.Context, r *Request) error
	// Update persists lifecycle fields. The public ID columns are never
	// rewritten.
	Update(ctx context.Context, r *Request) error
	// Lookups return (nil, nil) when the request does not exist.
	GetByID(ctx context.Context, id uint) (*Request, error)
	// GetByIDForUpdate re-reads the row under an exclusive lock. It must be
	// called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id uint) (*Request, error)
	GetByPublicID(ctx context.Context, publicID string) (*Request, error)
	List(ctx context.Context, filter ListFilter) ([]*Request, int64, error)
	Count(ctx context.Context, scope Scope) (int64, error)
}

// ListFilter drives the internal worklist query.
type ListFilter struct {
	Scope Scope
	// Query matches public ID, description, company name or INN.
	Query  string
	Status *vo.RequestStatus
	// OverdueOn, when set, keeps only requests due strictly before that day.
	OverdueOn *time.Time
	Page      int
	PageSize  int
}

type HistoryRepository interface {
	Append(ctx context.Context, entries ...*HistoryEntry) error
	// ListByRequest returns entries newest first. A nil actions slice
	// returns every action.
	ListByRequest(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*HistoryEntry, error)
	// ListAudit returns every entry in insertion order.
	ListAudit(ctx context.Context, requestID uint) ([]*HistoryEntry, error)
}

type ResolutionRepository interface {
	Create(ctx context.Context, res *Resolution) error
	ListByRequest(ctx context.Context, requestID uint) ([]*Resolution, error)
}

type StepRepository interface {
	Create(ctx context.Context, s *Step) error
	ListByRequest(ctx context.Context, requestID uint) ([]*Step, error)
}

type FileRepository interface {
	Create(ctx context.Context, f *File) error
	ListByRequest(ctx context.Context, requestID uint) ([]*File, error)
}

// SequenceAllocator hands out per-year tracking sequence numbers. It joins
// the caller's transaction when one is present in ctx, so a rollback
// returns the number.
type SequenceAllocator interface {
	Allocate(ctx context.Context, year int) (int64, error)
}

// EnsurePublicID assigns a tracking number to r unless it already has one.
// The caller persists the request. It reports whether a number was allocated.
func EnsurePublicID(ctx context.Context, r *Request, alloc SequenceAllocator, year int) (bool, error) {
	if r.HasPublicID() {
		return false, nil
	}
	seq, err := alloc.Allocate(ctx, year)
	if err != nil {
		return false, err
	}
	if err := r.AssignPublicID(year, seq); err != nil {
		return false, err
	}
	return true, nil
}
