package usecases

import (
	"context"
	"fmt"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// WorkloadGauge receives registry-wide snapshots.
type WorkloadGauge interface {
	SetStatusCount(status string, n int64)
	SetOverdue(n int64)
}

// RefreshWorkloadUseCase recounts the whole registry by status and the
// number of overdue requests. It only reads.
type RefreshWorkloadUseCase struct {
	requests request.Repository
	gauge    WorkloadGauge
	clock    biztime.Clock
	logger   logger.Interface
}

func NewRefreshWorkloadUseCase(requests request.Repository, gauge WorkloadGauge, clock biztime.Clock, logger logger.Interface) *RefreshWorkloadUseCase {
	return &RefreshWorkloadUseCase{requests: requests, gauge: gauge, clock: clock, logger: logger}
}

// Execute returns the number of requests seen across all statuses.
func (uc *RefreshWorkloadUseCase) Execute(ctx context.Context) (int, error) {
	var total int64
	for _, status := range vo.AllStatuses {
		n, err := uc.requests.Count(ctx, request.Scope{Statuses: []vo.RequestStatus{status}})
		if err != nil {
			return 0, fmt.Errorf("failed to count %s requests: %w", status, err)
		}
		uc.gauge.SetStatusCount(status.String(), n)
		total += n
	}

	today := biztime.DateOf(uc.clock.Now())
	_, overdue, err := uc.requests.List(ctx, request.ListFilter{OverdueOn: &today, Page: 1, PageSize: 1})
	if err != nil {
		return 0, fmt.Errorf("failed to count overdue requests: %w", err)
	}
	uc.gauge.SetOverdue(overdue)

	uc.logger.Debugw("workload refreshed", "total", total, "overdue", overdue)
	return int(total), nil
}
