package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
)

type recordingGauge struct {
	statuses map[string]int64
	overdue  int64
}

func (g *recordingGauge) SetStatusCount(status string, n int64) {
	if g.statuses == nil {
		g.statuses = map[string]int64{}
	}
	g.statuses[status] = n
}

func (g *recordingGauge) SetOverdue(n int64) { g.overdue = n }

func TestRefreshWorkloadUseCase_SetsGauges(t *testing.T) {
	perStatus := map[vo.RequestStatus]int64{vo.StatusNew: 4, vo.StatusInProgress: 2, vo.StatusDone: 9}
	var overdueFilter request.ListFilter
	repo := &mockRequestRepository{
		CountFunc: func(ctx context.Context, scope request.Scope) (int64, error) {
			require.Len(t, scope.Statuses, 1)
			assert.Equal(t, request.OwnerNone, scope.Owner)
			return perStatus[scope.Statuses[0]], nil
		},
		ListFunc: func(ctx context.Context, filter request.ListFilter) ([]*request.Request, int64, error) {
			overdueFilter = filter
			return nil, 3, nil
		},
	}
	gauge := &recordingGauge{}
	clock := biztime.NewFakeClock(time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC))

	total, err := NewRefreshWorkloadUseCase(repo, gauge, clock, &mockLogger{}).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 15, total)
	assert.Equal(t, int64(4), gauge.statuses["new"])
	assert.Equal(t, int64(0), gauge.statuses["assigned"])
	assert.Len(t, gauge.statuses, len(vo.AllStatuses))
	assert.Equal(t, int64(3), gauge.overdue)
	require.NotNil(t, overdueFilter.OverdueOn)
	assert.Equal(t, biztime.DateOf(clock.Now()), *overdueFilter.OverdueOn)
}

func TestRefreshWorkloadUseCase_CountError(t *testing.T) {
	repo := &mockRequestRepository{
		CountFunc: func(ctx context.Context, scope request.Scope) (int64, error) {
			return 0, errors.New("db down")
		},
	}
	gauge := &recordingGauge{}

	_, err := NewRefreshWorkloadUseCase(repo, gauge, biztime.SystemClock(), &mockLogger{}).Execute(context.Background())

	assert.Error(t, err)
	assert.Empty(t, gauge.statuses)
}
