package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/adli-inc/adli/internal/domain/agency"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func uintPtr(v uint) *uint { return &v }

type requestOption func(*requestFields)

type requestFields struct {
	department *uint
	employee   *uint
	deputy     *uint
	due        *time.Time
}

func withDepartment(id uint) requestOption { return func(f *requestFields) { f.department = &id } }
func withEmployee(id uint) requestOption   { return func(f *requestFields) { f.employee = &id } }
func withDeputy(id uint) requestOption     { return func(f *requestFields) { f.deputy = &id } }

func withDue(d time.Time) requestOption {
	return func(f *requestFields) { f.due = &d }
}

// requestInStatus rebuilds a stored request with public ID 2026-0000{id}.
func requestInStatus(t *testing.T, id uint, status vo.RequestStatus, opts ...requestOption) *request.Request {
	t.Helper()
	var f requestFields
	for _, o := range opts {
		o(&f)
	}
	var resolvedAt *time.Time
	if status == vo.StatusDone {
		at := testNow.Add(-time.Hour)
		resolvedAt = &at
	}
	r, err := request.ReconstructRequest(
		id, request.FormatPublicID(2026, int64(id)), 2026, int64(id), status,
		5, uintPtr(8), nil,
		f.department, f.employee, f.deputy,
		"Broken water supply in the district",
		f.due, resolvedAt,
		testNow.Add(-48*time.Hour), testNow.Add(-24*time.Hour),
	)
	require.NoError(t, err)
	return r
}

func agencyEmployee(t *testing.T, id uint, departmentID *uint, active bool, roles ...string) *agency.Employee {
	t.Helper()
	e, err := agency.ReconstructEmployee(id, id+100, departmentID, "Aziz", "Karimov", "", "specialist", active, roles)
	require.NoError(t, err)
	return e
}

// lifecycleFixture wires a lifecycle use case to mocks around one request.
type lifecycleFixture struct {
	req         *request.Request
	requests    *mockRequestRepository
	history     *mockHistoryRepository
	resolutions *mockResolutionRepository
	steps       *mockStepRepository
	observer    *mockObserver
	counts      *mockCountCache
	tx          *mockTxManager
	updates     int
}

func newLifecycleFixture(t *testing.T, r *request.Request) *lifecycleFixture {
	t.Helper()
	f := &lifecycleFixture{
		req:         r,
		history:     &mockHistoryRepository{},
		resolutions: &mockResolutionRepository{},
		steps:       &mockStepRepository{},
		observer:    &mockObserver{},
		counts:      &mockCountCache{},
		tx:          &mockTxManager{},
	}
	f.requests = &mockRequestRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
			if f.req == nil || f.req.ID() != id {
				return nil, nil
			}
			return f.req, nil
		},
		UpdateFunc: func(ctx context.Context, r *request.Request) error {
			f.updates++
			return nil
		},
	}
	return f
}

func (f *lifecycleFixture) deps() LifecycleDeps {
	return LifecycleDeps{
		TxManager:   f.tx,
		Requests:    f.requests,
		History:     f.history,
		Resolutions: f.resolutions,
		Steps:       f.steps,
		Observer:    f.observer,
		Counts:      f.counts,
		Clock:       biztime.NewFakeClock(testNow),
		Logger:      &mockLogger{},
	}
}
