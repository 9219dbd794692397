package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/adli-inc/adli/internal/domain/company"
	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/biztime"
	apperrors "github.com/adli-inc/adli/internal/shared/errors"
)

func newGetRequestUseCase(t *testing.T, r *request.Request) *GetRequestUseCase {
	t.Helper()
	c, err := company.ReconstructCompany(5, "301234567", "Tashkent Water LLC", testNow, testNow)
	require.NoError(t, err)

	return NewGetRequestUseCase(GetRequestDeps{
		Requests: &mockRequestRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*request.Request, error) {
				if id == r.ID() {
					return r, nil
				}
				return nil, nil
			},
		},
		Companies: &mockCompanyRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*company.Company, error) { return c, nil },
		},
		History: &mockHistoryRepository{
			ListByRequestFunc: func(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*request.HistoryEntry, error) {
				assert.Nil(t, actions)
				return []*request.HistoryEntry{
					request.ReconstructHistoryEntry(2, r.ID(), uintPtr(111), vo.ActionStepAdded, "", "", "", nil, testNow),
					request.ReconstructHistoryEntry(1, r.ID(), nil, vo.ActionCreated, "", "new", "", nil, testNow),
				}, nil
			},
		},
		Resolutions: &mockResolutionRepository{
			ListByRequestFunc: func(ctx context.Context, requestID uint) ([]*request.Resolution, error) {
				return []*request.Resolution{
					request.ReconstructResolution(1, r.ID(), 107, "**Urgent**", uintPtr(3), uintPtr(11), nil, testNow),
				}, nil
			},
		},
		Steps: &mockStepRepository{
			ListByRequestFunc: func(ctx context.Context, requestID uint) ([]*request.Step, error) {
				return []*request.Step{request.ReconstructStep(1, r.ID(), 111, "Crew dispatched", testNow)}, nil
			},
		},
		Files: &mockFileRepository{
			ListByRequestFunc: func(ctx context.Context, requestID uint) ([]*request.File, error) {
				return []*request.File{request.ReconstructFile(1, r.ID(), vo.FileKindAttachment, "uploads/act.pdf", "act.pdf", 2048, testNow)}, nil
			},
		},
		Text:   mockTextService{},
		Clock:  biztime.NewFakeClock(testNow),
		Logger: &mockLogger{},
	})
}

func TestGetRequestUseCase_AssemblesCaseFile(t *testing.T) {
	r := requestInStatus(t, 4, vo.StatusInProgress, withEmployee(11), withDepartment(3))
	uc := newGetRequestUseCase(t, r)

	result, err := uc.Execute(context.Background(), GetRequestQuery{Actor: executor, RequestID: 4, Language: language.English})

	require.NoError(t, err)
	assert.Equal(t, "2026-000004", result.PublicID)
	assert.Equal(t, "Tashkent Water LLC", result.CompanyName)
	assert.Equal(t, "In progress", result.StatusLabel)
	assert.Equal(t, "no_deadline", result.SLA.Kind)
	require.Len(t, result.Resolutions, 1)
	assert.Equal(t, "**Urgent**", result.Resolutions[0].Text)
	assert.Equal(t, "<p>**Urgent**</p>", result.Resolutions[0].TextHTML)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "<p>Crew dispatched</p>", result.Steps[0].TextHTML)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "act.pdf", result.Files[0].OriginalName)
	require.Len(t, result.History, 2)
	assert.Equal(t, "step_added", result.History[0].Action)
	assert.Equal(t, uint(111), *result.History[0].ActorID)
}

func TestGetRequestUseCase_HiddenFromOtherExecutor(t *testing.T) {
	r := requestInStatus(t, 4, vo.StatusInProgress, withEmployee(12), withDepartment(3))
	uc := newGetRequestUseCase(t, r)

	_, err := uc.Execute(context.Background(), GetRequestQuery{Actor: executor, RequestID: 4})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetRequestUseCase_HeadOfDepartmentSeesDepartment(t *testing.T) {
	r := requestInStatus(t, 4, vo.StatusAssigned, withEmployee(12), withDepartment(3))
	uc := newGetRequestUseCase(t, r)
	head := executor
	head.Role = "head_of_department"

	result, err := uc.Execute(context.Background(), GetRequestQuery{Actor: head, RequestID: 4})

	require.NoError(t, err)
	assert.Equal(t, "assigned", result.Status)
}
