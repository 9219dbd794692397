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
	apperrors "github.com/adli-inc/adli/internal/shared/errors"
	"github.com/adli-inc/adli/internal/shared/utils"
)

func newTrackFixture(t *testing.T, r *request.Request, history []*request.HistoryEntry) (*TrackRequestUseCase, *[]vo.HistoryAction) {
	t.Helper()
	c, err := company.ReconstructCompany(5, "301234567", "Tashkent Water LLC", testNow, testNow)
	require.NoError(t, err)

	var requested []vo.HistoryAction
	requests := &mockRequestRepository{
		GetByPublicIDFunc: func(ctx context.Context, publicID string) (*request.Request, error) {
			if r != nil && r.PublicID() == publicID {
				return r, nil
			}
			return nil, nil
		},
	}
	companies := &mockCompanyRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*company.Company, error) {
			if id == 5 {
				return c, nil
			}
			return nil, nil
		},
	}
	hist := &mockHistoryRepository{
		ListByRequestFunc: func(ctx context.Context, requestID uint, actions []vo.HistoryAction) ([]*request.HistoryEntry, error) {
			requested = actions
			return history, nil
		},
	}
	return NewTrackRequestUseCase(requests, companies, hist, &mockLogger{}), &requested
}

func historyEntry(t *testing.T, id uint, action vo.HistoryAction, from, to string) *request.HistoryEntry {
	t.Helper()
	return request.ReconstructHistoryEntry(id, 3, uintPtr(42), action, from, to, "internal note", map[string]any{"employee_id": 11}, testNow)
}

func TestTrackRequestUseCase_Execute(t *testing.T) {
	r := requestInStatus(t, 3, vo.StatusInProgress)
	history := []*request.HistoryEntry{
		historyEntry(t, 4, vo.ActionStatusChanged, "assigned", "in_progress"),
		historyEntry(t, 1, vo.ActionCreated, "", "new"),
	}
	uc, requested := newTrackFixture(t, r, history)

	result, err := uc.Execute(context.Background(), TrackRequestQuery{
		INN:      "301 234 567",
		PublicID: " 2026-000003 ",
		Language: language.English,
	})

	require.NoError(t, err)
	assert.Equal(t, "2026-000003", result.PublicID)
	assert.Equal(t, "in_progress", result.Status)
	assert.Equal(t, "In progress", result.StatusLabel)
	require.Len(t, result.History, 2)
	assert.Equal(t, "status_changed", result.History[0].Action)
	assert.Equal(t, "in_progress", result.History[0].Status)
	assert.Equal(t, vo.PublicActions(), *requested)
}

func TestTrackRequestUseCase_DefaultsToRussianLabels(t *testing.T) {
	uc, _ := newTrackFixture(t, requestInStatus(t, 3, vo.StatusDone), nil)

	result, err := uc.Execute(context.Background(), TrackRequestQuery{INN: "301234567", PublicID: "2026-000003"})

	require.NoError(t, err)
	assert.Equal(t, "Выполнено", result.StatusLabel)
	assert.Empty(t, result.History)
}

func TestTrackRequestUseCase_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		query   TrackRequestQuery
		wantErr func(error) bool
	}{
		{"malformed public ID", TrackRequestQuery{INN: "301234567", PublicID: "26-7"}, apperrors.IsValidationError},
		{"missing INN", TrackRequestQuery{PublicID: "2026-000003"}, apperrors.IsValidationError},
		{"unknown public ID", TrackRequestQuery{INN: "301234567", PublicID: "2026-000099"}, apperrors.IsNotFoundError},
		{"INN of another company", TrackRequestQuery{INN: "999999999", PublicID: "2026-000003"}, apperrors.IsNotFoundError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTrackFixture(t, requestInStatus(t, 3, vo.StatusNew), nil)

			_, err := uc.Execute(context.Background(), tt.query)

			require.Error(t, err)
			assert.True(t, tt.wantErr(err), err.Error())
		})
	}
}

func TestPublicIDValidationTag(t *testing.T) {
	v := utils.Validator()

	require.NotPanics(t, func() { _ = v.Var("2026-000001", "public_id") })
	assert.NoError(t, v.Var("2026-000001", "public_id"))
	assert.Error(t, v.Var("26-7", "public_id"))
}

func TestTrackRequestUseCase_HistoryHidesInternals(t *testing.T) {
	history := []*request.HistoryEntry{historyEntry(t, 2, vo.ActionRegistered, "new", "registered")}
	uc, _ := newTrackFixture(t, requestInStatus(t, 3, vo.StatusRegistered), history)

	entries, err := uc.History(context.Background(), PublicHistoryQuery{
		INN:      "301234567",
		PublicID: "2026-000003",
		Language: language.English,
	})

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "registered", entries[0].Action)
	assert.Equal(t, "Registered", entries[0].ActionLabel)
	assert.Equal(t, testNow, entries[0].CreatedAt)
}
