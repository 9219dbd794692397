package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adli-inc/adli/internal/domain/request"
	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
	"github.com/adli-inc/adli/internal/shared/logger"
)

func TestRequestHistoryRepository_AppendAndList(t *testing.T) {
	gdb := setupTestDB(t)
	requests := NewRequestRepository(gdb, logger.NewLogger())
	history := NewRequestHistoryRepository(gdb)
	ctx := context.Background()

	r := storeRequest(t, requests, seedCompany(t, gdb, "123456789", "Acme"), "desc", baseTime)

	entries := []*request.HistoryEntry{r.CreatedEntry(baseTime)}
	entries = append(entries, r.Register(uintPtr(1), baseTime).History...)
	out, err := r.Resolve(2, request.ResolutionInput{Text: "route", TargetDepartmentID: uintPtr(9)}, baseTime)
	require.NoError(t, err)
	entries = append(entries, out.History...)
	out, err = r.AddStep(3, "called", baseTime)
	require.NoError(t, err)
	entries = append(entries, out.History...)

	require.NoError(t, history.Append(ctx, entries...))
	for _, e := range entries {
		assert.NotZero(t, e.ID())
	}

	audit, err := history.ListAudit(ctx, r.ID())
	require.NoError(t, err)
	got := make([]vo.HistoryAction, len(audit))
	for i, e := range audit {
		got[i] = e.Action()
	}
	assert.Equal(t, []vo.HistoryAction{
		vo.ActionCreated, vo.ActionRegistered, vo.ActionResolved, vo.ActionAssigned,
		vo.ActionStepAdded, vo.ActionStatusChanged,
	}, got)
	assert.Nil(t, audit[0].ActorID())
	assert.Equal(t, float64(9), audit[3].Metadata()["department_id"])

	display, err := history.ListByRequest(ctx, r.ID(), nil)
	require.NoError(t, err)
	require.Len(t, display, 6)
	assert.Equal(t, vo.ActionStatusChanged, display[0].Action(), "same timestamp falls back to id order")

	public, err := history.ListByRequest(ctx, r.ID(), vo.PublicActions())
	require.NoError(t, err)
	for _, e := range public {
		assert.True(t, e.Action().IsPublic())
	}
	assert.Len(t, public, 5)
}

func TestRequestHistoryRepository_AppendRequiresRequest(t *testing.T) {
	gdb := setupTestDB(t)
	history := NewRequestHistoryRepository(gdb)

	r, err := request.NewRequest(1, nil, "unsaved", nil, baseTime)
	require.NoError(t, err)
	assert.Error(t, history.Append(context.Background(), r.CreatedEntry(baseTime)))
	assert.NoError(t, history.Append(context.Background()))
}

func TestRequestRecordRepository(t *testing.T) {
	gdb := setupTestDB(t)
	requests := NewRequestRepository(gdb, logger.NewLogger())
	records := NewRequestRecordRepository(gdb)
	ctx := context.Background()

	r := storeRequest(t, requests, seedCompany(t, gdb, "123456789", "Acme"), "desc", baseTime)
	r.Register(nil, baseTime)
	r.SendForResolution(nil, nil, baseTime)

	out, err := r.Resolve(2, request.ResolutionInput{Text: "route", TargetDepartmentID: uintPtr(9)}, baseTime)
	require.NoError(t, err)
	require.NoError(t, records.Resolutions().Create(ctx, out.Resolution))
	assert.NotZero(t, out.Resolution.ID())

	out, err = r.AddStep(3, "called", baseTime)
	require.NoError(t, err)
	require.NoError(t, records.Steps().Create(ctx, out.Step))

	f, err := request.NewFile(r.ID(), "uploads/a.pdf", "a.pdf", 1024, vo.DefaultAttachmentPolicy(), baseTime)
	require.NoError(t, err)
	require.NoError(t, records.Files().Create(ctx, f))

	resolutions, err := records.Resolutions().ListByRequest(ctx, r.ID())
	require.NoError(t, err)
	require.Len(t, resolutions, 1)
	assert.Equal(t, uint(9), *resolutions[0].TargetDepartmentID())

	steps, err := records.Steps().ListByRequest(ctx, r.ID())
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "called", steps[0].Text())

	files, err := records.Files().ListByRequest(ctx, r.ID())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, vo.FileKindAttachment, files[0].Kind())
	assert.Equal(t, int64(1024), files[0].Size())
}
