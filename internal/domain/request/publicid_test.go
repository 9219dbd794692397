package request

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPublicID(t *testing.T) {
	assert.Equal(t, "2026-000007", FormatPublicID(2026, 7))
	assert.Equal(t, "2026-1234567", FormatPublicID(2026, 1234567))
}

func TestParsePublicID(t *testing.T) {
	year, seq, err := ParsePublicID(" 2026-000007 ")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, int64(7), seq)

	for _, bad := range []string{"", "2026-7", "26-000001", "2026_000001", "2026-000000", "abcd-000001"} {
		_, _, err := ParsePublicID(bad)
		assert.Error(t, err, bad)
	}
}

type counterAllocator struct {
	last  int64
	calls int
	err   error
}

func (a *counterAllocator) Allocate(ctx context.Context, year int) (int64, error) {
	a.calls++
	if a.err != nil {
		return 0, a.err
	}
	a.last++
	return a.last, nil
}

func TestEnsurePublicID_Idempotent(t *testing.T) {
	r := newTestRequest(t)
	alloc := &counterAllocator{last: 6}

	allocated, err := EnsurePublicID(context.Background(), r, alloc, 2026)
	require.NoError(t, err)
	assert.True(t, allocated)
	assert.Equal(t, "2026-000007", r.PublicID())

	allocated, err = EnsurePublicID(context.Background(), r, alloc, 2027)
	require.NoError(t, err)
	assert.False(t, allocated)
	assert.Equal(t, "2026-000007", r.PublicID())
	assert.Equal(t, 1, alloc.calls)
}

func TestEnsurePublicID_AllocatorError(t *testing.T) {
	r := newTestRequest(t)
	_, err := EnsurePublicID(context.Background(), r, &counterAllocator{err: errors.New("locked")}, 2026)
	assert.Error(t, err)
	assert.False(t, r.HasPublicID())
}

func TestAssignPublicID_OnlyOnce(t *testing.T) {
	r := newTestRequest(t)
	require.NoError(t, r.AssignPublicID(2026, 1))
	assert.Error(t, r.AssignPublicID(2026, 2))
	assert.Equal(t, "2026-000001", r.PublicID())
	assert.Equal(t, 2026, r.PublicYear())
	assert.Equal(t, int64(1), r.PublicSeq())
}
