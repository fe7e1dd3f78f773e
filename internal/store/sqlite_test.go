package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Migrate(context.Background()))
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := &Run{
		Status:      StatusValid,
		Days:        5,
		Coverage:    87.5,
		Scheduled:   7,
		Unscheduled: 1,
		Report:      "[  OK]: Room collision check.\n",
		Data:        "section_code,subject_id\nE1,ETHC101\n",
	}
	require.NoError(t, s.Create(ctx, run))
	require.NotEmpty(t, run.ID)
	require.False(t, run.CreatedAt.IsZero())

	got, err := s.Get(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, StatusValid, got.Status)
	assert.Equal(t, 87.5, got.Coverage)
	assert.Equal(t, 1, got.Unscheduled)
	assert.Equal(t, run.Data, got.Data)
	assert.Equal(t, run.Report, got.Report)
	assert.True(t, run.CreatedAt.Equal(got.CreatedAt))
}

func TestGetUnknown(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.Create(ctx, &Run{ID: "old", Status: StatusValid, Days: 5, Data: "x", CreatedAt: base}))
	require.NoError(t, s.Create(ctx, &Run{ID: "new", Status: StatusInvalid, Days: 3, Data: "y", CreatedAt: base.Add(time.Hour)}))

	runs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "old", runs[1].ID)
	assert.Empty(t, runs[0].Data)
	assert.Equal(t, 3, runs[0].Days)
}

func TestCreateDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &Run{ID: "a", Status: StatusValid, Days: 5}))
	assert.Error(t, s.Create(ctx, &Run{ID: "a", Status: StatusValid, Days: 5}))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Create(ctx, &Run{ID: "a", Status: StatusValid, Days: 5}))

	require.NoError(t, s.Delete(ctx, "a"))
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a"), ErrNotFound)
}
