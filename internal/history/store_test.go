package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/fullstack-gen/fsgen/internal/errors"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun(started time.Time) Run {
	return Run{
		Kind:       KindEndpoint,
		Project:    "/work/demo",
		Subject:    "pet",
		Digest:     "abc123",
		Status:     StatusSucceeded,
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
		Entries: []Entry{
			{Path: "server/api/pet/index.js", Kind: "create", Status: "created"},
			{Path: "server/routes.js", Kind: "merge", Status: "merged"},
		},
	}
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.Record(ctx, sampleRun(started))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	run, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, KindEndpoint, run.Kind)
	assert.Equal(t, "pet", run.Subject)
	assert.True(t, started.Equal(run.StartedAt))
	require.Len(t, run.Entries, 2)
	assert.Equal(t, 1, run.Entries[0].Seq)
	assert.Equal(t, "server/routes.js", run.Entries[1].Path)
	assert.Equal(t, "merged", run.Entries[1].Status)

	byPrefix, err := s.Get(ctx, id[:8])
	require.NoError(t, err)
	assert.Equal(t, id, byPrefix.ID)
}

func TestRecord_KeepsExplicitID(t *testing.T) {
	s := openMemory(t)
	run := sampleRun(time.Now())
	run.ID = "run-1"

	id, err := s.Record(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, "run-1", id)

	_, err = s.Record(context.Background(), run)
	assert.Error(t, err, "ids are unique")
}

func TestList_NewestFirst(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, subject := range []string{"first", "second", "third"} {
		run := sampleRun(base.Add(time.Duration(i) * time.Minute))
		run.Subject = subject
		run.Entries = nil
		_, err := s.Record(ctx, run)
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "third", runs[0].Subject)
	assert.Equal(t, "first", runs[2].Subject)
	assert.Nil(t, runs[0].Entries)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestList_Empty(t *testing.T) {
	runs, err := openMemory(t).List(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestGet_Errors(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))

	for _, id := range []string{"ab-1", "ab-2"} {
		run := sampleRun(time.Now())
		run.ID = id
		_, err := s.Record(ctx, run)
		require.NoError(t, err)
	}
	_, err = s.Get(ctx, "ab")
	assert.True(t, errors.Is(err, oerrors.ErrValidation))

	run, err := s.Get(ctx, "ab-2")
	require.NoError(t, err)
	assert.Equal(t, "ab-2", run.ID)
}

func TestOpen_FileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Record(ctx, sampleRun(time.Now()))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	run, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Len(t, run.Entries, 2)
}
