package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/revtab/pkg/parser"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	assert.Error(t, err)
}

func TestSaveAndRecords(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()

	records := []parser.Record{
		{Author: "j***1", Date: "2026-03-05", Body: "很好"},
		{Author: "小明", Date: "2025-12-01", Body: parser.NoContent},
	}

	n, err := s.Save(ctx, Run{ID: "run-1", Layout: parser.LayoutJD, Records: records})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	got, err := s.Records(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestSave_Empty(t *testing.T) {
	s, _ := openTestStore(t)

	n, err := s.Save(context.Background(), Run{ID: "run-1", Layout: parser.LayoutTmall})
	require.NoError(t, err)
	assert.Zero(t, n)

	runs, err := s.Runs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSave_RequiresRunID(t *testing.T) {
	s, _ := openTestStore(t)

	_, err := s.Save(context.Background(), Run{Records: []parser.Record{{Author: "a", Date: "2026-01-01", Body: "b"}}})
	assert.Error(t, err)
}

func TestSave_DuplicateRunRollsBack(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	rec := parser.Record{Author: "a", Date: "2026-01-01", Body: "b"}

	_, err := s.Save(ctx, Run{ID: "run-1", Layout: parser.LayoutJD, Records: []parser.Record{rec}})
	require.NoError(t, err)

	_, err = s.Save(ctx, Run{ID: "run-1", Layout: parser.LayoutJD, Records: []parser.Record{rec, rec}})
	assert.Error(t, err)

	got, err := s.Records(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRuns_PersistAcrossOpen(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	rec := parser.Record{Author: "a", Date: "2026-01-01", Body: "b"}

	for _, id := range []string{"run-1", "run-2"} {
		_, err := s.Save(ctx, Run{ID: id, Layout: parser.LayoutTmall, Records: []parser.Record{rec}})
		require.NoError(t, err)
	}
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	runs, err := reopened.Runs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-1", "run-2"}, runs)
}
