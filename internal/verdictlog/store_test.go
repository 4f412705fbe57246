package verdictlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "verdicts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func entry(user, correct string, ok bool) Entry {
	strategy := "none"
	if ok {
		strategy = "exact"
	}
	return Entry{
		RequestID:         "req-" + user,
		User:              user,
		Correct:           correct,
		UserNormalized:    user,
		CorrectNormalized: correct,
		Strategy:          strategy,
		Equivalent:        ok,
	}
}

func TestAppendGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	e := entry("2/4", "1/2", true)
	e.Timestamp = ts
	e.Strategy = "fraction"

	id, err := s.Append(ctx, e)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.True(t, got.Timestamp.Equal(ts))
	assert.Equal(t, "req-2/4", got.RequestID)
	assert.Equal(t, "2/4", got.User)
	assert.Equal(t, "1/2", got.Correct)
	assert.Equal(t, "fraction", got.Strategy)
	assert.True(t, got.Equivalent)
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAppend_DefaultsTimestamp(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	before := time.Now()
	id, err := s.Append(ctx, entry("1", "1", true))
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Timestamp.Before(before.Add(-time.Second)))
}

func TestRecent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	inputs := []Entry{
		entry("a", "1", false),
		entry("1", "1", true),
		entry("b", "2", false),
		entry("2", "2", true),
	}
	for i, e := range inputs {
		e.Timestamp = base.Add(time.Duration(i) * time.Hour)
		_, err := s.Append(ctx, e)
		require.NoError(t, err)
	}

	all, err := s.Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "2", all[0].User, "newest first")

	limited, err := s.Recent(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	rejected, err := s.Recent(ctx, QueryOpts{RejectedOnly: true})
	require.NoError(t, err)
	require.Len(t, rejected, 2)
	assert.Equal(t, "b", rejected[0].User)
	assert.Equal(t, "a", rejected[1].User)

	since, err := s.Recent(ctx, QueryOpts{Since: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	both, err := s.Recent(ctx, QueryOpts{RejectedOnly: true, Since: base.Add(time.Hour), Limit: 5})
	require.NoError(t, err)
	require.Len(t, both, 1)
	assert.Equal(t, "b", both[0].User)
}

func TestPrune(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Append(ctx, entry("x", "y", false))
		require.NoError(t, err)
	}

	removed, err := s.Prune(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	left, err := s.Recent(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, left, 2)

	_, err = s.Prune(ctx, -1)
	assert.Error(t, err)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var sync string
	require.NoError(t, s.DB().QueryRow("PRAGMA synchronous").Scan(&sync))
	assert.Equal(t, "1", sync) // NORMAL = 1
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mathcheck", "verdicts.db"), p)
	assert.DirExists(t, filepath.Dir(p))
}
