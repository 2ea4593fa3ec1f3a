package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/eventpilot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileProjectRepo_SaveWritesReadableJSON(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "projects")
	repo := NewFileProjectRepo(dir, nil)
	p := testutil.NewTestProject("Встреча в «Лофт Сити»", testutil.WithEventID("abc123"))

	require.NoError(t, repo.Save(context.Background(), p))

	data, err := os.ReadFile(filepath.Join(dir, "abc123.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Встреча в «Лофт Сити»"`)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \"event_id\": \"abc123\""))

	leftovers, err := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileProjectRepo_LoadRoundTrip(t *testing.T) {
	repo := NewFileProjectRepo(t.TempDir(), nil)
	ctx := context.Background()
	p := testutil.NewTestProject("Конференция", testutil.WithDeadline("2026-02-01", "1 февраля"))
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.Load(ctx, p.EventID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, got.Title)
	assert.Len(t, got.Deadlines(), 1)
}

func TestFileProjectRepo_LoadMissingAndInvalidIDs(t *testing.T) {
	repo := NewFileProjectRepo(t.TempDir(), nil)
	ctx := context.Background()

	for _, id := range []string{"missing", "", "../etc/passwd", ".hidden"} {
		_, err := repo.Load(ctx, id)
		assert.ErrorIs(t, err, ErrProjectNotFound, id)
	}
}

func TestFileProjectRepo_ListRecentSkipsCorruptFiles(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileProjectRepo(dir, nil)
	ctx := context.Background()
	for i, title := range []string{"старый", "новый"} {
		p := testutil.NewTestProject(title, testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, repo.Save(ctx, p))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{oops"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignore"), 0o644))

	list, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "новый", list[0].Title)
	assert.Equal(t, "старый", list[1].Title)

	_, err = repo.Load(ctx, "broken")
	assert.ErrorIs(t, err, ErrCorruptDocument)
}

func TestFileProjectRepo_ListRecentMissingDirectory(t *testing.T) {
	repo := NewFileProjectRepo(filepath.Join(t.TempDir(), "absent"), nil)

	list, err := repo.ListRecent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}
