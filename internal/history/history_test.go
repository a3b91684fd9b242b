package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nrao/cricsync/internal/db"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(d, &Entry{}))
	return NewRepo(d)
}

func TestRepo_AddAndList(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.Add("whatsapp", "first"))
	require.NoError(t, r.Add("instagram", "second"))

	entries, err := r.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "second", entries[0].Content)
	assert.Equal(t, "instagram", entries[0].Kind)
	assert.Equal(t, "first", entries[1].Content)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRepo_ListLimit(t *testing.T) {
	r := newTestRepo(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, r.Add("whatsapp", "msg"))
	}
	entries, err := r.List(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestRepo_Clear(t *testing.T) {
	r := newTestRepo(t)
	require.NoError(t, r.Add("whatsapp", "msg"))
	require.NoError(t, r.Clear())

	entries, err := r.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRepo_ListEmpty(t *testing.T) {
	r := newTestRepo(t)
	entries, err := r.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
