package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"studio-proof/internal/domain/portfolio"
	"studio-proof/internal/domain/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "db.json")
	store := NewStore(path, nil)
	require.NoError(t, store.Load())
	return store
}

func TestLoadInitializesMissingDocument(t *testing.T) {
	store := newTestStore(t)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessions": {}, "portfolioItems": []}`, string(data))
	assert.Equal(t, Initialized, store.State())

	snap := store.Snapshot()
	assert.Empty(t, snap.Sessions)
	assert.Empty(t, snap.PortfolioItems)
}

func TestLoadCorruptDocumentFallsBackWithoutTouchingDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	store := NewStore(path, nil)
	require.NoError(t, store.Load())

	snap := store.Snapshot()
	assert.NotNil(t, snap.Sessions)
	assert.Empty(t, snap.Sessions)
	assert.Equal(t, RecoveredEmpty, store.State())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestSaveReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	sessions := NewSessionRepository(store)
	items := NewPortfolioRepository(store)

	s, err := sessions.Create(ctx, "ROUND1", "Ana")
	require.NoError(t, err)
	s.AddPhoto(session.Photo{ID: "p1", URL: "http://localhost/uploads/a.jpg", Filename: "a.jpg"})
	s.AddPhoto(session.Photo{ID: "p2", URL: "http://localhost/uploads/b.jpg", Filename: "b.jpg", ThumbnailFilename: "thumb_b.jpg", ThumbnailURL: "http://localhost/uploads/thumb_b.jpg"})
	s.SubmitSelection([]string{"p2"})
	require.NoError(t, sessions.Update(ctx, s))

	_, err = sessions.Create(ctx, "EMPTY1", "")
	require.NoError(t, err)

	require.NoError(t, items.Add(ctx, portfolio.Item{
		ID:        "i1",
		Title:     "Dunes",
		Category:  "landscape",
		URL:       "http://localhost/uploads/c.jpg",
		Filename:  "c.jpg",
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.Save())
	before := store.Snapshot()

	reloaded := NewStore(store.Path(), nil)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, LoadedFromDisk, reloaded.State())
	after := reloaded.Snapshot()

	require.Len(t, after.Sessions, 2)
	for id, want := range before.Sessions {
		got, ok := after.Sessions[id]
		require.True(t, ok, id)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		want.CreatedAt, got.CreatedAt = time.Time{}, time.Time{}
		assert.Equal(t, want, got)
	}
	require.Len(t, after.PortfolioItems, 1)
	assert.True(t, before.PortfolioItems[0].CreatedAt.Equal(after.PortfolioItems[0].CreatedAt))
	assert.Equal(t, before.PortfolioItems[0].Title, after.PortfolioItems[0].Title)
	assert.Equal(t, before.PortfolioItems[0].Filename, after.PortfolioItems[0].Filename)
}

func TestSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	sessions := NewSessionRepository(store)

	s, err := sessions.Create(ctx, "ISO1", "Ana")
	require.NoError(t, err)
	s.AddPhoto(session.Photo{ID: "p1", Filename: "a.jpg"})
	require.NoError(t, sessions.Update(ctx, s))

	snap := store.Snapshot()
	snap.Sessions["ISO1"].Photos[0].Selected = true

	got, err := sessions.GetByID(ctx, "ISO1")
	require.NoError(t, err)
	assert.False(t, got.Photos[0].Selected)
}

func TestAtomicWriteFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "db.json")

	require.NoError(t, AtomicWriteFile(path, []byte(`{"a":1}`), 0644))
	require.NoError(t, AtomicWriteFile(path, []byte(`{"a":2}`), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "db.json", entries[0].Name())
}

func TestHealthCheck(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.HealthCheck())

	missing := NewStore(filepath.Join(t.TempDir(), "gone", "db.json"), nil)
	assert.Error(t, missing.HealthCheck())
}

func TestDocumentOrphans(t *testing.T) {
	doc := NewDocument()
	doc.Sessions["AAAA0001"] = session.Session{
		ID: "AAAA0001",
		Photos: []session.Photo{
			{ID: "p1", Filename: "a.jpg", ThumbnailFilename: "thumb_a.jpg"},
			{ID: "p2", Filename: "b.png"},
		},
	}
	doc.PortfolioItems = append(doc.PortfolioItems, portfolio.Item{ID: "i1", Filename: "c.jpg"})

	orphans := doc.Orphans([]string{"a.jpg", "thumb_a.jpg", "b.png", "c.jpg", "stray.jpg", "thumb_b.jpg"})
	assert.Equal(t, []string{"stray.jpg", "thumb_b.jpg"}, orphans)
	assert.Len(t, doc.ReferencedKeys(), 4)
}
