package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"studio-proof/internal/repository"

	"github.com/stretchr/testify/require"
)

// memBlobs is an in-memory BlobStore with failure injection.
type memBlobs struct {
	mu      sync.Mutex
	files   map[string][]byte
	failPut map[string]bool
	putErr  error
	puts    int
}

func newMemBlobs() *memBlobs {
	return &memBlobs{files: map[string][]byte{}, failPut: map[string]bool{}}
}

func (m *memBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.files[key] = append([]byte(nil), data...)
	return nil
}

func (m *memBlobs) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key]; !ok {
		return fmt.Errorf("failed to delete %s: %w", key, fs.ErrNotExist)
	}
	delete(m.files, key)
	return nil
}

func (m *memBlobs) URL(key string) string {
	return "http://test.local/uploads/" + key
}

func (m *memBlobs) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[key]
	return ok
}

func (m *memBlobs) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (m *memBlobs) drop(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
}

type fixture struct {
	store     *repository.Store
	sessions  repository.SessionRepository
	portfolio repository.PortfolioRepository
	blobs     *memBlobs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(filepath.Join(t.TempDir(), "db.json"), nil)
	require.NoError(t, store.Load())
	return &fixture{
		store:     store,
		sessions:  repository.NewSessionRepository(store),
		portfolio: repository.NewPortfolioRepository(store),
		blobs:     newMemBlobs(),
	}
}

// reload reads the data file back into a fresh store.
func (f *fixture) reload(t *testing.T) repository.Document {
	t.Helper()
	fresh := repository.NewStore(f.store.Path(), nil)
	require.NoError(t, fresh.Load())
	return fresh.Snapshot()
}

func jpegUpload(name string) *FileUpload {
	// not a decodable image, but sniffs as JPEG
	return &FileUpload{Name: name, Data: append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, []byte("fake jpeg body")...)}
}

func pngUpload(t *testing.T, name string) *FileUpload {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 32))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &FileUpload{Name: name, Data: buf.Bytes()}
}

var errBoom = errors.New("boom")
