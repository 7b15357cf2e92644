package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"studio-proof/internal/storage"
	studio_errors "studio-proof/pkg/errors"

	"github.com/gabriel-vasile/mimetype"
)

// FileUpload is one received file, already read into memory.
type FileUpload struct {
	Name string
	Data []byte
}

// CleanupFailure is a backing file that could not be removed.
type CleanupFailure struct {
	Key string
	Err error
}

// CleanupReport describes the best-effort file removal that followed a record
// deletion. Failures never undo the record deletion.
type CleanupReport struct {
	Deleted  []string
	Failures []CleanupFailure
}

func (r CleanupReport) OK() bool {
	return len(r.Failures) == 0
}

func (r *CleanupReport) merge(other CleanupReport) {
	r.Deleted = append(r.Deleted, other.Deleted...)
	r.Failures = append(r.Failures, other.Failures...)
}

// storedBlob is a file written to the blob store.
type storedBlob struct {
	Key         string
	URL         string
	ContentType string
}

func putUpload(ctx context.Context, blobs storage.BlobStore, f FileUpload) (storedBlob, error) {
	if len(f.Data) == 0 {
		return storedBlob{}, fmt.Errorf("file %q is empty: %w", f.Name, studio_errors.ErrInvalidInput)
	}
	key := storage.NewKey(f.Name)
	contentType := mimetype.Detect(f.Data).String()
	if err := blobs.Put(ctx, key, f.Data, contentType); err != nil {
		return storedBlob{}, fmt.Errorf("failed to store %q: %w: %w", f.Name, studio_errors.ErrInternal, err)
	}
	return storedBlob{Key: key, URL: blobs.URL(key), ContentType: contentType}, nil
}

// deleteBlobs removes every key concurrently and waits for all of them. One
// failure does not stop the others.
func deleteBlobs(ctx context.Context, blobs storage.BlobStore, keys []string) CleanupReport {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		report CleanupReport
	)
	for _, key := range keys {
		if key == "" {
			continue
		}
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			err := blobs.Delete(ctx, key)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures = append(report.Failures, CleanupFailure{Key: key, Err: err})
				return
			}
			report.Deleted = append(report.Deleted, key)
		}(key)
	}
	wg.Wait()

	sort.Strings(report.Deleted)
	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].Key < report.Failures[j].Key
	})
	return report
}
