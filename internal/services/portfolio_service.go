package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"studio-proof/internal/domain/portfolio"
	"studio-proof/internal/repository"
	"studio-proof/internal/storage"
	studio_errors "studio-proof/pkg/errors"
	"studio-proof/pkg/logger"

	"github.com/google/uuid"
)

type PortfolioService struct {
	mu     sync.Mutex
	repo   repository.PortfolioRepository
	blobs  storage.BlobStore
	logger *logger.Logger
	now    func() time.Time
}

func NewPortfolioService(repo repository.PortfolioRepository, blobs storage.BlobStore, l *logger.Logger) *PortfolioService {
	if l == nil {
		l = logger.NewNop()
	}
	return &PortfolioService{
		repo:   repo,
		blobs:  blobs,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AddItems stores every file as its own item under one category and saves once.
// If any file cannot be stored, the ones already written are removed and nothing
// is recorded.
func (s *PortfolioService) AddItems(ctx context.Context, category string, files []FileUpload) ([]portfolio.Item, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files uploaded: %w", studio_errors.ErrInvalidInput)
	}
	category = portfolio.NormalizeCategory(strings.TrimSpace(category))

	items := make([]portfolio.Item, 0, len(files))
	var written []string
	for _, f := range files {
		blob, err := putUpload(ctx, s.blobs, f)
		if err != nil {
			s.logCleanup(ctx, deleteBlobs(ctx, s.blobs, written))
			return nil, err
		}
		written = append(written, blob.Key)
		items = append(items, portfolio.Item{
			ID:          uuid.New().String(),
			Title:       defaultTitle(f.Name),
			Description: "",
			Category:    category,
			URL:         blob.URL,
			Filename:    blob.Key,
			CreatedAt:   s.now(),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Add(ctx, items...); err != nil {
		return nil, err
	}
	s.persist(ctx)
	s.logger.WithContext(ctx).Infof("added %d portfolio items to %s", len(items), category)
	return items, nil
}

func (s *PortfolioService) List(ctx context.Context, category string) ([]portfolio.Item, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

// DeleteItem removes the item record and, best effort, its file.
func (s *PortfolioService) DeleteItem(ctx context.Context, id string) (CleanupReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CleanupReport{}, err
	}
	report := deleteBlobs(ctx, s.blobs, []string{item.Filename})
	s.logCleanup(ctx, report)

	if err := s.repo.Delete(ctx, id); err != nil {
		return report, err
	}
	s.persist(ctx)
	return report, nil
}

func (s *PortfolioService) persist(ctx context.Context) {
	if err := s.repo.Flush(ctx); err != nil {
		s.logger.WithContext(ctx).Errorf("failed to save data file: %s", err)
	}
}

func (s *PortfolioService) logCleanup(ctx context.Context, report CleanupReport) {
	for _, f := range report.Failures {
		s.logger.WithContext(ctx).Warnf("failed to delete file %s: %s", f.Key, f.Err)
	}
}

// defaultTitle is the upload's file name without directory or extension.
func defaultTitle(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	title := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if title == "" || title == "." || title == "/" {
		return portfolio.DefaultTitle
	}
	return title
}
