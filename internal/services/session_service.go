package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"studio-proof/internal/domain/session"
	"studio-proof/internal/imaging"
	"studio-proof/internal/repository"
	"studio-proof/internal/storage"
	studio_errors "studio-proof/pkg/errors"
	"studio-proof/pkg/logger"

	"github.com/google/uuid"
)

// SessionService owns the photo lifecycle of sessions. Mutations are serialized
// and every one of them ends with a full document save.
type SessionService struct {
	mu           sync.Mutex
	repo         repository.SessionRepository
	blobs        storage.BlobStore
	logger       *logger.Logger
	thumbSize    uint
	newSessionID func() string
}

type SessionServiceOption func(*SessionService)

// WithThumbnailSize enables thumbnails bounded by size pixels. Zero disables them.
func WithThumbnailSize(size uint) SessionServiceOption {
	return func(s *SessionService) {
		s.thumbSize = size
	}
}

func WithSessionIDGenerator(gen func() string) SessionServiceOption {
	return func(s *SessionService) {
		s.newSessionID = gen
	}
}

func NewSessionService(repo repository.SessionRepository, blobs storage.BlobStore, l *logger.Logger, opts ...SessionServiceOption) *SessionService {
	if l == nil {
		l = logger.NewNop()
	}
	s := &SessionService{
		repo:         repo,
		blobs:        blobs,
		logger:       l,
		newSessionID: newSessionCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type AddPhotoInput struct {
	SessionID    string
	CustomerName string
	File         *FileUpload
}

type AddPhotoResult struct {
	SessionID string
	Photo     session.Photo
	Created   bool
}

// AddPhoto stores the file and appends it to the session, creating the session
// first when no id is given or the id is unknown.
func (s *SessionService) AddPhoto(ctx context.Context, in AddPhotoInput) (AddPhotoResult, error) {
	if in.File == nil {
		return AddPhotoResult{}, fmt.Errorf("no file uploaded: %w", studio_errors.ErrInvalidInput)
	}
	sessionID := strings.TrimSpace(in.SessionID)
	customerName := strings.TrimSpace(in.CustomerName)

	blob, err := putUpload(ctx, s.blobs, *in.File)
	if err != nil {
		return AddPhotoResult{}, err
	}
	photo := session.Photo{
		ID:       uuid.New().String(),
		URL:      blob.URL,
		Filename: blob.Key,
	}
	s.attachThumbnail(ctx, &photo, in.File.Data, blob.ContentType)

	s.mu.Lock()
	defer s.mu.Unlock()

	created := false
	var sess session.Session
	if sessionID != "" && s.repo.Exists(ctx, sessionID) {
		sess, err = s.repo.GetByID(ctx, sessionID)
		if err != nil {
			s.discardPhoto(ctx, photo)
			return AddPhotoResult{}, err
		}
		sess.BackfillCustomerName(customerName)
	} else {
		if sessionID == "" {
			sessionID = s.uniqueSessionID(ctx)
		}
		sess, err = s.repo.Create(ctx, sessionID, customerName)
		if err != nil {
			s.discardPhoto(ctx, photo)
			return AddPhotoResult{}, err
		}
		created = true
	}

	sess.AddPhoto(photo)
	if err := s.repo.Update(ctx, sess); err != nil {
		s.discardPhoto(ctx, photo)
		return AddPhotoResult{}, err
	}
	s.persist(ctx)

	if created {
		s.logger.WithContext(ctx).Infof("created session %s for %s", sess.ID, sess.CustomerName)
	}
	return AddPhotoResult{SessionID: sess.ID, Photo: photo, Created: created}, nil
}

type RemovePhotoResult struct {
	SessionDeleted bool
	Cleanup        CleanupReport
}

// RemovePhoto deletes one photo and its files. Removing the last photo removes
// the whole session.
func (s *SessionService) RemovePhoto(ctx context.Context, sessionID, photoID string) (RemovePhotoResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return RemovePhotoResult{}, err
	}
	photo, err := sess.RemovePhoto(photoID)
	if err != nil {
		return RemovePhotoResult{}, err
	}

	var result RemovePhotoResult
	if sess.IsEmpty() {
		if err := s.repo.Delete(ctx, sess.ID); err != nil {
			return RemovePhotoResult{}, err
		}
		result.SessionDeleted = true
	} else if err := s.repo.Update(ctx, sess); err != nil {
		return RemovePhotoResult{}, err
	}

	result.Cleanup = deleteBlobs(ctx, s.blobs, photo.Filenames())
	s.logCleanup(ctx, result.Cleanup)
	s.persist(ctx)
	return result, nil
}

// DeleteSession removes every backing file, then the record. File failures are
// reported but never block the record deletion.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) (CleanupReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return CleanupReport{}, err
	}

	report := deleteBlobs(ctx, s.blobs, sess.Filenames())
	s.logCleanup(ctx, report)

	if err := s.repo.Delete(ctx, sess.ID); err != nil {
		return report, err
	}
	s.persist(ctx)
	s.logger.WithContext(ctx).Infof("deleted session %s (%d files removed, %d failed)", sess.ID, len(report.Deleted), len(report.Failures))
	return report, nil
}

// FinishSession marks a session ready for client review.
func (s *SessionService) FinishSession(ctx context.Context, sessionID string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, err
	}
	if err := sess.Finish(); err != nil {
		return session.Session{}, err
	}
	if err := s.repo.Update(ctx, sess); err != nil {
		return session.Session{}, err
	}
	s.persist(ctx)
	return sess, nil
}

// ListPhotos returns the photos of a session. Draft sessions are only visible
// to the photographer.
func (s *SessionService) ListPhotos(ctx context.Context, sessionID string, role session.Role) ([]session.Photo, error) {
	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.VisibleTo(role) {
		return nil, fmt.Errorf("session %s is not ready for review: %w", sessionID, studio_errors.ErrForbidden)
	}
	return sess.Photos, nil
}

// SubmitSelection replaces the selection with exactly the given ids and marks
// the session submitted. A nil slice means the caller sent no list at all.
func (s *SessionService) SubmitSelection(ctx context.Context, sessionID string, photoIDs []string) (session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return session.Session{}, err
	}
	if photoIDs == nil {
		return session.Session{}, fmt.Errorf("selected photo ids must be a list: %w", studio_errors.ErrInvalidInput)
	}
	sess.SubmitSelection(photoIDs)
	if err := s.repo.Update(ctx, sess); err != nil {
		return session.Session{}, err
	}
	s.persist(ctx)
	s.logger.WithContext(ctx).Infof("session %s submitted with %d of %d photos selected", sess.ID, sess.SelectedCount(), len(sess.Photos))
	return sess, nil
}

func (s *SessionService) ListSessions(ctx context.Context, filter repository.SessionFilter, page, limit int) (repository.SessionPage, error) {
	return s.repo.List(ctx, filter, page, limit)
}

func (s *SessionService) GetSession(ctx context.Context, sessionID string) (session.Session, error) {
	return s.repo.GetByID(ctx, sessionID)
}

func (s *SessionService) attachThumbnail(ctx context.Context, photo *session.Photo, data []byte, contentType string) {
	if s.thumbSize == 0 || !strings.HasPrefix(contentType, "image/") {
		return
	}
	thumb, err := imaging.Thumbnail(data, s.thumbSize)
	if err != nil {
		if errors.Is(err, imaging.ErrNotImage) {
			s.logger.WithContext(ctx).Debugf("no thumbnail for %s: %s", photo.Filename, err)
		} else {
			s.logger.WithContext(ctx).Warnf("thumbnail for %s failed: %s", photo.Filename, err)
		}
		return
	}
	key := storage.ThumbnailKey(photo.Filename)
	if err := s.blobs.Put(ctx, key, thumb, "image/jpeg"); err != nil {
		s.logger.WithContext(ctx).Warnf("failed to store thumbnail %s: %s", key, err)
		return
	}
	photo.ThumbnailFilename = key
	photo.ThumbnailURL = s.blobs.URL(key)
}

func (s *SessionService) uniqueSessionID(ctx context.Context) string {
	for {
		id := s.newSessionID()
		if id != "" && !s.repo.Exists(ctx, id) {
			return id
		}
	}
}

// persist flushes the document. A failed save is logged and the in-memory
// mutation stands.
func (s *SessionService) persist(ctx context.Context) {
	if err := s.repo.Flush(ctx); err != nil {
		s.logger.WithContext(ctx).Errorf("failed to save data file: %s", err)
	}
}

// discardPhoto removes the files of a photo that never made it into a session.
func (s *SessionService) discardPhoto(ctx context.Context, photo session.Photo) {
	s.logCleanup(ctx, deleteBlobs(ctx, s.blobs, photo.Filenames()))
}

func (s *SessionService) logCleanup(ctx context.Context, report CleanupReport) {
	for _, f := range report.Failures {
		s.logger.WithContext(ctx).Warnf("failed to delete file %s: %s", f.Key, f.Err)
	}
}

// newSessionCode returns an 8 character code that is easy to read out to a client.
func newSessionCode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}
