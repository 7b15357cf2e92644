package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"studio-proof/internal/domain/session"
	studio_errors "studio-proof/pkg/errors"
)

type sessionRepository struct {
	store *Store
	now   func() time.Time
}

type SessionRepositoryOption func(*sessionRepository)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) SessionRepositoryOption {
	return func(r *sessionRepository) {
		r.now = now
	}
}

func NewSessionRepository(store *Store, opts ...SessionRepositoryOption) SessionRepository {
	r := &sessionRepository{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts a fresh draft session, replacing any record already stored under id.
func (r *sessionRepository) Create(ctx context.Context, id, customerName string) (session.Session, error) {
	if id == "" {
		return session.Session{}, fmt.Errorf("session id is required: %w", studio_errors.ErrInvalidInput)
	}
	s := session.New(id, customerName, r.now())
	_ = r.store.write(func(doc *Document) error {
		doc.Sessions[id] = s.Clone()
		return nil
	})
	return s, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (session.Session, error) {
	var (
		s  session.Session
		ok bool
	)
	r.store.read(func(doc *Document) {
		s, ok = doc.Sessions[id]
		if ok {
			s = s.Clone()
		}
	})
	if !ok {
		return session.Session{}, fmt.Errorf("session %s: %w", id, studio_errors.ErrNotFound)
	}
	return s, nil
}

func (r *sessionRepository) Exists(ctx context.Context, id string) bool {
	var ok bool
	r.store.read(func(doc *Document) {
		_, ok = doc.Sessions[id]
	})
	return ok
}

func (r *sessionRepository) Update(ctx context.Context, s session.Session) error {
	return r.store.write(func(doc *Document) error {
		if _, ok := doc.Sessions[s.ID]; !ok {
			return fmt.Errorf("session %s: %w", s.ID, studio_errors.ErrNotFound)
		}
		doc.Sessions[s.ID] = s.Clone()
		return nil
	})
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(func(doc *Document) error {
		if _, ok := doc.Sessions[id]; !ok {
			return fmt.Errorf("session %s: %w", id, studio_errors.ErrNotFound)
		}
		delete(doc.Sessions, id)
		return nil
	})
}

// List filters, sorts newest first and paginates. A page past the end is empty.
func (r *sessionRepository) List(ctx context.Context, filter SessionFilter, page, limit int) (SessionPage, error) {
	page, limit = NormalizePage(page, limit)
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	status := strings.TrimSpace(filter.Status)

	var matched []session.Summary
	r.store.read(func(doc *Document) {
		for _, s := range doc.Sessions {
			if status != "" && status != session.StatusAll && string(s.Status) != status {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(s.ID), search) &&
				!strings.Contains(strings.ToLower(s.CustomerName), search) {
				continue
			}
			matched = append(matched, s.Summary())
		}
	})

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	result := SessionPage{
		Sessions: []session.Summary{},
		Total:    len(matched),
		Page:     page,
		Limit:    limit,
	}
	// compare page numbers before multiplying so huge inputs cannot overflow
	if len(matched) == 0 || page-1 > (len(matched)-1)/limit {
		return result, nil
	}
	start := (page - 1) * limit
	end := len(matched)
	if limit < end-start {
		end = start + limit
	}
	result.Sessions = append(result.Sessions, matched[start:end]...)
	return result, nil
}

func (r *sessionRepository) Flush(ctx context.Context) error {
	return r.store.Save()
}
