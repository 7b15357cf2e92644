package session

import (
	"fmt"
	"time"

	studio_errors "studio-proof/pkg/errors"
)

// Status is the review stage of a session.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusReady     Status = "ready"
	StatusSubmitted Status = "submitted"
)

// StatusAll is the list filter sentinel meaning "any status".
const StatusAll = "all"

// UnknownCustomer is stored when a session is created without a customer name.
const UnknownCustomer = "unknown"

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusSubmitted:
		return true
	}
	return false
}

// Session is one photo shoot shared with a client under its ID.
type Session struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Photos       []Photo   `json:"photos"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Photo belongs to exactly one session. Filename is the storage key and is never
// returned to clients.
type Photo struct {
	ID                string `json:"id"`
	URL               string `json:"url"`
	Filename          string `json:"filename"`
	ThumbnailURL      string `json:"thumbnailUrl,omitempty"`
	ThumbnailFilename string `json:"thumbnailFilename,omitempty"`
	Selected          bool   `json:"selected"`
}

// Summary is the list view of a session.
type Summary struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Status       Status    `json:"status"`
	PhotoCount   int       `json:"photoCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// New returns an empty draft session.
func New(id, customerName string, createdAt time.Time) Session {
	if customerName == "" {
		customerName = UnknownCustomer
	}
	return Session{
		ID:           id,
		CustomerName: customerName,
		Photos:       []Photo{},
		Status:       StatusDraft,
		CreatedAt:    createdAt,
	}
}

func (s Session) Summary() Summary {
	return Summary{
		ID:           s.ID,
		CustomerName: s.CustomerName,
		Status:       s.Status,
		PhotoCount:   len(s.Photos),
		CreatedAt:    s.CreatedAt,
	}
}

// Clone returns a copy that shares no photo storage with s.
func (s Session) Clone() Session {
	out := s
	out.Photos = make([]Photo, len(s.Photos))
	copy(out.Photos, s.Photos)
	return out
}

// BackfillCustomerName sets the name only while the record still holds the
// unknown placeholder.
func (s *Session) BackfillCustomerName(name string) bool {
	if name == "" || s.CustomerName != UnknownCustomer {
		return false
	}
	s.CustomerName = name
	return true
}

// AddPhoto appends p unselected; status is unchanged.
func (s *Session) AddPhoto(p Photo) {
	p.Selected = false
	s.Photos = append(s.Photos, p)
}

// RemovePhoto drops the photo with the given id and returns it.
func (s *Session) RemovePhoto(photoID string) (Photo, error) {
	for i, p := range s.Photos {
		if p.ID == photoID {
			s.Photos = append(s.Photos[:i:i], s.Photos[i+1:]...)
			return p, nil
		}
	}
	return Photo{}, fmt.Errorf("photo %s: %w", photoID, studio_errors.ErrNotFound)
}

func (s Session) IsEmpty() bool {
	return len(s.Photos) == 0
}

// Finish moves a draft (or already ready) session to ready.
func (s *Session) Finish() error {
	if s.IsEmpty() {
		return fmt.Errorf("session %s has no photos: %w", s.ID, studio_errors.ErrInvalidState)
	}
	if s.Status == StatusSubmitted {
		return fmt.Errorf("session %s already submitted: %w", s.ID, studio_errors.ErrInvalidState)
	}
	s.Status = StatusReady
	return nil
}

// SubmitSelection overwrites every photo's selected flag with membership in ids
// and marks the session submitted. Unknown ids are ignored.
func (s *Session) SubmitSelection(ids []string) {
	chosen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		chosen[id] = struct{}{}
	}
	for i := range s.Photos {
		_, ok := chosen[s.Photos[i].ID]
		s.Photos[i].Selected = ok
	}
	s.Status = StatusSubmitted
}

// VisibleTo reports whether the role may list this session's photos.
func (s Session) VisibleTo(role Role) bool {
	return s.Status != StatusDraft || role == RolePhotographer
}

// SelectedCount is the number of photos currently selected.
func (s Session) SelectedCount() int {
	n := 0
	for _, p := range s.Photos {
		if p.Selected {
			n++
		}
	}
	return n
}

// Filenames lists every backing file of the session's photos, thumbnails included.
func (s Session) Filenames() []string {
	out := make([]string, 0, len(s.Photos))
	for _, p := range s.Photos {
		out = append(out, p.Filenames()...)
	}
	return out
}

func (p Photo) Filenames() []string {
	if p.ThumbnailFilename == "" {
		return []string{p.Filename}
	}
	return []string{p.Filename, p.ThumbnailFilename}
}
