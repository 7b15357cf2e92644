package session

import (
	"testing"
	"time"

	studio_errors "studio-proof/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionWithPhotos(ids ...string) Session {
	s := New("ABC123", "", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	for _, id := range ids {
		s.AddPhoto(Photo{ID: id, URL: "http://x/" + id + ".jpg", Filename: id + ".jpg"})
	}
	return s
}

func TestNewDefaults(t *testing.T) {
	s := New("ABC123", "", time.Now())

	assert.Equal(t, UnknownCustomer, s.CustomerName)
	assert.Equal(t, StatusDraft, s.Status)
	assert.NotNil(t, s.Photos)
	assert.True(t, s.IsEmpty())
}

func TestBackfillCustomerName(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		incoming string
		want     string
		changed  bool
	}{
		{name: "placeholder gets filled", current: UnknownCustomer, incoming: "Ana", want: "Ana", changed: true},
		{name: "existing name kept", current: "Ana", incoming: "Bea", want: "Ana", changed: false},
		{name: "empty incoming ignored", current: UnknownCustomer, incoming: "", want: UnknownCustomer, changed: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{CustomerName: tt.current}
			changed := s.BackfillCustomerName(tt.incoming)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, s.CustomerName)
		})
	}
}

func TestAddPhotoKeepsOrderAndResetsSelection(t *testing.T) {
	s := newSessionWithPhotos("p1", "p2")
	s.AddPhoto(Photo{ID: "p3", Selected: true})

	require.Len(t, s.Photos, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{s.Photos[0].ID, s.Photos[1].ID, s.Photos[2].ID})
	assert.False(t, s.Photos[2].Selected)
	assert.Equal(t, StatusDraft, s.Status)
}

func TestRemovePhoto(t *testing.T) {
	s := newSessionWithPhotos("p1", "p2", "p3")
	clone := s.Clone()

	removed, err := s.RemovePhoto("p2")
	require.NoError(t, err)
	assert.Equal(t, "p2", removed.ID)
	require.Len(t, s.Photos, 2)
	assert.Equal(t, "p3", s.Photos[1].ID)

	// the clone must not observe the removal
	require.Len(t, clone.Photos, 3)
	assert.Equal(t, "p2", clone.Photos[1].ID)

	_, err = s.RemovePhoto("missing")
	assert.ErrorIs(t, err, studio_errors.ErrNotFound)
}

func TestFinish(t *testing.T) {
	t.Run("empty session", func(t *testing.T) {
		s := newSessionWithPhotos()
		err := s.Finish()
		assert.ErrorIs(t, err, studio_errors.ErrInvalidState)
		assert.Equal(t, StatusDraft, s.Status)
	})

	t.Run("draft to ready", func(t *testing.T) {
		s := newSessionWithPhotos("p1")
		require.NoError(t, s.Finish())
		assert.Equal(t, StatusReady, s.Status)
		require.NoError(t, s.Finish())
		assert.Equal(t, StatusReady, s.Status)
	})

	t.Run("submitted cannot go back", func(t *testing.T) {
		s := newSessionWithPhotos("p1")
		s.SubmitSelection([]string{"p1"})
		assert.ErrorIs(t, s.Finish(), studio_errors.ErrInvalidState)
		assert.Equal(t, StatusSubmitted, s.Status)
	})
}

func TestSubmitSelectionOverwrites(t *testing.T) {
	s := newSessionWithPhotos("p1", "p2", "p3")
	require.NoError(t, s.Finish())

	s.SubmitSelection([]string{"p1", "p3", "unknown"})
	assert.Equal(t, StatusSubmitted, s.Status)
	assert.Equal(t, 2, s.SelectedCount())

	s.SubmitSelection([]string{"p2"})
	assert.Equal(t, StatusSubmitted, s.Status)
	assert.False(t, s.Photos[0].Selected)
	assert.True(t, s.Photos[1].Selected)
	assert.False(t, s.Photos[2].Selected)

	s.SubmitSelection([]string{})
	assert.Equal(t, 0, s.SelectedCount())
}

func TestVisibleTo(t *testing.T) {
	s := newSessionWithPhotos("p1")
	assert.True(t, s.VisibleTo(RolePhotographer))
	assert.False(t, s.VisibleTo(RoleClient))

	require.NoError(t, s.Finish())
	assert.True(t, s.VisibleTo(RoleClient))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RolePhotographer, ParseRole("photographer"))
	assert.Equal(t, RolePhotographer, ParseRole(" photographer "))
	assert.Equal(t, RoleClient, ParseRole(""))
	assert.Equal(t, RoleClient, ParseRole("Photographer"))
	assert.Equal(t, RoleClient, ParseRole("admin"))
}

func TestFilenamesIncludeThumbnails(t *testing.T) {
	s := newSessionWithPhotos("p1")
	s.AddPhoto(Photo{ID: "p2", Filename: "p2.png", ThumbnailFilename: "thumb_p2.jpg"})

	assert.Equal(t, []string{"p1.jpg", "p2.png", "thumb_p2.jpg"}, s.Filenames())
}
