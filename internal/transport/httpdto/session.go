package httpdto

import (
	"time"

	"studio-proof/internal/domain/session"
	"studio-proof/internal/repository"
)

// UploadPhotoResponse is returned by POST /api/upload
type UploadPhotoResponse struct {
	PhotoID   string `json:"photoId"`
	PhotoURL  string `json:"photoUrl"`
	SessionID string `json:"sessionId"`
}

// ListSessionsRequest holds query parameters for GET /api/sessions
type ListSessionsRequest struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Page   string `form:"page"`
	Limit  string `form:"limit"`
}

type SessionSummaryDTO struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	Status       string    `json:"status"`
	PhotoCount   int       `json:"photoCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ListSessionsResponse struct {
	Sessions []SessionSummaryDTO `json:"sessions"`
	Total    int                 `json:"total"`
	Page     int                 `json:"page"`
	Limit    int                 `json:"limit"`
}

// PhotoDTO is the client view of a photo. The storage filename is never exposed.
type PhotoDTO struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Selected     bool   `json:"selected"`
}

type ListPhotosResponse struct {
	Photos []PhotoDTO `json:"photos"`
}

// SubmitSelectionRequest is used for POST /api/sessions/:id/selection
type SubmitSelectionRequest struct {
	SelectedPhotoIDs []string `json:"selectedPhotoIds" binding:"required"`
}

type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
}

type DeleteResponse struct {
	Deleted        bool     `json:"deleted"`
	SessionDeleted bool     `json:"sessionDeleted,omitempty"`
	CleanupErrors  []string `json:"cleanupErrors,omitempty"`
}

// GenerateCodeRequest is used for POST /api/qrcode
type GenerateCodeRequest struct {
	SessionID  string `json:"sessionId"`
	TargetPage string `json:"targetPage"`
}

type GenerateCodeResponse struct {
	CodeURL string `json:"codeUrl"`
}

func FromSessionPage(p repository.SessionPage) ListSessionsResponse {
	out := ListSessionsResponse{
		Sessions: make([]SessionSummaryDTO, 0, len(p.Sessions)),
		Total:    p.Total,
		Page:     p.Page,
		Limit:    p.Limit,
	}
	for _, s := range p.Sessions {
		out.Sessions = append(out.Sessions, SessionSummaryDTO{
			ID:           s.ID,
			CustomerName: s.CustomerName,
			Status:       string(s.Status),
			PhotoCount:   s.PhotoCount,
			CreatedAt:    s.CreatedAt,
		})
	}
	return out
}

func FromPhotoSlice(photos []session.Photo) []PhotoDTO {
	out := make([]PhotoDTO, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoDTO{
			ID:           p.ID,
			URL:          p.URL,
			ThumbnailURL: p.ThumbnailURL,
			Selected:     p.Selected,
		})
	}
	return out
}
