package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"studio-proof/internal/repository"
	studio_errors "studio-proof/pkg/errors"

	qrcode "github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

// CodeService renders the QR code a client scans to open a session.
type CodeService struct {
	repo   repository.SessionRepository
	encode func(content string) ([]byte, error)
}

func NewCodeService(repo repository.SessionRepository) *CodeService {
	return &CodeService{
		repo: repo,
		encode: func(content string) ([]byte, error) {
			return qrcode.Encode(content, qrcode.Medium, qrCodeSize)
		},
	}
}

// Generate returns a PNG data URL encoding targetPage with the session code attached.
func (s *CodeService) Generate(ctx context.Context, sessionID, targetPage string) (string, error) {
	sessionID = strings.TrimSpace(sessionID)
	targetPage = strings.TrimSpace(targetPage)
	if sessionID == "" || targetPage == "" {
		return "", fmt.Errorf("sessionId and targetPage are required: %w", studio_errors.ErrInvalidInput)
	}

	sess, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if sess.IsEmpty() {
		return "", fmt.Errorf("session %s has no photos: %w", sessionID, studio_errors.ErrInvalidState)
	}

	link, err := ReviewLink(targetPage, sessionID)
	if err != nil {
		return "", err
	}
	png, err := s.encode(link)
	if err != nil {
		return "", fmt.Errorf("failed to generate qr code: %w: %w", studio_errors.ErrInternal, err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// ReviewLink adds the session code to targetPage as the "code" query parameter.
func ReviewLink(targetPage, sessionID string) (string, error) {
	u, err := url.Parse(targetPage)
	if err != nil {
		return "", fmt.Errorf("invalid targetPage: %w", studio_errors.ErrInvalidInput)
	}
	q := u.Query()
	q.Set("code", sessionID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
