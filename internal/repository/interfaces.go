package repository

import (
	"context"

	"studio-proof/internal/domain/portfolio"
	"studio-proof/internal/domain/session"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type SessionFilter struct {
	Status string
	Search string
}

type SessionPage struct {
	Sessions []session.Summary
	Total    int
	Page     int
	Limit    int
}

type SessionRepository interface {
	Create(ctx context.Context, id, customerName string) (session.Session, error)
	GetByID(ctx context.Context, id string) (session.Session, error)
	Exists(ctx context.Context, id string) bool
	Update(ctx context.Context, s session.Session) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SessionFilter, page, limit int) (SessionPage, error)
	Flush(ctx context.Context) error
}

type PortfolioRepository interface {
	Add(ctx context.Context, items ...portfolio.Item) error
	GetByID(ctx context.Context, id string) (portfolio.Item, error)
	List(ctx context.Context, category string) ([]portfolio.Item, error)
	Delete(ctx context.Context, id string) error
	Flush(ctx context.Context) error
}

// NormalizePage applies the default page and limit to missing or invalid values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}
