package repository

import (
	"context"
	"fmt"
	"sort"

	"studio-proof/internal/domain/portfolio"
	studio_errors "studio-proof/pkg/errors"
)

type portfolioRepository struct {
	store *Store
}

func NewPortfolioRepository(store *Store) PortfolioRepository {
	return &portfolioRepository{store: store}
}

func (r *portfolioRepository) Add(ctx context.Context, items ...portfolio.Item) error {
	return r.store.write(func(doc *Document) error {
		doc.PortfolioItems = append(doc.PortfolioItems, items...)
		return nil
	})
}

func (r *portfolioRepository) GetByID(ctx context.Context, id string) (portfolio.Item, error) {
	var (
		item  portfolio.Item
		found bool
	)
	r.store.read(func(doc *Document) {
		for _, it := range doc.PortfolioItems {
			if it.ID == id {
				item, found = it, true
				return
			}
		}
	})
	if !found {
		return portfolio.Item{}, fmt.Errorf("portfolio item %s: %w", id, studio_errors.ErrNotFound)
	}
	return item, nil
}

// List returns every item, or only those in category, newest first.
func (r *portfolioRepository) List(ctx context.Context, category string) ([]portfolio.Item, error) {
	items := []portfolio.Item{}
	r.store.read(func(doc *Document) {
		for _, it := range doc.PortfolioItems {
			if category != "" && category != portfolio.CategoryAll && it.Category != category {
				continue
			}
			items = append(items, it)
		}
	})
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (r *portfolioRepository) Delete(ctx context.Context, id string) error {
	return r.store.write(func(doc *Document) error {
		for i, it := range doc.PortfolioItems {
			if it.ID == id {
				doc.PortfolioItems = append(doc.PortfolioItems[:i:i], doc.PortfolioItems[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("portfolio item %s: %w", id, studio_errors.ErrNotFound)
	})
}

func (r *portfolioRepository) Flush(ctx context.Context) error {
	return r.store.Save()
}
