package httpdto

import (
	"time"

	"studio-proof/internal/domain/portfolio"
)

type PortfolioItemDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UploadPortfolioResponse struct {
	UploadedItems []PortfolioItemDTO `json:"uploadedItems"`
}

type ListPortfolioResponse struct {
	PortfolioItems []PortfolioItemDTO `json:"portfolioItems"`
}

func FromPortfolioItems(items []portfolio.Item) []PortfolioItemDTO {
	out := make([]PortfolioItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, PortfolioItemDTO{
			ID:          it.ID,
			Title:       it.Title,
			Description: it.Description,
			Category:    it.Category,
			URL:         it.URL,
			CreatedAt:   it.CreatedAt,
		})
	}
	return out
}
