package portfolio

import "time"

// CategoryAll is the list filter sentinel meaning "any category".
const CategoryAll = "all"

const DefaultCategory = "uncategorized"

const DefaultTitle = "Untitled"

// Item is a standalone gallery entry, unrelated to sessions.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NormalizeCategory applies the default category to blank input.
func NormalizeCategory(category string) string {
	if category == "" {
		return DefaultCategory
	}
	return category
}
