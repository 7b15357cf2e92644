package services

import (
	"context"
	"testing"

	"studio-proof/internal/domain/portfolio"
	studio_errors "studio-proof/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemsSharesCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPortfolioService(f.portfolio, f.blobs, nil)

	items, err := svc.AddItems(ctx, "wedding", []FileUpload{*jpegUpload("First Dance.JPG"), *jpegUpload("rings.jpeg")})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.NotEqual(t, items[0].Filename, items[1].Filename)
	assert.Equal(t, "First Dance", items[0].Title)
	assert.Equal(t, "rings", items[1].Title)
	for _, it := range items {
		assert.Equal(t, "wedding", it.Category)
		assert.Equal(t, "", it.Description)
		assert.Equal(t, f.blobs.URL(it.Filename), it.URL)
		assert.True(t, f.blobs.has(it.Filename))
	}

	doc := f.reload(t)
	assert.Len(t, doc.PortfolioItems, 2)
}

func TestAddItemsDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPortfolioService(f.portfolio, f.blobs, nil)

	items, err := svc.AddItems(ctx, "  ", []FileUpload{*jpegUpload(".jpg")})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, portfolio.DefaultCategory, items[0].Category)
	assert.Equal(t, portfolio.DefaultTitle, items[0].Title)

	_, err = svc.AddItems(ctx, "wedding", nil)
	assert.ErrorIs(t, err, studio_errors.ErrInvalidInput)
}

func TestAddItemsRollsBackStoredFiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPortfolioService(f.portfolio, f.blobs, nil)

	_, err := svc.AddItems(ctx, "wedding", []FileUpload{*jpegUpload("a.jpg"), {Name: "empty.jpg"}})
	assert.ErrorIs(t, err, studio_errors.ErrInvalidInput)
	assert.Empty(t, f.blobs.keys())

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteItem(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewPortfolioService(f.portfolio, f.blobs, nil)

	items, err := svc.AddItems(ctx, "portrait", []FileUpload{*jpegUpload("a.jpg"), *jpegUpload("b.jpg")})
	require.NoError(t, err)

	report, err := svc.DeleteItem(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, report.OK())
	assert.False(t, f.blobs.has(items[0].Filename))

	// file already gone: record still removed
	f.blobs.drop(items[1].Filename)
	report, err = svc.DeleteItem(ctx, items[1].ID)
	require.NoError(t, err)
	assert.Len(t, report.Failures, 1)

	list, err := svc.List(ctx, "portrait")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.reload(t).PortfolioItems)

	_, err = svc.DeleteItem(ctx, items[0].ID)
	assert.ErrorIs(t, err, studio_errors.ErrNotFound)
}

func TestDefaultTitle(t *testing.T) {
	assert.Equal(t, "beach", defaultTitle("beach.png"))
	assert.Equal(t, "beach.final", defaultTitle("beach.final.png"))
	assert.Equal(t, "shot", defaultTitle(`C:\Users\me\shot.jpg`))
	assert.Equal(t, portfolio.DefaultTitle, defaultTitle(""))
}
