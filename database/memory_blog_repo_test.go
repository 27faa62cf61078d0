package database

import (
	"context"
	"testing"
	"time"

	"github.com/IliyaMhz/PersonalBlog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlogRepo_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlogRepo()

	blog := &models.Blog{Title: "First post", Content: "Body", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Add(ctx, blog))
	assert.Equal(t, int64(1), blog.ID)

	found, err := repo.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "First post", found.Title)

	found.Title = "Mutated outside the store"
	again, err := repo.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "First post", again.Title)

	now := time.Now().UTC()
	again.Title = "Edited post"
	again.UpdatedAt = &now
	require.NoError(t, repo.Update(ctx, again))

	edited, err := repo.FindByID(ctx, blog.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited post", edited.Title)
	require.NotNil(t, edited.UpdatedAt)

	removed, err := repo.Delete(ctx, blog.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	gone, err := repo.FindByID(ctx, blog.ID)
	assert.NoError(t, err)
	assert.Nil(t, gone)

	removed, err = repo.Delete(ctx, blog.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestMemoryBlogRepo_UpdateMissing(t *testing.T) {
	repo := NewMemoryBlogRepo()

	err := repo.Update(context.Background(), &models.Blog{ID: 99})

	assert.Error(t, err)
}

func TestMemoryBlogRepo_FindAll(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBlogRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []*models.Blog{
		{Title: "Oldest", Content: "about go", CreatedAt: base, IsPublished: true},
		{Title: "Newest", Content: "about rust", CreatedAt: base.Add(2 * time.Hour)},
		{Title: "Tie A", Content: "about go", CreatedAt: base.Add(time.Hour), IsPublished: true},
		{Title: "Tie B", Content: "about zig", CreatedAt: base.Add(time.Hour)},
	}
	for _, b := range seed {
		require.NoError(t, repo.Add(ctx, b))
	}

	all, err := repo.FindAll(ctx, models.BlogFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Tie B", "Tie A", "Oldest"}, titles(all))

	published, err := repo.FindAll(ctx, models.PublishedFilter(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tie A", "Oldest"}, titles(published))

	unpublished, err := repo.FindAll(ctx, models.PublishedFilter(false))
	require.NoError(t, err)
	assert.Equal(t, []string{"Newest", "Tie B"}, titles(unpublished))

	matches, err := repo.FindAll(ctx, models.BlogFilter{SearchTerm: "go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tie A", "Oldest"}, titles(matches))

	none, err := repo.FindAll(ctx, models.BlogFilter{SearchTerm: "haskell"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryBlogRepo_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryBlogRepo().FindAll(ctx, models.BlogFilter{})

	assert.ErrorIs(t, err, context.Canceled)
}

func titles(blogs []*models.Blog) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.Title)
	}
	return out
}
