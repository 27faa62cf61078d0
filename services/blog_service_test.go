package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/IliyaMhz/PersonalBlog/database"
	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/IliyaMhz/PersonalBlog/models"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longContent = strings.Repeat("Writing Go services one request at a time. ", 5)

// fakeClock hands out strictly increasing timestamps.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newTestService(t *testing.T) (*BlogService, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewBlogService(database.NewMemoryBlogRepo(),
		WithLogger(zerolog.Nop()),
		WithClock(clock.Now),
	)
	return svc, clock
}

func createInput(title string, published bool) models.CreateBlogInput {
	return models.CreateBlogInput{Title: title, Content: longContent, IsPublished: published}
}

func TestBlogService_CreateThenGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("First post", true))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Nil(t, created.UpdatedAt)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, fetched); diff != "" {
		t.Errorf("fetched post differs from created (-created +fetched):\n%s", diff)
	}
}

func TestBlogService_Create_Summary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	derived, err := svc.Create(ctx, createInput("Derived summary", false))
	require.NoError(t, err)
	assert.Equal(t, DeriveSummary(longContent, DefaultSummaryLength), derived.Summary)

	in := createInput("Given summary", false)
	in.Summary = "Hand written"
	given, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Hand written", given.Summary)

	in.Summary = "   "
	blank, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, DeriveSummary(longContent, DefaultSummaryLength), blank.Summary)
}

func TestBlogService_GetByID_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "Blog with ID 404 not found", err.Error())
}

func TestBlogService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := createInput("Original title", false)
	in.Summary = "Original summary"
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)

	t.Run("empty input only refreshes updatedAt", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, models.UpdateBlogInput{})
		require.NoError(t, err)

		require.NotNil(t, updated.UpdatedAt)
		assert.True(t, updated.UpdatedAt.After(created.CreatedAt))
		assert.Equal(t, created.Title, updated.Title)
		assert.Equal(t, created.Content, updated.Content)
		assert.Equal(t, "Original summary", updated.Summary)
		assert.Equal(t, created.IsPublished, updated.IsPublished)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("same content keeps summary", func(t *testing.T) {
		same := longContent
		updated, err := svc.Update(ctx, created.ID, models.UpdateBlogInput{Content: &same})
		require.NoError(t, err)
		assert.Equal(t, "Original summary", updated.Summary)
	})

	t.Run("changed content regenerates summary", func(t *testing.T) {
		newContent := "<p>" + strings.Repeat("Fresh content for the post. ", 4) + "</p>"
		updated, err := svc.Update(ctx, created.ID, models.UpdateBlogInput{Content: &newContent})
		require.NoError(t, err)

		assert.Equal(t, newContent, updated.Content)
		assert.Equal(t, DeriveSummary(newContent, DefaultSummaryLength), updated.Summary)
	})

	t.Run("blank summary is derived", func(t *testing.T) {
		blank := ""
		published := true
		updated, err := svc.Update(ctx, created.ID, models.UpdateBlogInput{Summary: &blank, IsPublished: &published})
		require.NoError(t, err)

		assert.NotEmpty(t, updated.Summary)
		assert.True(t, updated.IsPublished)
	})

	t.Run("persisted", func(t *testing.T) {
		title := "Renamed title"
		updated, err := svc.Update(ctx, created.ID, models.UpdateBlogInput{Title: &title})
		require.NoError(t, err)

		fetched, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, fetched)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, models.UpdateBlogInput{})
		assert.True(t, errs.IsNotFound(err))
	})
}

func TestBlogService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, createInput("Short lived", false))
	require.NoError(t, err)

	removed, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))

	_, err = svc.Delete(ctx, created.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestBlogService_Lists(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, in := range []models.CreateBlogInput{
		createInput("Alpha post", true),
		createInput("Beta post", false),
		createInput("Gamma post", true),
	} {
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma post", "Beta post", "Alpha post"}, responseTitles(all))
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	published, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Gamma post", "Alpha post"}, responseTitles(published))

	unpublished, err := svc.ListUnpublished(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta post"}, responseTitles(unpublished))

	assert.ElementsMatch(t, responseTitles(all),
		append(responseTitles(published), responseTitles(unpublished)...))
}

func TestBlogService_Search(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, createInput("Concurrency patterns", true))
	require.NoError(t, err)
	_, err = svc.Create(ctx, createInput("Error handling", false))
	require.NoError(t, err)

	for _, term := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(ctx, term)
		require.Error(t, err)
		assert.True(t, errs.IsInvalidArgument(err), "term %q", term)
	}

	found, err := svc.Search(ctx, "Concurrency")
	require.NoError(t, err)
	assert.Equal(t, []string{"Concurrency patterns"}, responseTitles(found))

	inContent, err := svc.Search(ctx, "request at a time")
	require.NoError(t, err)
	assert.Len(t, inContent, 2)

	none, err := svc.Search(ctx, "Kubernetes")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

type failingStore struct {
	err error
}

func (s failingStore) FindByID(context.Context, int64) (*models.Blog, error) { return nil, s.err }
func (s failingStore) FindAll(context.Context, models.BlogFilter) ([]*models.Blog, error) {
	return nil, s.err
}
func (s failingStore) Add(context.Context, *models.Blog) error     { return s.err }
func (s failingStore) Update(context.Context, *models.Blog) error  { return s.err }
func (s failingStore) Delete(context.Context, int64) (bool, error) { return false, s.err }

func TestBlogService_PropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("store unavailable")
	svc := NewBlogService(failingStore{err: storeErr}, WithLogger(zerolog.Nop()))
	ctx := context.Background()

	_, err := svc.ListAll(ctx)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, storeErr)
	assert.False(t, errs.IsNotFound(err))

	_, err = svc.Create(ctx, createInput("Doomed post", false))
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Update(ctx, 1, models.UpdateBlogInput{})
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, storeErr)

	_, err = svc.Search(ctx, "go")
	assert.ErrorIs(t, err, storeErr)
}

func responseTitles(blogs []models.BlogResponse) []string {
	out := make([]string, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, b.Title)
	}
	return out
}
