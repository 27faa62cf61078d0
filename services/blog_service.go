package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IliyaMhz/PersonalBlog/errs"
	"github.com/IliyaMhz/PersonalBlog/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// BlogStore is the persistence the blog service needs.
type BlogStore interface {
	// FindByID returns (nil, nil) when no post has the given id.
	FindByID(ctx context.Context, id int64) (*models.Blog, error)
	FindAll(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error)
	Add(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type BlogService struct {
	store  BlogStore
	logger zerolog.Logger
	now    func() time.Time
}

type Option func(*BlogService)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *BlogService) {
		s.logger = logger
	}
}

// WithClock replaces time.Now as the source of created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *BlogService) {
		s.now = now
	}
}

func NewBlogService(store BlogStore, opts ...Option) *BlogService {
	s := &BlogService{
		store:  store,
		logger: log.With().Str("serviceName", "blogService").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timestamp is stored at microsecond precision, matching timestamptz.
func (s *BlogService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *BlogService) ListAll(ctx context.Context) ([]models.BlogResponse, error) {
	s.logger.Info().Msg("Getting all blogs")
	return s.list(ctx, models.BlogFilter{})
}

func (s *BlogService) ListPublished(ctx context.Context) ([]models.BlogResponse, error) {
	s.logger.Info().Msg("Getting published blogs")
	return s.list(ctx, models.PublishedFilter(true))
}

func (s *BlogService) ListUnpublished(ctx context.Context) ([]models.BlogResponse, error) {
	s.logger.Info().Msg("Getting unpublished blogs")
	return s.list(ctx, models.PublishedFilter(false))
}

// Search matches term as a substring of title, content or summary.
func (s *BlogService) Search(ctx context.Context, term string) ([]models.BlogResponse, error) {
	if strings.TrimSpace(term) == "" {
		return nil, errs.NewInvalidArgumentError("searchTerm", "Search term is required")
	}

	s.logger.Info().Str("searchTerm", term).Msg("Searching blogs")
	return s.list(ctx, models.BlogFilter{SearchTerm: term})
}

func (s *BlogService) list(ctx context.Context, filter models.BlogFilter) ([]models.BlogResponse, error) {
	filter.OrderBy = models.OrderNewestFirst

	blogs, err := s.store.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list blogs")
		return nil, err
	}

	s.logger.Info().Int("count", len(blogs)).Msg("Retrieved blogs")
	return models.NewBlogResponses(blogs), nil
}

func (s *BlogService) GetByID(ctx context.Context, id int64) (models.BlogResponse, error) {
	s.logger.Info().Int64("blogID", id).Msg("Getting blog")

	blog, err := s.find(ctx, id)
	if err != nil {
		return models.BlogResponse{}, err
	}
	return models.NewBlogResponse(*blog), nil
}

func (s *BlogService) Create(ctx context.Context, in models.CreateBlogInput) (models.BlogResponse, error) {
	s.logger.Info().Str("title", in.Title).Msg("Creating new blog")

	blog := in.ToEntity()
	blog.CreatedAt = s.timestamp()
	if strings.TrimSpace(blog.Summary) == "" {
		blog.Summary = DeriveSummary(blog.Content, DefaultSummaryLength)
	}

	if err := s.store.Add(ctx, &blog); err != nil {
		s.logger.Error().Err(err).Str("title", in.Title).Msg("Failed to create blog")
		return models.BlogResponse{}, err
	}

	s.logger.Info().Int64("blogID", blog.ID).Msg("Blog created")
	return models.NewBlogResponse(blog), nil
}

// Update applies the fields present in input. The summary is derived again
// when the stored one is blank or the content changed.
func (s *BlogService) Update(ctx context.Context, id int64, in models.UpdateBlogInput) (models.BlogResponse, error) {
	s.logger.Info().Int64("blogID", id).Msg("Updating blog")

	blog, err := s.find(ctx, id)
	if err != nil {
		return models.BlogResponse{}, err
	}

	previousContent := blog.Content
	in.ApplyTo(blog)

	updatedAt := s.timestamp()
	blog.UpdatedAt = &updatedAt

	if strings.TrimSpace(blog.Summary) == "" || blog.Content != previousContent {
		blog.Summary = DeriveSummary(blog.Content, DefaultSummaryLength)
	}

	if err := s.store.Update(ctx, blog); err != nil {
		s.logger.Error().Err(err).Int64("blogID", id).Msg("Failed to update blog")
		return models.BlogResponse{}, err
	}

	s.logger.Info().Int64("blogID", id).Msg("Blog updated")
	return models.NewBlogResponse(*blog), nil
}

// Delete removes the post and reports whether the store removed a row.
func (s *BlogService) Delete(ctx context.Context, id int64) (bool, error) {
	s.logger.Info().Int64("blogID", id).Msg("Deleting blog")

	if _, err := s.find(ctx, id); err != nil {
		return false, err
	}

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("blogID", id).Msg("Failed to delete blog")
		return false, err
	}

	s.logger.Info().Int64("blogID", id).Bool("removed", removed).Msg("Blog deleted")
	return removed, nil
}

func (s *BlogService) find(ctx context.Context, id int64) (*models.Blog, error) {
	blog, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("blogID", id).Msg("Failed to load blog")
		return nil, err
	}
	if blog == nil {
		s.logger.Warn().Int64("blogID", id).Msg("Blog not found")
		return nil, errs.NewNotFound(fmt.Sprintf("Blog with ID %d", id))
	}
	return blog, nil
}
