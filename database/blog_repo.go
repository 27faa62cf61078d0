package database

import (
	"context"
	"errors"
	"strings"

	"github.com/IliyaMhz/PersonalBlog/models"
	"gorm.io/gorm"
)

// BlogRepository is implemented by every blog store.
type BlogRepository interface {
	// FindByID returns (nil, nil) when no post has the given id.
	FindByID(ctx context.Context, id int64) (*models.Blog, error)
	FindAll(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error)
	// Add inserts blog and sets its ID.
	Add(ctx context.Context, blog *models.Blog) error
	Update(ctx context.Context, blog *models.Blog) error
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id int64) (bool, error)
}

type GormBlogRepo struct {
	db *gorm.DB
}

func NewGormBlogRepo(db *gorm.DB) *GormBlogRepo {
	return &GormBlogRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *GormBlogRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a blog post by its ID
func (r *GormBlogRepo) FindByID(ctx context.Context, id int64) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).First(&blog, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// FindAll returns the blog posts matching filter, newest first unless the
// filter names another order.
func (r *GormBlogRepo) FindAll(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
	query := r.db.WithContext(ctx).Model(&models.Blog{})

	if filter.Published != nil {
		query = query.Where("is_published = ?", *filter.Published)
	}
	if filter.SearchTerm != "" {
		pattern := "%" + escapeLike(filter.SearchTerm) + "%"
		query = query.Where(
			`title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\' OR summary LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	order := filter.OrderBy
	if order == "" {
		order = models.OrderNewestFirst
	}

	blogs := []*models.Blog{}
	if err := query.Order(string(order)).Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

// Add inserts a new blog post into the database
func (r *GormBlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Create(blog).Error
}

// Update writes every column of an existing blog post
func (r *GormBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	return r.db.WithContext(ctx).Save(blog).Error
}

// Delete removes a blog post from the database by id
func (r *GormBlogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes every LIKE wildcard in term match literally.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
