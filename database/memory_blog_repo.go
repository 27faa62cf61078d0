package database

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/IliyaMhz/PersonalBlog/models"
	"gorm.io/gorm"
)

// MemoryBlogRepo keeps posts in a map. Entities are copied on the way in and
// out so callers never share state with the store.
type MemoryBlogRepo struct {
	mu     sync.RWMutex
	blogs  map[int64]*models.Blog
	nextID int64
}

func NewMemoryBlogRepo() *MemoryBlogRepo {
	return &MemoryBlogRepo{blogs: make(map[int64]*models.Blog)}
}

func (r *MemoryBlogRepo) FindByID(_ context.Context, id int64) (*models.Blog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	blog, ok := r.blogs[id]
	if !ok {
		return nil, nil
	}
	return cloneBlog(blog), nil
}

func (r *MemoryBlogRepo) FindAll(ctx context.Context, filter models.BlogFilter) ([]*models.Blog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	blogs := make([]*models.Blog, 0, len(r.blogs))
	for _, blog := range r.blogs {
		if filter.Matches(blog) {
			blogs = append(blogs, cloneBlog(blog))
		}
	}
	r.mu.RUnlock()

	// created_at DESC, id DESC
	sort.Slice(blogs, func(i, j int) bool {
		if !blogs[i].CreatedAt.Equal(blogs[j].CreatedAt) {
			return blogs[i].CreatedAt.After(blogs[j].CreatedAt)
		}
		return blogs[i].ID > blogs[j].ID
	})
	return blogs, nil
}

func (r *MemoryBlogRepo) Add(ctx context.Context, blog *models.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	blog.ID = r.nextID
	r.blogs[blog.ID] = cloneBlog(blog)
	return nil
}

func (r *MemoryBlogRepo) Update(ctx context.Context, blog *models.Blog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[blog.ID]; !ok {
		return fmt.Errorf("update blog %d: %w", blog.ID, gorm.ErrRecordNotFound)
	}
	r.blogs[blog.ID] = cloneBlog(blog)
	return nil
}

func (r *MemoryBlogRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return false, nil
	}
	delete(r.blogs, id)
	return true, nil
}

func cloneBlog(blog *models.Blog) *models.Blog {
	clone := *blog
	if blog.UpdatedAt != nil {
		updatedAt := *blog.UpdatedAt
		clone.UpdatedAt = &updatedAt
	}
	return &clone
}
