package models

import "time"

// CreateBlogInput is the request body for POST /blogs.
type CreateBlogInput struct {
	Title       string `json:"title" validate:"notblank,min=5,max=200"`
	Content     string `json:"content" validate:"notblank,min=50,max=10000"`
	Summary     string `json:"summary,omitempty" validate:"max=500"`
	IsPublished bool   `json:"isPublished"`
}

// UpdateBlogInput is the request body for PUT /blogs/{id}.
// Nil fields are left untouched on the stored post.
type UpdateBlogInput struct {
	Title       *string `json:"title,omitempty" validate:"omitnil,notblank,min=5,max=200"`
	Content     *string `json:"content,omitempty" validate:"omitnil,notblank,min=50,max=10000"`
	Summary     *string `json:"summary,omitempty" validate:"omitnil,max=500"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

// BlogResponse is the read-only wire shape of a post.
type BlogResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Summary     string     `json:"summary"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsPublished bool       `json:"isPublished"`
}

// ToEntity copies the whitelisted fields onto a new, unsaved Blog.
func (in CreateBlogInput) ToEntity() Blog {
	return Blog{
		Title:       in.Title,
		Content:     in.Content,
		Summary:     in.Summary,
		IsPublished: in.IsPublished,
	}
}

// ApplyTo overwrites the fields of blog that are present in the input.
func (in UpdateBlogInput) ApplyTo(blog *Blog) {
	if in.Title != nil {
		blog.Title = *in.Title
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Summary != nil {
		blog.Summary = *in.Summary
	}
	if in.IsPublished != nil {
		blog.IsPublished = *in.IsPublished
	}
}

func NewBlogResponse(blog Blog) BlogResponse {
	resp := BlogResponse{
		ID:          blog.ID,
		Title:       blog.Title,
		Content:     blog.Content,
		Summary:     blog.Summary,
		CreatedAt:   blog.CreatedAt,
		IsPublished: blog.IsPublished,
	}
	if blog.UpdatedAt != nil {
		updatedAt := *blog.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// NewBlogResponses never returns nil, so an empty result encodes as [].
func NewBlogResponses(blogs []*Blog) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, blog := range blogs {
		out = append(out, NewBlogResponse(*blog))
	}
	return out
}
