package models

import (
	"strings"
	"time"
)

// Blog is a single blog post as persisted in the blogs table.
// CreatedAt and UpdatedAt are owned by the service layer, so GORM's automatic
// timestamp tracking is switched off for both.
type Blog struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null"`
	Content     string     `json:"content" gorm:"type:text;not null"`
	Summary     string     `json:"summary" gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"type:timestamptz;not null;autoCreateTime:false;index:idx_blogs_created_at,sort:desc"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty" gorm:"type:timestamptz;autoUpdateTime:false"`
	IsPublished bool       `json:"isPublished" gorm:"not null;default:false;index:idx_blogs_is_published"`
}

// BlogOrder is an ORDER BY clause understood by every BlogRepository.
type BlogOrder string

// OrderNewestFirst sorts by creation time descending; id breaks ties so the
// order is stable for posts created in the same instant.
const OrderNewestFirst BlogOrder = "created_at DESC, id DESC"

// BlogFilter is the predicate half of a FindAll query.
// Zero value matches every post.
type BlogFilter struct {
	Published  *bool
	SearchTerm string
	OrderBy    BlogOrder
}

// PublishedFilter matches posts whose IsPublished flag equals published.
func PublishedFilter(published bool) BlogFilter {
	return BlogFilter{Published: &published}
}

// Matches evaluates the filter against a post in memory. Search is a plain,
// case-sensitive substring test over title, content and summary.
func (f BlogFilter) Matches(b *Blog) bool {
	if f.Published != nil && b.IsPublished != *f.Published {
		return false
	}
	if f.SearchTerm != "" {
		return containsAny(f.SearchTerm, b.Title, b.Content, b.Summary)
	}
	return true
}

func containsAny(term string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(field, term) {
			return true
		}
	}
	return false
}
