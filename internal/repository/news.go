package repository

import (
	"context"
	"strings"
	"time"

	"newsapi/internal/model"
)

// NewsRepository defines data access for news items using SQL queries only.
// Implementations persist only; validation lives in the service.
//
// Every lookup or mutation that matches no row returns sql.ErrNoRows.
type NewsRepository interface {
	// List returns a page of items (without image bytes) and the total count of matching rows.
	List(ctx context.Context, q ListQuery) (*PageResult[model.NewsItem], error)

	// FindByID returns an item by its ID.
	FindByID(ctx context.Context, id int64) (*model.NewsItem, error)

	// FindImage returns the stored image of an item. A row without an image yields sql.ErrNoRows.
	FindImage(ctx context.Context, id int64) (*model.Image, error)

	// Create inserts a new row with created_at = updated_at = now and an optional image.
	Create(ctx context.Context, in model.NewsInput, img *model.Image, now time.Time) (*model.NewsItem, error)

	// Update applies a partial update. Unset fields keep their value; a non-nil image replaces the stored one.
	Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image, now time.Time) (*model.NewsItem, error)

	// UpdateImage replaces only the image of an item.
	UpdateImage(ctx context.Context, id int64, img *model.Image, now time.Time) (*model.NewsItem, error)

	// DeleteImage clears the image of an item.
	DeleteImage(ctx context.Context, id int64, now time.Time) error

	// Delete removes an item, image included.
	Delete(ctx context.Context, id int64) error
}

// ListQuery holds the search term and limit/offset pagination parameters.
type ListQuery struct {
	Search string
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePattern turns a search term into a substring pattern for LIKE/ILIKE with
// backslash as escape character, so wildcards in the term match literally.
func LikePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
