package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"newsapi/internal/model"
	"newsapi/internal/repository"
	"newsapi/internal/storage"
)

var (
	ErrNotFound      = errors.New("news not found")
	ErrImageNotFound = errors.New("image not found")
)

// Pagination bounds for List.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50

	// MaxPage keeps (page-1)*pageSize within int.
	MaxPage = math.MaxInt / MaxPageSize
)

// ListParams are the raw list inputs; zero values select the defaults.
type ListParams struct {
	Query    string
	Page     int
	PageSize int
}

// NewsListResult is the service-level DTO for a page of news.
type NewsListResult struct {
	Items      []model.NewsItem
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// NewsService defines the use cases for managing news items.
type NewsService interface {
	// List searches and paginates news, newest first.
	List(ctx context.Context, p ListParams) (*NewsListResult, error)

	// Get returns a single item by its ID.
	Get(ctx context.Context, id int64) (*model.NewsItem, error)

	// GetImage returns the image bytes and MIME type of an item.
	GetImage(ctx context.Context, id int64) (*model.Image, error)

	// Create validates and stores a new item with an optional image.
	Create(ctx context.Context, in model.NewsInput, img *model.Image) (*model.NewsItem, error)

	// Update applies a partial update; a non-nil image replaces the stored one.
	Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image) (*model.NewsItem, error)

	// UpdateImage replaces only the image.
	UpdateImage(ctx context.Context, id int64, img *model.Image) (*model.NewsItem, error)

	// DeleteImage clears the image.
	DeleteImage(ctx context.Context, id int64) error

	// Delete removes an item together with its image.
	Delete(ctx context.Context, id int64) error
}

// Option customises a news service.
type Option func(*newsService)

// WithClock overrides the time source used for created/updated timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *newsService) { s.now = now }
}

// WithMaxImageBytes lowers the image limit. DefaultMaxImageBytes is a hard
// ceiling; larger or non-positive values are ignored.
func WithMaxImageBytes(n int64) Option {
	return func(s *newsService) {
		if n > 0 && n < DefaultMaxImageBytes {
			s.maxImageBytes = n
		}
	}
}

// WithImageSizeObserver records the size of every accepted image upload.
func WithImageSizeObserver(o prometheus.Observer) Option {
	return func(s *newsService) { s.imageSizes = o }
}

// newsService is a concrete implementation of NewsService.
type newsService struct {
	repo          repository.NewsRepository
	now           func() time.Time
	maxImageBytes int64
	imageSizes    prometheus.Observer
}

// NewNewsService constructs a new NewsService.
func NewNewsService(repo repository.NewsRepository, opts ...Option) NewsService {
	s := &newsService{
		repo:          repo,
		now:           func() time.Time { return time.Now().UTC() },
		maxImageBytes: DefaultMaxImageBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClampPage applies the list defaults and bounds.
func ClampPage(page, pageSize int) (int, int) {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	page = min(max(page, 1), MaxPage)
	pageSize = min(max(pageSize, 1), MaxPageSize)
	return page, pageSize
}

// TotalPages returns ceil(total/pageSize), never less than 1.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 1
	}
	return max(1, (total+pageSize-1)/pageSize)
}

func (s *newsService) List(ctx context.Context, p ListParams) (*NewsListResult, error) {
	page, pageSize := ClampPage(p.Page, p.PageSize)

	res, err := s.repo.List(ctx, repository.ListQuery{
		Search: strings.TrimSpace(p.Query),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}
	return &NewsListResult{
		Items:      res.Items,
		Total:      res.Total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: TotalPages(res.Total, pageSize),
	}, nil
}

func (s *newsService) Get(ctx context.Context, id int64) (*model.NewsItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	return item, nil
}

func (s *newsService) GetImage(ctx context.Context, id int64) (*model.Image, error) {
	img, err := s.repo.FindImage(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, mapNotFound(err, ErrImageNotFound)
	}
	return img, nil
}

func (s *newsService) Create(ctx context.Context, in model.NewsInput, img *model.Image) (*model.NewsItem, error) {
	in, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}
	if img, err = s.checkImage(img, false); err != nil {
		return nil, err
	}
	item, err := s.repo.Create(ctx, in, img, s.now())
	if err != nil {
		return nil, err
	}
	s.observe(img)
	return item, nil
}

func (s *newsService) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image) (*model.NewsItem, error) {
	patch, err := normalizePatch(patch)
	if err != nil {
		return nil, err
	}
	if img, err = s.checkImage(img, false); err != nil {
		return nil, err
	}
	item, err := s.repo.Update(ctx, id, patch, img, s.now())
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	s.observe(img)
	return item, nil
}

func (s *newsService) UpdateImage(ctx context.Context, id int64, img *model.Image) (*model.NewsItem, error) {
	img, err := s.checkImage(img, true)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.UpdateImage(ctx, id, img, s.now())
	if err != nil {
		return nil, mapNotFound(err, ErrNotFound)
	}
	s.observe(img)
	return item, nil
}

func (s *newsService) DeleteImage(ctx context.Context, id int64) error {
	if err := s.repo.DeleteImage(ctx, id, s.now()); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}

func (s *newsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapNotFound(err, ErrNotFound)
	}
	return nil
}

// checkImage validates an optional upload and normalises its MIME type.
func (s *newsService) checkImage(img *model.Image, required bool) (*model.Image, error) {
	if img == nil && !required {
		return nil, nil
	}
	if err := ValidateImage(img, s.maxImageBytes); err != nil {
		return nil, err
	}
	return &model.Image{Data: img.Data, MimeType: strings.ToLower(img.MimeType)}, nil
}

func (s *newsService) observe(img *model.Image) {
	if img != nil && s.imageSizes != nil {
		s.imageSizes.Observe(float64(img.Size()))
	}
}

func mapNotFound(err, target error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return target
	}
	return err
}
