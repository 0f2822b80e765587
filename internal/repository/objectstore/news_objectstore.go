// Package objectstore offloads news image bytes to S3-compatible storage.
//
// Objects are content addressed (sha256 of the bytes), so identical uploads
// share one object and a write never overwrites a different image.
package objectstore

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"newsapi/internal/model"
	"newsapi/internal/repository"
	"newsapi/internal/storage"
)

// KeyPrefix is the object key prefix for news images.
const KeyPrefix = "news-images/"

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/webp": ".webp",
}

// NewsRepository wraps a repository.NewsRepository and moves image bytes into object storage.
// The wrapped repository only ever sees the object key and MIME type.
type NewsRepository struct {
	repository.NewsRepository
	store storage.Storage
}

var _ repository.NewsRepository = (*NewsRepository)(nil)

// New returns a decorator storing images in store.
func New(inner repository.NewsRepository, store storage.Storage) *NewsRepository {
	return &NewsRepository{NewsRepository: inner, store: store}
}

// ObjectKey returns the content address of an image.
func ObjectKey(img *model.Image) string {
	sum := sha256.Sum256(img.Data)
	return KeyPrefix + hex.EncodeToString(sum[:]) + extensions[img.MimeType]
}

func (r *NewsRepository) Create(ctx context.Context, in model.NewsInput, img *model.Image, now time.Time) (*model.NewsItem, error) {
	ref, err := r.offload(ctx, img)
	if err != nil {
		return nil, err
	}
	return r.NewsRepository.Create(ctx, in, ref, now)
}

func (r *NewsRepository) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image, now time.Time) (*model.NewsItem, error) {
	ref, err := r.offload(ctx, img)
	if err != nil {
		return nil, err
	}
	return r.NewsRepository.Update(ctx, id, patch, ref, now)
}

func (r *NewsRepository) UpdateImage(ctx context.Context, id int64, img *model.Image, now time.Time) (*model.NewsItem, error) {
	ref, err := r.offload(ctx, img)
	if err != nil {
		return nil, err
	}
	return r.NewsRepository.UpdateImage(ctx, id, ref, now)
}

// FindImage resolves an offloaded image to its bytes. Rows written before
// offloading was enabled still carry their bytes and are returned as is.
func (r *NewsRepository) FindImage(ctx context.Context, id int64) (*model.Image, error) {
	img, err := r.NewsRepository.FindImage(ctx, id)
	if err != nil || img.Key == "" {
		return img, err
	}

	rc, _, err := r.store.Get(ctx, img.Key)
	if err != nil {
		return nil, fmt.Errorf("get image object %s: %w", img.Key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read image object %s: %w", img.Key, err)
	}
	return &model.Image{Data: data, MimeType: img.MimeType, Key: img.Key}, nil
}

// offload uploads the bytes unless an object with the same content already exists.
// Objects are never removed here: once uploaded, a key may be referenced by a
// concurrent write, so a failed row write or a row delete can leave an
// unreferenced object behind but never a row without its bytes.
func (r *NewsRepository) offload(ctx context.Context, img *model.Image) (*model.Image, error) {
	if img == nil {
		return nil, nil
	}
	key := ObjectKey(img)

	_, err := r.store.Stat(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrObjectNotFound):
		if _, err := r.store.Put(ctx, key, bytes.NewReader(img.Data), storage.PutObjectOptions{
			Size:        img.Size(),
			ContentType: img.MimeType,
		}); err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
	default:
		return nil, fmt.Errorf("stat image object: %w", err)
	}

	return &model.Image{MimeType: img.MimeType, Key: key}, nil
}
