package mocks

import (
	"context"
	"time"

	"newsapi/internal/model"
	"newsapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockNewsRepository struct {
	mock.Mock
}

var _ repository.NewsRepository = (*MockNewsRepository)(nil)

func (m *MockNewsRepository) List(ctx context.Context, q repository.ListQuery) (*repository.PageResult[model.NewsItem], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.NewsItem]), args.Error(1)
}

func (m *MockNewsRepository) FindByID(ctx context.Context, id int64) (*model.NewsItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsRepository) FindImage(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockNewsRepository) Create(ctx context.Context, in model.NewsInput, img *model.Image, now time.Time) (*model.NewsItem, error) {
	args := m.Called(ctx, in, img, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsRepository) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image, now time.Time) (*model.NewsItem, error) {
	args := m.Called(ctx, id, patch, img, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsRepository) UpdateImage(ctx context.Context, id int64, img *model.Image, now time.Time) (*model.NewsItem, error) {
	args := m.Called(ctx, id, img, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsRepository) DeleteImage(ctx context.Context, id int64, now time.Time) error {
	args := m.Called(ctx, id, now)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
