package mocks

import (
	"context"

	"newsapi/internal/model"
	"newsapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockNewsService struct {
	mock.Mock
}

var _ service.NewsService = (*MockNewsService)(nil)

func (m *MockNewsService) List(ctx context.Context, p service.ListParams) (*service.NewsListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NewsListResult), args.Error(1)
}

func (m *MockNewsService) Get(ctx context.Context, id int64) (*model.NewsItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsService) GetImage(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Image), args.Error(1)
}

func (m *MockNewsService) Create(ctx context.Context, in model.NewsInput, img *model.Image) (*model.NewsItem, error) {
	args := m.Called(ctx, in, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsService) Update(ctx context.Context, id int64, patch model.NewsPatch, img *model.Image) (*model.NewsItem, error) {
	args := m.Called(ctx, id, patch, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsService) UpdateImage(ctx context.Context, id int64, img *model.Image) (*model.NewsItem, error) {
	args := m.Called(ctx, id, img)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.NewsItem), args.Error(1)
}

func (m *MockNewsService) DeleteImage(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNewsService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
