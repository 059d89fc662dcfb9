// Package mocks holds testify mocks for the service and repository
// interfaces consumed in handler and service tests.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"article-api/internal/domain"
	"article-api/internal/query"
	"article-api/internal/service"
	"article-api/internal/validator"
)

// MockArticleService mocks service.ArticleServiceInterface.
type MockArticleService struct {
	mock.Mock
}

// NewMockArticleService creates a mock that asserts its expectations on
// test cleanup.
func NewMockArticleService(t *testing.T) *MockArticleService {
	m := &MockArticleService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockArticleService) Create(ctx context.Context, p domain.Principal, input service.ArticleInput) (*domain.Article, error) {
	args := m.Called(ctx, p, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Article, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Update(ctx context.Context, p domain.Principal, id string, input service.ArticleUpdate) (*domain.Article, error) {
	args := m.Called(ctx, p, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Delete(ctx context.Context, p domain.Principal, id string) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockArticleService) List(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*service.ArticleList, error) {
	args := m.Called(ctx, p, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleList), args.Error(1)
}

func (m *MockArticleService) ListOwn(ctx context.Context, p domain.Principal, filter query.Filter, page query.Page) (*service.ArticleList, error) {
	args := m.Called(ctx, p, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ArticleList), args.Error(1)
}

func (m *MockArticleService) ToggleFeatured(ctx context.Context, p domain.Principal, id string) (*domain.Article, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleService) Stats(ctx context.Context, p domain.Principal) (*domain.Stats, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

// MockAuthService mocks service.AuthServiceInterface.
type MockAuthService struct {
	mock.Mock
}

// NewMockAuthService creates a mock that asserts its expectations on
// test cleanup.
func NewMockAuthService(t *testing.T) *MockAuthService {
	m := &MockAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuthService) Register(ctx context.Context, reg validator.Registration) (*domain.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*service.TokenPair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*service.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TokenPair), args.Error(1)
}
