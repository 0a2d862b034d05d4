package http

import (
	"context"

	"github.com/shortly-app/shortly/internal/entity"
	"github.com/stretchr/testify/mock"
)

type mockURLUseCase struct {
	mock.Mock
}

func (m *mockURLUseCase) ShortenURL(ctx context.Context, userID int64, longURL, customAlias string) (*entity.URL, error) {
	args := m.Called(ctx, userID, longURL, customAlias)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) GetURLInfo(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) ListUserURLs(ctx context.Context, userID int64) ([]entity.URL, error) {
	args := m.Called(ctx, userID)
	urls, _ := args.Get(0).([]entity.URL)
	return urls, args.Error(1)
}

func (m *mockURLUseCase) ModifyURL(ctx context.Context, userID int64, shortCode, longURL string) (*entity.URL, error) {
	args := m.Called(ctx, userID, shortCode, longURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLUseCase) DeactivateURL(ctx context.Context, userID int64, shortCode string) error {
	args := m.Called(ctx, userID, shortCode)
	return args.Error(0)
}

type mockAuthUseCase struct {
	mock.Mock
}

func (m *mockAuthUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	args := m.Called(ctx, name, email, password)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockAuthUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockAuthUseCase) FederateGoogle(ctx context.Context, googleID, name, email string) (*entity.User, error) {
	args := m.Called(ctx, googleID, name, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}
