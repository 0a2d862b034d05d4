package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/shortly-app/shortly/internal/entity"
)

type mockURLRepository struct {
	mock.Mock
}

func newMockURLRepository() *mockURLRepository {
	return &mockURLRepository{}
}

func (m *mockURLRepository) Save(ctx context.Context, userID int64, shortCode, longURL, shortURL string, expiresAt time.Time) (*entity.URL, error) {
	args := m.Called(ctx, userID, shortCode, longURL, shortURL, expiresAt)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) RetrieveWithClicks(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) RetrieveAndRecordClick(ctx context.Context, shortCode string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) Update(ctx context.Context, shortCode, longURL string) (*entity.URL, error) {
	args := m.Called(ctx, shortCode, longURL)
	url, _ := args.Get(0).(*entity.URL)
	return url, args.Error(1)
}

func (m *mockURLRepository) Remove(ctx context.Context, shortCode string) error {
	args := m.Called(ctx, shortCode)
	return args.Error(0)
}

func (m *mockURLRepository) ListByUser(ctx context.Context, userID int64) ([]entity.URL, error) {
	args := m.Called(ctx, userID)
	urls, _ := args.Get(0).([]entity.URL)
	return urls, args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{}
}

func (m *mockUserRepository) Save(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	args := m.Called(ctx, name, email, passwordHash)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) SaveFederated(ctx context.Context, googleID, name, email string) (*entity.User, error) {
	args := m.Called(ctx, googleID, name, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) RetrieveByID(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) RetrieveByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) RetrieveByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	args := m.Called(ctx, googleID)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}
