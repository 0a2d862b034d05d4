package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"
	"github.com/shortly-app/shortly/internal/entity"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	errUnknown error
	columns    []string
	mock       sqlmock.Sqlmock
	repo       *UserRepository
}

func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.columns = []string{"id", "name", "email", "password_hash", "google_id", "created_at"}
}

func (suite *UserRepositoryTestSuite) SetupSubTest() {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}
	suite.T().Cleanup(func() {
		mockDB.Close()
	})

	db := sqlx.NewDb(mockDB, "sqlmock")
	suite.T().Cleanup(func() {
		db.Close()
	})

	suite.mock = mock
	suite.repo = NewUserRepository(db)
}

func (suite *UserRepositoryTestSuite) TearDownSubTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *UserRepositoryTestSuite) TestSave() {
	suite.Run("email exists", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("John", "john@example.com", "hash").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode})

		user, err := suite.repo.Save(context.Background(), "John", "john@example.com", "hash")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrEmailExists)
		suite.Nil(user)
	})

	suite.Run("unknown error", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("John", "john@example.com", "hash").
			WillReturnError(suite.errUnknown)

		user, err := suite.repo.Save(context.Background(), "John", "john@example.com", "hash")

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("John", "john@example.com", "hash").
			WillReturnRows(sqlmock.NewRows(suite.columns).
				AddRow(1, "John", "john@example.com", "hash", nil, time.Time{}))

		user, err := suite.repo.Save(context.Background(), "John", "john@example.com", "hash")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal(int64(1), user.ID)
		suite.Equal("john@example.com", user.Email)
		suite.Empty(user.GoogleID)
	})
}

func (suite *UserRepositoryTestSuite) TestSaveFederated() {
	suite.Run("success", func() {
		suite.mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("John", "john@example.com", "google-123").
			WillReturnRows(sqlmock.NewRows(suite.columns).
				AddRow(1, "John", "john@example.com", "", "google-123", time.Time{}))

		user, err := suite.repo.SaveFederated(context.Background(), "google-123", "John", "john@example.com")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("google-123", user.GoogleID)
		suite.Empty(user.PasswordHash)
	})
}

func (suite *UserRepositoryTestSuite) TestRetrieveByID() {
	suite.Run("user not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(int64(1)).
			WillReturnError(sql.ErrNoRows)

		user, err := suite.repo.RetrieveByID(context.Background(), 1)

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(suite.columns).
				AddRow(1, "John", "john@example.com", "hash", nil, time.Time{}))

		user, err := suite.repo.RetrieveByID(context.Background(), 1)

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal(int64(1), user.ID)
	})
}

func (suite *UserRepositoryTestSuite) TestRetrieveByEmail() {
	suite.Run("user not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("john@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := suite.repo.RetrieveByEmail(context.Background(), "john@example.com")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("john@example.com").
			WillReturnRows(sqlmock.NewRows(suite.columns).
				AddRow(1, "John", "john@example.com", "hash", nil, time.Time{}))

		user, err := suite.repo.RetrieveByEmail(context.Background(), "john@example.com")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("john@example.com", user.Email)
	})
}

func (suite *UserRepositoryTestSuite) TestRetrieveByGoogleID() {
	suite.Run("user not found", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("google-123").
			WillReturnError(sql.ErrNoRows)

		user, err := suite.repo.RetrieveByGoogleID(context.Background(), "google-123")

		suite.Error(err)
		suite.ErrorIs(err, entity.ErrUserNotFound)
		suite.Nil(user)
	})

	suite.Run("success", func() {
		suite.mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("google-123").
			WillReturnRows(sqlmock.NewRows(suite.columns).
				AddRow(1, "John", "john@example.com", "", "google-123", time.Time{}))

		user, err := suite.repo.RetrieveByGoogleID(context.Background(), "google-123")

		suite.NoError(err)
		suite.NotNil(user)
		suite.Equal("google-123", user.GoogleID)
	})
}

func TestUserRepository(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
