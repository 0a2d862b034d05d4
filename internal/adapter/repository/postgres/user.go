package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shortly-app/shortly/internal/entity"
)

type userDB struct {
	ID           int64          `db:"id"`
	Name         string         `db:"name"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	GoogleID     sql.NullString `db:"google_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (u *userDB) toEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		GoogleID:     u.GoogleID.String,
		CreatedAt:    u.CreatedAt,
	}
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a password-registered user. A taken email surfaces as
// entity.ErrEmailExists.
func (r *UserRepository) Save(ctx context.Context, name, email, passwordHash string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.Save"
	const query = `INSERT INTO users(name, email, password_hash) VALUES ($1, $2, $3) RETURNING *`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, name, email, passwordHash); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into users table: %w", op, err)
	}

	return user.toEntity(), nil
}

// SaveFederated inserts a user created from an external identity. The
// password hash stays empty; such users authenticate via federation only.
func (r *UserRepository) SaveFederated(ctx context.Context, googleID, name, email string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.SaveFederated"
	const query = `INSERT INTO users(name, email, google_id) VALUES ($1, $2, $3) RETURNING *`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, name, email, googleID); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrEmailExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into users table: %w", op, err)
	}

	return user.toEntity(), nil
}

func (r *UserRepository) RetrieveByID(ctx context.Context, id int64) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByID"
	const query = `SELECT * FROM users WHERE id = $1`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return user.toEntity(), nil
}

func (r *UserRepository) RetrieveByEmail(ctx context.Context, email string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByEmail"
	const query = `SELECT * FROM users WHERE email = $1`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return user.toEntity(), nil
}

func (r *UserRepository) RetrieveByGoogleID(ctx context.Context, googleID string) (*entity.User, error) {
	const op = "adapter.repository.postgres.UserRepository.RetrieveByGoogleID"
	const query = `SELECT * FROM users WHERE google_id = $1`

	var user userDB

	if err := r.db.GetContext(ctx, &user, query, googleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from users table: %w", op, err)
	}

	return user.toEntity(), nil
}
