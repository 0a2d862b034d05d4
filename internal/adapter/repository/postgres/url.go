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

type urlDB struct {
	ID        int64     `db:"id"`
	ShortCode string    `db:"short_code"`
	LongURL   string    `db:"long_url"`
	ShortURL  string    `db:"short_url"`
	UserID    int64     `db:"user_id"`
	Clicks    int64     `db:"clicks"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:        u.ID,
		ShortCode: u.ShortCode,
		LongURL:   u.LongURL,
		ShortURL:  u.ShortURL,
		UserID:    u.UserID,
		URLStats: entity.URLStats{
			Clicks: u.Clicks,
		},
		CreatedAt: u.CreatedAt,
		ExpiresAt: u.ExpiresAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

// Save inserts a new URL row. A duplicate short code surfaces as
// entity.ErrShortCodeExists; the unique index is the uniqueness backstop
// under concurrent writers.
func (r *URLRepository) Save(ctx context.Context, userID int64, shortCode, longURL, shortURL string, expiresAt time.Time) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(short_code, long_url, short_url, user_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode, longURL, shortURL, userID, expiresAt); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrShortCodeExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

// RetrieveByShortCode returns the base URL row without click timestamps.
func (r *URLRepository) RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByShortCode"
	const query = `SELECT * FROM urls WHERE short_code = $1`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	return url.toEntity(), nil
}

// RetrieveWithClicks returns the URL row together with its ordered click
// timestamps. Works on expired rows; stats stay readable after expiry.
func (r *URLRepository) RetrieveWithClicks(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveWithClicks"
	const urlQuery = `SELECT * FROM urls WHERE short_code = $1`
	const clicksQuery = `SELECT clicked_at FROM url_clicks WHERE url_id = $1 ORDER BY clicked_at`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, urlQuery, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
	}

	var timestamps []time.Time

	if err := r.db.SelectContext(ctx, &timestamps, clicksQuery, url.ID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rows from url_clicks table: %w", op, err)
	}

	res := url.toEntity()
	res.ClickTimestamps = timestamps

	return res, nil
}

// RetrieveAndRecordClick increments the click counter and appends a click
// timestamp in one transaction, guarded by the expiry instant. An expired
// row is left untouched and reported as entity.ErrURLExpired.
func (r *URLRepository) RetrieveAndRecordClick(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveAndRecordClick"
	const updateQuery = `UPDATE urls
		SET clicks = clicks + 1
		WHERE short_code = $1 AND expires_at > now()
		RETURNING *`
	const existsQuery = `SELECT * FROM urls WHERE short_code = $1`
	const clickQuery = `INSERT INTO url_clicks(url_id) VALUES ($1)`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback() //nolint:errcheck

	var url urlDB

	if err := tx.GetContext(ctx, &url, updateQuery, shortCode); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: failed to update urls table row: %w", op, err)
		}

		// Distinguish a missing code from an expired one.
		if err := tx.GetContext(ctx, &url, existsQuery, shortCode); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
			}

			return nil, fmt.Errorf("%s: failed to get row from urls table: %w", op, err)
		}

		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExpired)
	}

	if _, err := tx.ExecContext(ctx, clickQuery, url.ID); err != nil {
		return nil, fmt.Errorf("%s: failed to insert into url_clicks table: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	return url.toEntity(), nil
}

// Update replaces the long URL of an existing row.
func (r *URLRepository) Update(ctx context.Context, shortCode, longURL string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Update"
	const query = `UPDATE urls SET long_url = $1 WHERE short_code = $2 RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, longURL, shortCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update urls table row: %w", op, err)
	}

	return url.toEntity(), nil
}

// Remove deletes a row by short code. Click rows go with it via the
// foreign key cascade.
func (r *URLRepository) Remove(ctx context.Context, shortCode string) error {
	const op = "adapter.repository.postgres.URLRepository.Remove"
	const query = `DELETE FROM urls WHERE short_code = $1`

	res, err := r.db.ExecContext(ctx, query, shortCode)
	if err != nil {
		return fmt.Errorf("%s: failed to delete from urls table: %w", op, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to get number of affected rows: %w", op, err)
	}

	if rowsAffected != 1 {
		return fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
	}

	return nil
}

// ListByUser returns the user's URLs, newest-created-first.
func (r *URLRepository) ListByUser(ctx context.Context, userID int64) ([]entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.ListByUser"
	const query = `SELECT * FROM urls WHERE user_id = $1 ORDER BY created_at DESC`

	var urls []urlDB

	if err := r.db.SelectContext(ctx, &urls, query, userID); err != nil {
		return nil, fmt.Errorf("%s: failed to get rows from urls table: %w", op, err)
	}

	res := make([]entity.URL, 0, len(urls))
	for _, url := range urls {
		res = append(res, *url.toEntity())
	}

	return res, nil
}
