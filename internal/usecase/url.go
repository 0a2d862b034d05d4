// Package usecase contains the business logic of the service: alias
// creation with collision retry, redirect click tracking, ownership
// checks and account management.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/shortly-app/shortly/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrMaxRetriesExceeded is returned when the maximum number of retries for generating a short code is exceeded.
var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

const shortCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// aliasPattern constrains user-supplied aliases: 3-10 chars, alphanumeric plus - and _.
var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,10}$`)

type urlRepository interface {
	Save(ctx context.Context, userID int64, shortCode, longURL, shortURL string, expiresAt time.Time) (*entity.URL, error)
	RetrieveByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveWithClicks(ctx context.Context, shortCode string) (*entity.URL, error)
	RetrieveAndRecordClick(ctx context.Context, shortCode string) (*entity.URL, error)
	Update(ctx context.Context, shortCode, longURL string) (*entity.URL, error)
	Remove(ctx context.Context, shortCode string) error
	ListByUser(ctx context.Context, userID int64) ([]entity.URL, error)
}

// URLUseCase implements alias creation, resolution and management on top
// of a URL repository.
type URLUseCase struct {
	baseURL         string
	shortCodeLength int
	urlTTL          time.Duration
	urlRepo         urlRepository
}

func NewURLUseCase(baseURL string, shortCodeLength int, urlTTL time.Duration, urlRepo urlRepository) *URLUseCase {
	return &URLUseCase{
		baseURL:         baseURL,
		shortCodeLength: shortCodeLength,
		urlTTL:          urlTTL,
		urlRepo:         urlRepo,
	}
}

// ShortenURL creates a new alias for longURL owned by userID. With a custom
// alias the pattern is checked and a taken alias is a conflict. Without one,
// random codes are drawn until the unique index accepts an insert; a
// collision means redraw, not failure. With 62^7 possible codes the expected
// number of retries is ~1 for any realistic table size.
func (uc *URLUseCase) ShortenURL(ctx context.Context, userID int64, longURL, customAlias string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"
	const maxRetries = 5

	expiresAt := time.Now().Add(uc.urlTTL)

	if customAlias != "" {
		if !aliasPattern.MatchString(customAlias) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidAlias)
		}

		url, err := uc.urlRepo.Save(ctx, userID, customAlias, longURL, uc.shortURL(customAlias), expiresAt)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to save alias: %w", op, err)
		}

		return url, nil
	}

	for i := 0; i < maxRetries; i++ {
		shortCode, err := gonanoid.Generate(shortCodeAlphabet, uc.shortCodeLength)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Save(ctx, userID, shortCode, longURL, uc.shortURL(shortCode), expiresAt)
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode returns the URL behind shortCode for redirecting and
// records the click. Expired codes are rejected without recording anything.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.RetrieveAndRecordClick(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	return url, nil
}

// GetURLStats returns the URL with its full click history. Expired URLs
// remain readable.
func (uc *URLUseCase) GetURLStats(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLStats"

	url, err := uc.urlRepo.RetrieveWithClicks(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url stats: %w", op, err)
	}

	return url, nil
}

// GetURLInfo returns the URL without its click history, for the public
// info endpoint.
func (uc *URLUseCase) GetURLInfo(ctx context.Context, shortCode string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.GetURLInfo"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url info: %w", op, err)
	}

	return url, nil
}

// ListUserURLs returns the user's URLs, newest first.
func (uc *URLUseCase) ListUserURLs(ctx context.Context, userID int64) ([]entity.URL, error) {
	const op = "usecase.URLUseCase.ListUserURLs"

	urls, err := uc.urlRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list user urls: %w", op, err)
	}

	return urls, nil
}

// ModifyURL replaces the destination of shortCode. Only the owner may
// modify, and only while the URL is not expired.
func (uc *URLUseCase) ModifyURL(ctx context.Context, userID int64, shortCode, longURL string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ModifyURL"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve url: %w", op, err)
	}

	if url.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrNotURLOwner)
	}

	if url.Expired(time.Now()) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExpired)
	}

	url, err = uc.urlRepo.Update(ctx, shortCode, longURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to modify url: %w", op, err)
	}

	return url, nil
}

// DeactivateURL deletes shortCode. Only the owner may delete; expired
// URLs can still be deleted.
func (uc *URLUseCase) DeactivateURL(ctx context.Context, userID int64, shortCode string) error {
	const op = "usecase.URLUseCase.DeactivateURL"

	url, err := uc.urlRepo.RetrieveByShortCode(ctx, shortCode)
	if err != nil {
		return fmt.Errorf("%s: failed to retrieve url: %w", op, err)
	}

	if url.UserID != userID {
		return fmt.Errorf("%s: %w", op, entity.ErrNotURLOwner)
	}

	if err := uc.urlRepo.Remove(ctx, shortCode); err != nil {
		return fmt.Errorf("%s: failed to deactivate url: %w", op, err)
	}

	return nil
}

func (uc *URLUseCase) shortURL(shortCode string) string {
	return uc.baseURL + "/" + shortCode
}
