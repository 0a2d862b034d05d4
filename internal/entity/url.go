// Package entity defines the entities and errors used in the application.
// It includes the URL and User structs along with the sentinel errors the
// business and repository layers exchange.
package entity

import (
	"errors"
	"time"
)

var (
	// ErrShortCodeExists is returned when attempting to create a URL with a short code that already exists.
	ErrShortCodeExists = errors.New("short code exists")
	// ErrURLNotFound is returned when a URL with the specified short code cannot be found.
	ErrURLNotFound = errors.New("url not found")
	// ErrURLExpired is returned when the URL exists but its expiry instant has passed.
	ErrURLExpired = errors.New("url expired")
	// ErrInvalidAlias is returned when a requested custom alias doesn't match the allowed pattern.
	ErrInvalidAlias = errors.New("invalid custom alias")
	// ErrNotURLOwner is returned when a user tries to mutate a URL they don't own.
	ErrNotURLOwner = errors.New("not url owner")
)

// URL represents a shortened URL.
type URL struct {
	ID        int64     // ID is the unique identifier of the URL in the database.
	ShortCode string    // ShortCode is the code used in place of the long URL; unique and immutable.
	LongURL   string    // LongURL is the destination the short code resolves to.
	ShortURL  string    // ShortURL is the full short link (base URL + short code), fixed at creation.
	UserID    int64     // UserID references the owning user.
	URLStats            // URLStats contains click statistics about the URL.
	CreatedAt time.Time // CreatedAt is the timestamp when the URL was created.
	ExpiresAt time.Time // ExpiresAt is the instant after which redirects and edits are rejected.
}

// URLStats contains click statistics related to a shortened URL.
type URLStats struct {
	Clicks          int64       // Clicks is the number of times the short URL has been followed.
	ClickTimestamps []time.Time // ClickTimestamps holds one instant per recorded click, in order.
}

// Expired reports whether the URL's expiry instant has passed at the given time.
func (u *URL) Expired(now time.Time) bool {
	return !u.ExpiresAt.After(now)
}
