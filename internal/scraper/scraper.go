package scraper

import (
	"context"
	"errors"
)

var (
	ErrNoMatch     = errors.New("no matching game found")
	ErrFetchFailed = errors.New("failed to fetch detail page")
)

// Fetcher is the session-backed fetch capability both the resolver and the
// detail fetcher run on.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}
