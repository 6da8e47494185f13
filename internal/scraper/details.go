package scraper

import (
	"context"
	"log/slog"

	"github.com/stmdev/steam-game-scraper/internal/models"
	"github.com/stmdev/steam-game-scraper/internal/parser"
)

// DetailFetcher retrieves a resolved detail page and runs the full field
// extractor set against it.
type DetailFetcher struct {
	fetcher Fetcher
	parser  *parser.SteamParser
	logger  *slog.Logger
}

func NewDetailFetcher(fetcher Fetcher, p *parser.SteamParser, logger *slog.Logger) *DetailFetcher {
	return &DetailFetcher{
		fetcher: fetcher,
		parser:  p,
		logger:  logger,
	}
}

// Fetch returns one FieldValue per declared field. Transport and markup
// failures come back as ErrFetchFailed; individual field failures do not,
// they degrade inside the returned map.
func (d *DetailFetcher) Fetch(ctx context.Context, detailURL string) (map[models.FieldID]models.FieldValue, error) {
	body, err := d.fetcher.Get(ctx, detailURL)
	if err != nil {
		d.logger.Error("detail page request failed", "url", detailURL, "error", err)
		return nil, ErrFetchFailed
	}

	doc, err := parser.ParsePage(string(body))
	if err != nil {
		d.logger.Error("failed to parse detail page", "url", detailURL, "error", err)
		return nil, ErrFetchFailed
	}

	return d.parser.ExtractFields(doc, detailURL), nil
}
