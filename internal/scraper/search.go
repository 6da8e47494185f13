package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/stmdev/steam-game-scraper/internal/similarity"
)

const (
	suggestURL      = "https://store.steampowered.com/search/suggest"
	detailPathToken = "store.steampowered.com/app/"

	// Fixed client version and regional context the suggest API expects.
	suggestVersion = "31137119"
	suggestRegion  = "KZ"
)

// Companion products that share most of the base game's name but are never
// the page we want.
var companionMarkers = []string{"soundtrack", "ost", "demo"}

// SearchCandidate is one suggest entry: a display name and the store URL it
// points at.
type SearchCandidate struct {
	Name string
	URL  string
}

// MatchResult pairs the accepted detail URL with the similarity score that
// selected it. URL is empty when nothing cleared the threshold.
type MatchResult struct {
	URL   string
	Score float64
}

// Resolver finds the store detail page for a game name via the search
// suggest endpoint. MinScore is the acceptance threshold for the best
// candidate's similarity score.
type Resolver struct {
	fetcher  Fetcher
	logger   *slog.Logger
	MinScore float64
}

func NewResolver(fetcher Fetcher, minScore float64, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		logger:   logger,
		MinScore: minScore,
	}
}

// Resolve returns the detail URL for a game name, or ErrNoMatch when no
// candidate is good enough. Transport errors are logged and reported as
// ErrNoMatch so a single unresolved name never aborts a batch.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	query := expandAbbreviations(name)

	body, err := r.fetcher.Get(ctx, buildSuggestURL(query, searchLanguage(name)))
	if err != nil {
		r.logger.Error("search request failed", "name", name, "error", err)
		return "", ErrNoMatch
	}

	candidates, err := parseSuggestions(body)
	if err != nil {
		r.logger.Error("failed to parse search response", "name", name, "error", err)
		return "", ErrNoMatch
	}
	if len(candidates) == 0 {
		r.logger.Warn("no game matches found", "name", query)
		return "", ErrNoMatch
	}

	match := r.selectBest(query, candidates)
	if match.URL == "" {
		r.logger.Warn("no good match found", "name", query, "best_score", fmt.Sprintf("%.2f", match.Score))
		return "", ErrNoMatch
	}
	if !strings.Contains(match.URL, detailPathToken) {
		r.logger.Warn("matched URL is not a detail page", "name", query, "url", match.URL)
		return "", ErrNoMatch
	}

	r.logger.Info("found store URL", "name", query, "url", match.URL, "score", fmt.Sprintf("%.2f", match.Score))
	return match.URL, nil
}

// selectBest scores every eligible candidate and keeps the strictly highest;
// an exact tie keeps the first seen. Companion products are ineligible
// regardless of their score, as is anything at or below MinScore.
func (r *Resolver) selectBest(query string, candidates []SearchCandidate) MatchResult {
	var best MatchResult
	for _, candidate := range candidates {
		score := similarity.Score(query, candidate.Name)
		if score <= r.MinScore || isCompanionProduct(candidate.Name) {
			continue
		}
		if score > best.Score {
			best = MatchResult{URL: candidate.URL, Score: score}
		}
	}
	return best
}

func isCompanionProduct(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range companionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// searchLanguage picks the localized results language: Cyrillic names search
// the Russian store, everything else the English one.
func searchLanguage(name string) string {
	for _, r := range name {
		if unicode.Is(unicode.Cyrillic, r) {
			return "russian"
		}
	}
	return "english"
}

func expandAbbreviations(name string) string {
	if strings.Contains(name, "GOTY") {
		name = strings.TrimSpace(strings.ReplaceAll(name, "GOTY", "Game of the Year"))
	}
	return name
}

func buildSuggestURL(query, language string) string {
	params := url.Values{}
	params.Set("term", query)
	params.Set("f", "games")
	params.Set("cc", suggestRegion)
	params.Set("realm", "1")
	params.Set("l", language)
	params.Set("v", suggestVersion)
	params.Set("use_store_query", "1")
	params.Set("use_search_spellcheck", "1")
	params.Set("search_creators_and_tags", "1")
	return suggestURL + "?" + params.Encode()
}

// parseSuggestions reads the suggest response markup: one anchor per match,
// classed match_app for products and match_creator for creator pages, which
// are excluded.
func parseSuggestions(body []byte) ([]SearchCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse suggest markup: %w", err)
	}

	var candidates []SearchCandidate
	doc.Find("a.match_app").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("match_creator") {
			return
		}
		name := strings.TrimSpace(s.Find("div.match_name").First().Text())
		href, _ := s.Attr("href")
		if name == "" || href == "" {
			return
		}
		candidates = append(candidates, SearchCandidate{Name: name, URL: href})
	})
	return candidates, nil
}
