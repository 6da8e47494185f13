package scraper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	body       []byte
	err        error
	lastURL    string
	fetchCount int
}

func (f *fakeFetcher) Get(_ context.Context, rawURL string) ([]byte, error) {
	f.lastURL = rawURL
	f.fetchCount++
	return f.body, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func matchAnchor(name, href string) string {
	return `<a class="match match_app" href="` + href + `"><div class="match_name">` + name + `</div></a>`
}

func TestResolveSelectsBestMatch(t *testing.T) {
	body := matchAnchor("Half-Life 2 Episode One", "https://store.steampowered.com/app/380/") +
		matchAnchor("Half-Life 2", "https://store.steampowered.com/app/220/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	got, err := resolver.Resolve(context.Background(), "Half-Life 2")
	require.NoError(t, err)
	assert.Equal(t, "https://store.steampowered.com/app/220/", got)
}

func TestResolveExcludesCompanionProducts(t *testing.T) {
	// The soundtrack overlaps the query heavily but must never be selected.
	body := matchAnchor("Half-Life 2 Soundtrack", "https://store.steampowered.com/app/447/") +
		matchAnchor("Half-Life 2 Demo", "https://store.steampowered.com/app/219/") +
		matchAnchor("Half-Life 2", "https://store.steampowered.com/app/220/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	got, err := resolver.Resolve(context.Background(), "Half-Life 2")
	require.NoError(t, err)
	assert.Equal(t, "https://store.steampowered.com/app/220/", got)
}

func TestResolveOnlyCompanionsIsNoMatch(t *testing.T) {
	body := matchAnchor("Half-Life 2 Soundtrack", "https://store.steampowered.com/app/447/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Half-Life 2 Soundtrack")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolveScoreBelowThreshold(t *testing.T) {
	body := matchAnchor("Completely Different Title", "https://store.steampowered.com/app/999/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Half-Life 2")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolveTieKeepsFirstSeen(t *testing.T) {
	body := matchAnchor("Portal One", "https://store.steampowered.com/app/400/") +
		matchAnchor("Portal Two", "https://store.steampowered.com/app/620/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	got, err := resolver.Resolve(context.Background(), "Portal")
	require.NoError(t, err)
	assert.Equal(t, "https://store.steampowered.com/app/400/", got)
}

func TestResolveExpandsGOTY(t *testing.T) {
	body := matchAnchor("Batman: Arkham City - Game of the Year Edition", "https://store.steampowered.com/app/200260/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Batman: Arkham City GOTY")
	require.NoError(t, err)

	parsed, err := url.Parse(fetcher.lastURL)
	require.NoError(t, err)
	term := parsed.Query().Get("term")
	assert.Contains(t, term, "Game of the Year")
	assert.NotContains(t, term, "GOTY")
}

func TestResolveLanguageByScript(t *testing.T) {
	fetcher := &fakeFetcher{body: []byte(matchAnchor("Ведьмак 3", "https://store.steampowered.com/app/292030/"))}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Ведьмак 3")
	require.NoError(t, err)
	parsed, _ := url.Parse(fetcher.lastURL)
	assert.Equal(t, "russian", parsed.Query().Get("l"))

	fetcher.body = []byte(matchAnchor("Portal", "https://store.steampowered.com/app/400/"))
	_, err = resolver.Resolve(context.Background(), "Portal")
	require.NoError(t, err)
	parsed, _ = url.Parse(fetcher.lastURL)
	assert.Equal(t, "english", parsed.Query().Get("l"))
}

func TestResolveTransportErrorIsNoMatch(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Half-Life 2")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestResolveRejectsNonDetailURL(t *testing.T) {
	body := matchAnchor("Half-Life 2", "https://store.steampowered.com/sub/469/")
	fetcher := &fakeFetcher{body: []byte(body)}
	resolver := NewResolver(fetcher, 0.3, discard())

	_, err := resolver.Resolve(context.Background(), "Half-Life 2")
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestParseSuggestionsExcludesCreators(t *testing.T) {
	body := `<a class="match match_app match_creator" href="https://store.steampowered.com/developer/valve"><div class="match_name">Valve</div></a>` +
		matchAnchor("Half-Life 2", "https://store.steampowered.com/app/220/")

	candidates, err := parseSuggestions([]byte(body))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Half-Life 2", candidates[0].Name)
}
