package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/stmdev/steam-game-scraper/internal/config"
)

const (
	storeBaseURL = "https://store.steampowered.com"
	accountURL   = storeBaseURL + "/account/"
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var ErrBadStatus = errors.New("unexpected response status")

// Client is the fetch collaborator: a single HTTP session with store cookies
// configured once at startup and reused for every request.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	authed     bool
}

func NewClient(cfg config.SessionConfig, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
		logger: logger,
	}
	c.setupCookies(cfg)

	return c, nil
}

// setupCookies loads the store session cookies from config. Missing
// authentication cookies degrade to an unauthenticated, age-gated session.
func (c *Client) setupCookies(cfg config.SessionConfig) {
	if cfg.SessionID == "" || cfg.LoginSecure == "" {
		c.logger.Warn("session cookies not configured, running without authentication")
		return
	}

	cookies := []*http.Cookie{
		{Name: "sessionid", Value: cfg.SessionID},
		{Name: "steamLoginSecure", Value: cfg.LoginSecure},
		{Name: "lastagecheckage", Value: cfg.LastAgeCheckAge},
		{Name: "birthtime", Value: cfg.BirthTime},
		{Name: "wants_mature_content", Value: cfg.WantsMatureContent},
	}
	if cfg.Parental != "" {
		cookies = append(cookies, &http.Cookie{Name: "steamparental", Value: cfg.Parental})
	}
	if cfg.Language != "" {
		cookies = append(cookies, &http.Cookie{Name: "Steam_Language", Value: cfg.Language})
	}
	if cfg.TimezoneOffset != "" {
		cookies = append(cookies, &http.Cookie{Name: "timezoneOffset", Value: cfg.TimezoneOffset})
	}

	baseURL, _ := url.Parse(storeBaseURL)
	c.httpClient.Jar.SetCookies(baseURL, cookies)
	c.authed = true
	c.logger.Info("session cookies loaded")
}

// Get fetches a URL within the session and returns the response body. A
// non-2xx status is reported as ErrBadStatus.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d for %s", ErrBadStatus, resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// CheckAuth probes the account page to verify the configured session is still
// valid. Non-fatal: the result is only logged so an expired session is
// visible before a long run.
func (c *Client) CheckAuth(ctx context.Context) bool {
	if !c.authed {
		return false
	}

	if _, err := c.Get(ctx, accountURL); err != nil {
		c.logger.Warn("authentication probe failed, cookies may be expired", "error", err)
		return false
	}
	c.logger.Info("authentication probe successful")
	return true
}
