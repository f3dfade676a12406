package collector

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/qepting91/showtime/internal/config"
	"github.com/qepting91/showtime/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultFeedURL is the public top-movies feed.
const DefaultFeedURL = config.DefaultFeedURL

// PublicClient performs one unauthenticated GET per Fetch against a fixed feed URL.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	feedURL    string
	userAgent  string
}

// StatusError is returned when the feed answers with a non-2xx status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed %s returned status %d", e.URL, e.StatusCode)
}

func NewPublicClient(feedURL, userAgent string, minInterval time.Duration) (*PublicClient, error) {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	// Validate once here so Fetch never hits a malformed URL at request time.
	if _, err := http.NewRequest(http.MethodGet, feedURL, nil); err != nil {
		return nil, fmt.Errorf("invalid feed url %q: %w", feedURL, err)
	}

	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &PublicClient{
		// Platform default: no client timeout beyond what the transport applies.
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(limit, 1),
		feedURL:    feedURL,
		userAgent:  userAgent,
	}, nil
}

// URL returns the endpoint this client fetches.
func (pc *PublicClient) URL() string {
	return pc.feedURL
}

func (pc *PublicClient) Fetch(ctx context.Context) ([]byte, error) {
	if err := pc.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRequestNotSent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.feedURL, nil)
	if err != nil {
		return nil, err
	}
	if pc.userAgent != "" {
		req.Header.Set("User-Agent", pc.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			slog.Debug("Failed to drain feed response", "url", pc.feedURL, "err", err)
		}
		return nil, &StatusError{URL: pc.feedURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	return body, nil
}
