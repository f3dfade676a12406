package collector

import (
	"fmt"

	"github.com/qepting91/showtime/internal/config"
	"github.com/qepting91/showtime/internal/domain"
)

// NewFetcher selects the correct implementation based on the collector mode
func NewFetcher(cfg config.Config) (domain.Fetcher, error) {
	switch cfg.Mode {
	case config.ModePublic, "":
		if cfg.UserAgent == "" {
			return nil, fmt.Errorf("FEED_USER_AGENT is required for public mode")
		}
		return NewPublicClient(cfg.FeedURL, cfg.UserAgent, cfg.MinInterval)
	case config.ModeMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'public' or 'mock')", cfg.Mode)
	}
}
