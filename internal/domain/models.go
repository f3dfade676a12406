package domain

import (
	"context"
	"errors"
	"time"
)

// FeedRequest is the per-invocation input of the pipeline
type FeedRequest struct {
	Limit int
}

// Movie is the clean record handed to callers. Rank is the 1-based upstream position.
type Movie struct {
	Rank        int        `json:"rank"`
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	ImageURL    string     `json:"image_url,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	Director    string     `json:"director,omitempty"`
	Category    string     `json:"category,omitempty"`
	ReleaseDate *time.Time `json:"release_date,omitempty"`
	Price       string     `json:"price,omitempty"`
	Rights      string     `json:"rights,omitempty"`
	Link        string     `json:"link,omitempty"`
}

// HasImage reports whether any artwork variant was available upstream.
func (m Movie) HasImage() bool {
	return m.ImageURL != ""
}

// Result is the single value delivered for one pipeline invocation.
// Err is set on transport or decode failure, in which case Movies is empty.
type Result struct {
	Movies  []Movie
	Skipped []error
	Err     error
}

// ErrRequestNotSent marks a fetch that gave up before any request went out,
// because ctx would expire first. Callers treat it like cancellation.
var ErrRequestNotSent = errors.New("request not sent")

// Fetcher defines the interface for raw feed retrieval
type Fetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Loader is the externally callable pipeline.
type Loader interface {
	Load(ctx context.Context, req FeedRequest) <-chan Result
}
