package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qepting91/showtime/internal/domain"
)

// Observer is told about every state change of every invocation.
type Observer func(from, to State)

type Option func(*Service)

// WithObserver installs a transition hook; it runs on the invocation's goroutine.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// Service runs fetch, decode, select, map and deliver for each Load call.
// It holds no per-invocation state, so concurrent Loads never interfere.
type Service struct {
	fetcher  domain.Fetcher
	log      *slog.Logger
	observer Observer
}

func NewService(fetcher domain.Fetcher, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{fetcher: fetcher, log: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ domain.Loader = (*Service)(nil)

// Load starts one invocation and returns immediately. The returned channel
// receives exactly one Result and is then closed. If ctx is cancelled before
// the feed response arrives, the channel is closed without a value.
func (s *Service) Load(ctx context.Context, req domain.FeedRequest) <-chan domain.Result {
	out := make(chan domain.Result, 1)
	go func() {
		defer close(out)
		if res, ok := s.run(ctx, req); ok {
			out <- res
		}
	}()
	return out
}

// LoadMovies is the callback form of Load. onComplete runs at most once, off
// the caller's goroutine, and never for a cancelled invocation.
func (s *Service) LoadMovies(ctx context.Context, limit int, onComplete func([]domain.Movie, error)) {
	ch := s.Load(ctx, domain.FeedRequest{Limit: limit})
	go func() {
		if res, ok := <-ch; ok {
			onComplete(res.Movies, res.Err)
		}
	}()
}

type invocation struct {
	svc   *Service
	state State
	log   *slog.Logger
}

func (inv *invocation) advance(to State) {
	if !canTransition(inv.state, to) {
		panic(fmt.Sprintf("feed: illegal transition %s -> %s", inv.state, to))
	}
	from := inv.state
	inv.state = to
	inv.log.Debug("pipeline transition", "from", from.String(), "to", to.String())
	if inv.svc.observer != nil {
		inv.svc.observer(from, to)
	}
}

func (inv *invocation) fail(err error) domain.Result {
	inv.advance(StateErrored)
	return domain.Result{Movies: []domain.Movie{}, Err: err}
}

func (s *Service) run(ctx context.Context, req domain.FeedRequest) (domain.Result, bool) {
	inv := &invocation{svc: s, state: StateIdle, log: s.log.With("limit", req.Limit)}

	if req.Limit < 0 {
		inv.log.Error("Rejected feed request", "err", ErrInvalidLimit)
		return inv.fail(fmt.Errorf("%w: %d", ErrInvalidLimit, req.Limit)), true
	}

	inv.advance(StateFetching)
	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, domain.ErrRequestNotSent) {
			inv.log.Info("Feed load cancelled before response", "err", err)
			inv.advance(StateErrored)
			return domain.Result{}, false
		}
		inv.log.Error("Feed fetch failed", "err", err)
		return inv.fail(&TransportError{Err: err}), true
	}

	inv.advance(StateDecoding)
	doc, err := Decode(raw)
	if err != nil {
		inv.log.Error("Feed decode failed", "err", err, "bytes", len(raw))
		return inv.fail(err), true
	}

	inv.advance(StateSelecting)
	selected := Select(doc, req.Limit)

	inv.advance(StateMapping)
	movies, skipped := MapEntries(selected)
	for _, e := range skipped {
		inv.log.Warn("Skipped feed entry", "err", e)
	}

	inv.advance(StateDelivered)
	inv.log.Info("Feed loaded", "available", doc.Len(), "delivered", len(movies), "skipped", len(skipped))
	return domain.Result{Movies: movies, Skipped: skipped}, true
}
