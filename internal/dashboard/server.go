package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/qepting91/showtime/internal/domain"
	"github.com/qepting91/showtime/internal/feed"
)

// NewHandler serves one pipeline invocation per request.
func NewHandler(loader domain.Loader, defaultLimit int) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/movies.json", func(w http.ResponseWriter, r *http.Request) {
		movies, ok := load(w, r, loader, defaultLimit)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(movies); err != nil {
			slog.Error("Failed to encode movies", "err", err)
		}
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		movies, ok := load(w, r, loader, defaultLimit)
		if !ok {
			return
		}

		// 1. Ranked titles, first place tallest
		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Top Titles", Subtitle: "Top " + strconv.Itoa(len(movies))}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		var barX []string
		var barY []opts.BarData
		for i, m := range movies {
			barX = append(barX, fmt.Sprintf("#%d %s", m.Rank, m.Title))
			barY = append(barY, opts.BarData{Value: len(movies) - i})
		}
		bar.SetXAxis(barX).AddSeries("Chart points", barY)

		// 2. Artwork coverage
		pie := charts.NewPie()
		pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Artwork Coverage"}))

		withImage := 0
		for _, m := range movies {
			if m.HasImage() {
				withImage++
			}
		}
		pie.AddSeries("Movies", []opts.PieData{
			{Name: "With artwork", Value: withImage},
			{Name: "Without artwork", Value: len(movies) - withImage},
		})

		bar.Render(w)
		pie.Render(w)
	})

	return mux
}

// StartServer blocks serving the dashboard on port.
func StartServer(loader domain.Loader, defaultLimit int, port string) error {
	return http.ListenAndServe(":"+port, NewHandler(loader, defaultLimit))
}

func load(w http.ResponseWriter, r *http.Request, loader domain.Loader, defaultLimit int) ([]domain.Movie, bool) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return nil, false
		}
		limit = n
	}

	res, ok := <-loader.Load(r.Context(), domain.FeedRequest{Limit: limit})
	if !ok {
		// Client went away before the feed answered.
		http.Error(w, "request cancelled", http.StatusServiceUnavailable)
		return nil, false
	}

	if res.Err != nil {
		var te *feed.TransportError
		var de *feed.DecodeError
		switch {
		case errors.Is(res.Err, feed.ErrInvalidLimit):
			http.Error(w, res.Err.Error(), http.StatusBadRequest)
		case errors.As(res.Err, &te), errors.As(res.Err, &de):
			http.Error(w, res.Err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, res.Err.Error(), http.StatusInternalServerError)
		}
		return nil, false
	}
	return res.Movies, true
}
