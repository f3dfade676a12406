package feed

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/qepting91/showtime/internal/domain"
	"github.com/samber/lo"
)

type label struct {
	Label string `json:"label"`
}

type image struct {
	Label      string `json:"label"`
	Attributes struct {
		Height string `json:"height"`
	} `json:"attributes"`
}

type link struct {
	Attributes struct {
		Rel  string `json:"rel"`
		Href string `json:"href"`
	} `json:"attributes"`
}

// MapEntry converts one raw entry into a Movie. Only the title is required;
// every other field is decoded on its own and left empty when absent or malformed.
func MapEntry(e RawEntry) (domain.Movie, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Raw, &fields); err != nil {
		return domain.Movie{}, &MappingError{Rank: e.Rank, Field: "entry", Err: err}
	}

	var name label
	if err := json.Unmarshal(fields["im:name"], &name); err != nil || strings.TrimSpace(name.Label) == "" {
		return domain.Movie{}, &MappingError{Rank: e.Rank, Field: "im:name.label"}
	}

	m := domain.Movie{
		Rank:     e.Rank,
		Title:    strings.TrimSpace(name.Label),
		ImageURL: bestImage(fields["im:image"]),
		Summary:  labelOf(fields["summary"]),
		Director: labelOf(fields["im:artist"]),
		Price:    labelOf(fields["im:price"]),
		Rights:   labelOf(fields["rights"]),
		Link:     alternateLink(fields["link"]),
	}

	var id struct {
		Attributes struct {
			ID string `json:"im:id"`
		} `json:"attributes"`
	}
	if json.Unmarshal(fields["id"], &id) == nil {
		m.ID = id.Attributes.ID
	}

	var category struct {
		Attributes struct {
			Label string `json:"label"`
		} `json:"attributes"`
	}
	if json.Unmarshal(fields["category"], &category) == nil {
		m.Category = category.Attributes.Label
	}

	if released, err := time.Parse(time.RFC3339, labelOf(fields["im:releaseDate"])); err == nil {
		m.ReleaseDate = &released
	}

	return m, nil
}

// MapEntries maps every entry, skipping the ones that fail. Order is preserved
// and skipped entries do not shift the rank of the others.
func MapEntries(entries []RawEntry) ([]domain.Movie, []error) {
	var skipped []error
	movies := lo.FilterMap(entries, func(e RawEntry, _ int) (domain.Movie, bool) {
		m, err := MapEntry(e)
		if err != nil {
			skipped = append(skipped, err)
			return domain.Movie{}, false
		}
		return m, true
	})
	return movies, skipped
}

func labelOf(raw json.RawMessage) string {
	var l label
	if len(raw) == 0 || json.Unmarshal(raw, &l) != nil {
		return ""
	}
	return strings.TrimSpace(l.Label)
}

// bestImage picks the tallest variant. Heights are trusted only when every
// usable variant carries one; otherwise the last variant wins, since upstream
// lists them smallest first.
func bestImage(raw json.RawMessage) string {
	list, err := asList(raw)
	if err != nil {
		return ""
	}

	var urls []string
	var heights []int
	allHeights := true
	for _, item := range list {
		var img image
		if json.Unmarshal(item, &img) != nil {
			continue
		}
		url := strings.TrimSpace(img.Label)
		if url == "" {
			continue
		}
		height, err := strconv.Atoi(strings.TrimSpace(img.Attributes.Height))
		if err != nil {
			allHeights = false
		}
		urls = append(urls, url)
		heights = append(heights, height)
	}

	if len(urls) == 0 {
		return ""
	}
	if !allHeights {
		return urls[len(urls)-1]
	}

	best := 0
	for i, h := range heights {
		if h >= heights[best] {
			best = i
		}
	}
	return urls[best]
}

func alternateLink(raw json.RawMessage) string {
	list, err := asList(raw)
	if err != nil {
		return ""
	}

	first := ""
	for _, item := range list {
		var l link
		if json.Unmarshal(item, &l) != nil || l.Attributes.Href == "" {
			continue
		}
		if l.Attributes.Rel == "alternate" {
			return l.Attributes.Href
		}
		if first == "" {
			first = l.Attributes.Href
		}
	}
	return first
}
