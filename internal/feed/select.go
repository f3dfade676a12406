package feed

import (
	"encoding/json"

	"github.com/samber/lo"
)

// RawEntry is one upstream entry with its 1-based position in the feed.
type RawEntry struct {
	Rank int
	Raw  json.RawMessage
}

// Select returns the first limit entries of doc in upstream order.
// A nil document or a non-positive limit yields an empty slice.
func Select(doc *Document, limit int) []RawEntry {
	if doc == nil || limit <= 0 {
		return []RawEntry{}
	}

	top := lo.Slice(doc.entries, 0, limit)
	return lo.Map(top, func(raw json.RawMessage, i int) RawEntry {
		return RawEntry{Rank: i + 1, Raw: raw}
	})
}
