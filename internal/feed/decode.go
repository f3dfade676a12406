package feed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a decoded feed payload. It is read-only and only navigated by Select.
type Document struct {
	entries []json.RawMessage
}

// Len returns the number of entries the upstream published.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

type rawDocument struct {
	Feed *struct {
		Entry json.RawMessage `json:"entry"`
	} `json:"feed"`
}

// Decode parses the raw payload strictly. A missing or non-object "feed"
// is a DecodeError; a missing or null "feed.entry" is an empty document.
func Decode(raw []byte) (*Document, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var doc rawDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if doc.Feed == nil {
		return nil, &DecodeError{Err: errors.New(`missing "feed" object`)}
	}

	entries, err := asList(doc.Feed.Entry)
	if err != nil {
		return nil, &DecodeError{Err: fmt.Errorf(`"feed.entry": %w`, err)}
	}
	return &Document{entries: entries}, nil
}

// asList normalises a JSON value that upstream emits either as an array or,
// when it holds exactly one item, as a bare object.
func asList(raw json.RawMessage) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		return list, nil
	case '{':
		return []json.RawMessage{trimmed}, nil
	default:
		return nil, fmt.Errorf("expected array or object, got %.20s", trimmed)
	}
}
