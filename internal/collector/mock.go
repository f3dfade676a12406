package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// MockClient implements domain.Fetcher but serves a generated feed
type MockClient struct {
	Entries int
	Latency time.Duration
}

func NewMockClient() *MockClient {
	// Simulate network latency (nice for testing concurrency)
	return &MockClient{Entries: 25, Latency: 300 * time.Millisecond}
}

func (mc *MockClient) Fetch(ctx context.Context) ([]byte, error) {
	if mc.Latency > 0 {
		t := time.NewTimer(mc.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return MockFeed(mc.Entries), nil
}

// MockFeed builds a payload shaped like the public feed with n ranked entries.
func MockFeed(n int) []byte {
	type label struct {
		Label string `json:"label"`
	}
	type image struct {
		Label      string            `json:"label"`
		Attributes map[string]string `json:"attributes"`
	}
	type entry struct {
		Name    label   `json:"im:name"`
		Image   []image `json:"im:image"`
		Summary label   `json:"summary"`
		Artist  label   `json:"im:artist"`
	}

	n = max(n, 0)
	entries := make([]entry, 0, n)
	for i := 1; i <= n; i++ {
		entries = append(entries, entry{
			Name: label{Label: fmt.Sprintf("Simulated Blockbuster #%d", i)},
			Image: []image{
				{Label: fmt.Sprintf("http://localhost/mock/%d/60x60.jpg", i), Attributes: map[string]string{"height": "60"}},
				{Label: fmt.Sprintf("http://localhost/mock/%d/170x170.jpg", i), Attributes: map[string]string{"height": "170"}},
			},
			Summary: label{Label: "A simulated movie used for local runs."},
			Artist:  label{Label: "Simulated Director"},
		})
	}

	doc := map[string]any{"feed": map[string]any{"entry": entries}}
	b, _ := json.Marshal(doc)
	return b
}
