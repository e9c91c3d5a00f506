// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/desertthunder/refresh/internal/models"
)

// MockCatalog is a concurrency-safe test double for [services.Catalog].
type MockCatalog struct {
	Videos     []models.Video
	ListErr    error
	ProbeErrs  map[string]error          // Keyed by video URL; missing means available
	Results    map[string][]models.Video // Keyed by query
	SearchErrs map[string]error          // Keyed by query
	ProbeDelay time.Duration

	mu       sync.Mutex
	queries  []string
	probed   []string
	inFlight atomic.Int64
	peak     atomic.Int64
}

func (m *MockCatalog) ListPlaylist(ctx context.Context, playlistURL string) ([]models.Video, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Videos, nil
}

func (m *MockCatalog) Probe(ctx context.Context, videoURL string) error {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		peak := m.peak.Load()
		if n <= peak || m.peak.CompareAndSwap(peak, n) {
			break
		}
	}

	if m.ProbeDelay > 0 {
		time.Sleep(m.ProbeDelay)
	}

	m.mu.Lock()
	m.probed = append(m.probed, videoURL)
	m.mu.Unlock()

	return m.ProbeErrs[videoURL]
}

func (m *MockCatalog) Search(ctx context.Context, query string, limit int) ([]models.Video, error) {
	m.mu.Lock()
	m.queries = append(m.queries, fmt.Sprintf("%s#%d", query, limit))
	m.mu.Unlock()

	if err := m.SearchErrs[query]; err != nil {
		return nil, err
	}
	results := m.Results[query]
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Queries returns every search as "query#limit" in call order.
func (m *MockCatalog) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Probed returns every probed URL in call order.
func (m *MockCatalog) Probed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.probed...)
}

// PeakProbes returns the highest number of concurrent Probe calls observed.
func (m *MockCatalog) PeakProbes() int {
	return int(m.peak.Load())
}

// MockHistory is a concurrency-safe test double for [services.History].
type MockHistory struct {
	Snaps       map[string][]models.Snapshot // Keyed by video URL
	SnapsErr    error
	Content     map[string]string // Keyed by snapshot view URL
	ContentErrs map[string]error  // Keyed by snapshot view URL

	calls atomic.Int64
}

func (m *MockHistory) Snapshots(ctx context.Context, url string) ([]models.Snapshot, error) {
	m.calls.Add(1)
	if m.SnapsErr != nil {
		return nil, m.SnapsErr
	}
	return m.Snaps[url], nil
}

func (m *MockHistory) SnapshotContent(ctx context.Context, snapshot models.Snapshot) ([]byte, error) {
	m.calls.Add(1)
	if err := m.ContentErrs[snapshot.ViewURL]; err != nil {
		return nil, err
	}
	return []byte(m.Content[snapshot.ViewURL]), nil
}

// Calls returns the number of calls made to the history provider.
func (m *MockHistory) Calls() int {
	return int(m.calls.Load())
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// Watch builds a YouTube watch URL for id.
func Watch(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
