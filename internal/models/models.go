// package models defines the data model for the playlist refresh pipeline
package models

import "strings"

// Video describes one catalog entry. Title and Channel are empty when the catalog no longer
// exposes metadata for the entry.
type Video struct {
	URL     string // Opaque locator, unique within a playlist listing
	ID      string // Catalog identifier, optional
	Title   string
	Channel string
}

// HasMetadata reports whether both title and channel are still known.
func (v Video) HasMetadata() bool {
	return v.Title != "" && v.Channel != ""
}

// SameAs reports whether o refers to the same catalog entry as v.
func (v Video) SameAs(o Video) bool {
	if v.URL != "" && v.URL == o.URL {
		return true
	}
	return v.ID != "" && v.ID == o.ID
}

// String renders the known fields, e.g. "Title: 'x', Channel: 'y', URL: z".
func (v Video) String() string {
	var b strings.Builder
	if v.Title != "" {
		b.WriteString("Title: '" + v.Title + "', ")
	}
	if v.Channel != "" {
		b.WriteString("Channel: '" + v.Channel + "', ")
	}
	b.WriteString("URL: " + v.URL)
	return b.String()
}

// Snapshot is one archived capture of a page.
type Snapshot struct {
	URL        string // Original locator that was captured
	ViewURL    string // Human-facing archive URL
	Timestamp  string
	StatusCode int
}

// OK reports whether the archived response was a 200.
func (s Snapshot) OK() bool {
	return s.StatusCode == 200
}

// ProbeFailure records a video whose availability could not be determined.
type ProbeFailure struct {
	Video Video
	Err   error
}
