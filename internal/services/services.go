// package services defines the external providers used by the refresh pipeline
//
// Catalog (yt-dlp), History (Wayback Machine)
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/shared"
)

// Catalog lists, probes and searches videos.
type Catalog interface {
	// ListPlaylist returns the flat metadata listing of a playlist without fetching any video.
	ListPlaylist(ctx context.Context, playlistURL string) ([]models.Video, error)

	// Probe simulates fetching a video.
	//
	// Returns nil when the video is reachable, an [*UnavailableError] when the catalog confirms it is gone,
	// and an error wrapping [shared.ErrProbeInconclusive] when availability could not be determined.
	Probe(ctx context.Context, videoURL string) error

	// Search returns at most limit videos matching query.
	Search(ctx context.Context, query string, limit int) ([]models.Video, error)
}

// History lists and fetches archived snapshots of a URL.
type History interface {
	// Snapshots returns every capture of url in the order the archive reports them (oldest first).
	Snapshots(ctx context.Context, url string) ([]models.Snapshot, error)

	// SnapshotContent returns the raw archived document.
	SnapshotContent(ctx context.Context, snapshot models.Snapshot) ([]byte, error)
}

// UnavailableError is returned by [Catalog.Probe] when the catalog confirms a video is gone.
type UnavailableError struct {
	URL    string
	Reason string // Catalog supplied explanation, may be empty
}

func (e *UnavailableError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %v", e.URL, shared.ErrVideoUnavailable)
	}
	return fmt.Sprintf("%s: %v: %s", e.URL, shared.ErrVideoUnavailable, e.Reason)
}

func (e *UnavailableError) Unwrap() error {
	return shared.ErrVideoUnavailable
}

// UnavailableReason extracts the reason from err when it is an [*UnavailableError].
func UnavailableReason(err error) (string, bool) {
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return ue.Reason, true
	}
	return "", false
}
