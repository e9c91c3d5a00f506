package tasks

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/services"
	"github.com/desertthunder/refresh/internal/shared"
)

const (
	metadataSearchResults = 3 // per query, two queries
	historySearchResults  = 6
)

// Resolver looks for replacements of unavailable videos.
type Resolver struct {
	catalog services.Catalog
	history services.History
	workers int
	logger  *log.Logger
}

// NewResolver creates a Resolver running at most workers resolutions at once.
func NewResolver(catalog services.Catalog, history services.History, workers int, logger *log.Logger) *Resolver {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{catalog: catalog, history: history, workers: workers, logger: logger}
}

// ResolveAll resolves every video concurrently.
//
// The returned channel yields exactly one [models.Result] per video in completion order and is
// closed after the last one.
func (r *Resolver) ResolveAll(ctx context.Context, videos []models.Video, progress chan<- ProgressUpdate) <-chan models.Result {
	var done atomic.Int64
	total := len(videos)

	return fanOut(ctx, r.workers, videos, func(ctx context.Context, v models.Video) models.Result {
		res := r.Resolve(ctx, v)
		sendProgress(progress, resolvedUpdate(int(done.Add(1)), total, res))
		return res
	})
}

// Resolve produces the [models.Result] for one unavailable video.
//
// Videos that still have a title and channel are resolved by catalog search; all others go
// through the archive.
func (r *Resolver) Resolve(ctx context.Context, video models.Video) models.Result {
	if video.HasMetadata() {
		return r.fromMetadata(ctx, video)
	}
	return r.fromHistory(ctx, video)
}

// fromMetadata searches by title, then by title and channel, and keeps both result lists.
func (r *Resolver) fromMetadata(ctx context.Context, video models.Video) models.Result {
	var candidates []models.Video
	var searchErr error

	for _, query := range []string{video.Title, video.Title + " " + video.Channel} {
		found, err := r.catalog.Search(ctx, query, metadataSearchResults)
		if err != nil {
			r.logger.Warn("search failed", "url", video.URL, "query", query, "err", err)
			searchErr = errors.Join(searchErr, err)
			continue
		}
		candidates = append(candidates, found...)
	}

	return models.Success{
		Video:      video,
		Candidates: withoutSubject(video, candidates),
		Source:     models.FromMetadata{},
		SearchErr:  searchErr,
	}
}

// fromHistory walks the archived snapshots in the archive's order and searches with the first
// usable page title.
func (r *Resolver) fromHistory(ctx context.Context, video models.Video) models.Result {
	snapshots, err := r.history.Snapshots(ctx, video.URL)
	if err != nil {
		r.logger.Warn("archive lookup failed", "url", video.URL, "err", err)
		snapshots = nil
	}

	var found string
	for _, snap := range snapshots {
		if !snap.OK() {
			continue
		}
		found = snap.ViewURL

		content, err := r.history.SnapshotContent(ctx, snap)
		if err != nil {
			r.logger.Warn("snapshot fetch failed", "url", video.URL, "snapshot", snap.ViewURL, "err", err)
			continue
		}

		raw, ok := services.PageTitle(content)
		if !ok {
			continue
		}

		title := NormalizeTitle(raw)
		if title == "" {
			continue
		}

		// The raw title is the query; the cleaned one is only reported.
		candidates, err := r.catalog.Search(ctx, raw, historySearchResults)
		if err != nil {
			r.logger.Warn("search failed", "url", video.URL, "query", raw, "err", err)
		}

		return models.Success{
			Video:      video,
			Candidates: withoutSubject(video, candidates),
			Source: models.FromHistory{
				SnapshotURL: snap.ViewURL,
				Timestamp:   snap.Timestamp,
				Title:       title,
			},
			SearchErr: err,
		}
	}

	if found != "" {
		return models.NoTitleFailure{Video: video, SnapshotURL: found}
	}
	return models.NotArchivedFailure{Video: video}
}

func withoutSubject(subject models.Video, candidates []models.Video) []models.Video {
	kept := make([]models.Video, 0, len(candidates))
	for _, c := range candidates {
		if c.SameAs(subject) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
