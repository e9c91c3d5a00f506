package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/services"
	"github.com/desertthunder/refresh/internal/shared"
)

// DefaultWorkers is the concurrency ceiling of both pipeline stages.
const DefaultWorkers = 10

// CheckResult partitions a playlist by availability.
//
// Every checked video is either available (not listed), in Unavailable, or in Inconclusive.
type CheckResult struct {
	Unavailable  []models.Video        // Confirmed gone, in completion order
	Reasons      map[string]string     // Catalog explanation keyed by video URL
	Inconclusive []models.ProbeFailure // Could not be checked
	Checked      int                   // Number of probes completed
}

// Prober checks video availability against a [services.Catalog].
type Prober struct {
	catalog services.Catalog
	workers int
	logger  *log.Logger
}

// NewProber creates a Prober running at most workers probes at once.
func NewProber(catalog services.Catalog, workers int, logger *log.Logger) *Prober {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Prober{catalog: catalog, workers: workers, logger: logger}
}

// Probe reports whether video can still be fetched.
//
// A confirmed unavailable video returns false with an error wrapping [shared.ErrVideoUnavailable].
// When availability cannot be determined the error wraps [shared.ErrProbeInconclusive] instead.
func (p *Prober) Probe(ctx context.Context, video models.Video) (bool, error) {
	err := p.catalog.Probe(ctx, video.URL)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, shared.ErrVideoUnavailable), errors.Is(err, shared.ErrProbeInconclusive):
		return false, err
	default:
		return false, fmt.Errorf("%w: %w", shared.ErrProbeInconclusive, err)
	}
}

type probeOutcome struct {
	video     models.Video
	available bool
	err       error
}

// CheckAll probes every video and waits for all probes to finish.
func (p *Prober) CheckAll(ctx context.Context, videos []models.Video, progress chan<- ProgressUpdate) *CheckResult {
	result := &CheckResult{Reasons: make(map[string]string)}

	outcomes := fanOut(ctx, p.workers, videos, func(ctx context.Context, v models.Video) probeOutcome {
		available, err := p.Probe(ctx, v)
		return probeOutcome{video: v, available: available, err: err}
	})

	for o := range outcomes {
		result.Checked++

		switch {
		case o.available:
		case errors.Is(o.err, shared.ErrVideoUnavailable):
			result.Unavailable = append(result.Unavailable, o.video)
			if reason, ok := services.UnavailableReason(o.err); ok && reason != "" {
				result.Reasons[o.video.URL] = reason
			}
		default:
			p.logger.Warn("availability check inconclusive", "url", o.video.URL, "err", o.err)
			result.Inconclusive = append(result.Inconclusive, models.ProbeFailure{Video: o.video, Err: o.err})
		}

		sendProgress(progress, checkedUpdate(result.Checked, len(videos), o.video, o.available))
	}

	p.logger.Info("availability check finished",
		"checked", result.Checked,
		"unavailable", len(result.Unavailable),
		"inconclusive", len(result.Inconclusive),
	)
	return result
}
