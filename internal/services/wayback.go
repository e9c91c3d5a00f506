// Wayback Machine [History] implementation
//
// Snapshots come from the CDX API; content is fetched as the raw memento (the "id_" flag) so the
// archive toolbar is not injected into the page.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultCDXURL  = "https://web.archive.org/cdx/search/cdx"
	defaultWebURL  = "https://web.archive.org/web"
	cdxTimeLayout  = "20060102150405"
	snapshotLayout = "2006-01-02 15:04:05"
)

// WaybackOpts contains configuration for [WaybackService].
type WaybackOpts struct {
	CDXURL            string
	WebURL            string
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables rate limiting
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// WaybackService implements [History] for the Internet Archive's Wayback Machine.
type WaybackService struct {
	cdxURL     string
	webURL     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
}

// NewWaybackService creates a new Wayback Machine client.
func NewWaybackService(opts WaybackOpts) *WaybackService {
	if opts.CDXURL == "" {
		opts.CDXURL = defaultCDXURL
	}
	if opts.WebURL == "" {
		opts.WebURL = defaultWebURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &WaybackService{
		cdxURL:     opts.CDXURL,
		webURL:     strings.TrimRight(opts.WebURL, "/"),
		timeout:    opts.Timeout,
		limiter:    rate.NewLimiter(limit, 1),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

func (w *WaybackService) doRequest(ctx context.Context, apiURL string) ([]byte, error) {
	if err := w.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrHistoryUnreachable, err)
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", shared.ErrHistoryUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w: status %d", shared.ErrHistoryUnreachable, shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrHistoryUnreachable, err)
	}
	return body, nil
}

// Snapshots queries the CDX API for every capture of target.
//
// Calls GET {cdx}?url={target}&output=json&fl=original,timestamp,statuscode
func (w *WaybackService) Snapshots(ctx context.Context, target string) ([]models.Snapshot, error) {
	params := url.Values{}
	params.Set("url", target)
	params.Set("output", "json")
	params.Set("fl", "original,timestamp,statuscode")

	body, err := w.doRequest(ctx, w.cdxURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	snapshots, err := w.parseCDX(body)
	if err != nil {
		return nil, err
	}

	w.logger.Debug("listed snapshots", "url", target, "count", len(snapshots))
	return snapshots, nil
}

// parseCDX decodes the CDX JSON table. The first row is the header; an empty body means no captures.
func (w *WaybackService) parseCDX(body []byte) ([]models.Snapshot, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("%w: failed to decode CDX response: %v", shared.ErrHistoryUnreachable, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	snapshots := make([]models.Snapshot, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		original, timestamp := row[0], row[1]
		status, err := strconv.Atoi(row[2])
		if err != nil {
			status = 0
		}

		snapshots = append(snapshots, models.Snapshot{
			URL:        original,
			ViewURL:    fmt.Sprintf("%s/%s/%s", w.webURL, timestamp, original),
			Timestamp:  formatTimestamp(timestamp),
			StatusCode: status,
		})
	}
	return snapshots, nil
}

// SnapshotContent fetches the archived document without the archive's rewriting.
func (w *WaybackService) SnapshotContent(ctx context.Context, snapshot models.Snapshot) ([]byte, error) {
	raw, err := w.mementoURL(snapshot)
	if err != nil {
		return nil, err
	}
	return w.doRequest(ctx, raw)
}

func (w *WaybackService) mementoURL(snapshot models.Snapshot) (string, error) {
	prefix := w.webURL + "/"
	if !strings.HasPrefix(snapshot.ViewURL, prefix) {
		return snapshot.ViewURL, nil
	}

	rest := strings.TrimPrefix(snapshot.ViewURL, prefix)
	timestamp, original, ok := strings.Cut(rest, "/")
	if !ok || timestamp == "" {
		return "", fmt.Errorf("%w: malformed snapshot url %q", shared.ErrInvalidArgument, snapshot.ViewURL)
	}
	return fmt.Sprintf("%s%sid_/%s", prefix, timestamp, original), nil
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(cdxTimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format(snapshotLayout)
}
