// yt-dlp backed [Catalog] implementation
//
// Every call spawns one yt-dlp process. Output is requested as a single JSON document so that
// listing and search share one decoder.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/shared"
)

const (
	defaultYtdlpPath = "yt-dlp"
	watchURLPrefix   = "https://www.youtube.com/watch?v="
)

// Titles yt-dlp reports for entries the catalog no longer describes.
var placeholderTitles = map[string]bool{
	"[Deleted video]":     true,
	"[Private video]":     true,
	"[Unavailable video]": true,
}

// Error messages with which the catalog confirms a video is gone. Any other failure is inconclusive.
var unavailableMarkers = []string{
	"video unavailable",
	"this video is unavailable",
	"this video is no longer available",
	"private video",
	"has been removed",
	"account associated with this video has been terminated",
	"copyright",
	"available in your country",
	"members-only content",
	"join this channel to get access",
}

var errorLine = regexp.MustCompile(`^ERROR:\s*(?:\[[^\]]+\]\s*[^:\s]+:\s*)?(.*)$`)

type commandFunc func(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)

func execCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// ytdlpEntry is the subset of a yt-dlp info dict we read.
type ytdlpEntry struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	WebpageURL string `json:"webpage_url"`
	Title      string `json:"title"`
	Channel    string `json:"channel"`
	Uploader   string `json:"uploader"`
}

type ytdlpListing struct {
	Type    string       `json:"_type"`
	Title   string       `json:"title"`
	Entries []ytdlpEntry `json:"entries"`
}

// YtdlpService implements [Catalog] with the yt-dlp command line tool.
type YtdlpService struct {
	path    string
	timeout time.Duration
	run     commandFunc
	logger  *log.Logger
}

// NewYtdlpService creates a catalog backed by the yt-dlp executable at path.
//
// A zero timeout leaves calls bounded only by the caller's context.
func NewYtdlpService(path string, timeout time.Duration, logger *log.Logger) *YtdlpService {
	if path == "" {
		path = defaultYtdlpPath
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &YtdlpService{
		path:    path,
		timeout: timeout,
		run:     execCommand,
		logger:  logger,
	}
}

func (y *YtdlpService) exec(ctx context.Context, args ...string) ([]byte, []byte, error) {
	if y.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, y.timeout)
		defer cancel()
	}

	y.logger.Debug("running yt-dlp", "args", args)
	stdout, stderr, err := y.run(ctx, y.path, args...)
	if err != nil && ctx.Err() != nil {
		return stdout, stderr, fmt.Errorf("yt-dlp: %w", ctx.Err())
	}
	return stdout, stderr, err
}

// ListPlaylist returns every entry of the playlist, including entries that are no longer available.
func (y *YtdlpService) ListPlaylist(ctx context.Context, playlistURL string) ([]models.Video, error) {
	stdout, stderr, err := y.exec(ctx, "--flat-playlist", "--dump-single-json", "--no-warnings", playlistURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistListing, commandError(err, stderr))
	}

	var listing ytdlpListing
	if err := json.Unmarshal(stdout, &listing); err != nil {
		return nil, fmt.Errorf("%w: failed to decode yt-dlp output: %v", shared.ErrPlaylistListing, err)
	}

	videos := make([]models.Video, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		videos = append(videos, entry.video())
	}

	y.logger.Info("listed playlist", "title", listing.Title, "entries", len(videos))
	return videos, nil
}

// Probe runs a simulated download of videoURL.
func (y *YtdlpService) Probe(ctx context.Context, videoURL string) error {
	_, stderr, err := y.exec(ctx, "--simulate", "--quiet", "--no-warnings", videoURL)
	if err == nil {
		return nil
	}

	if ctx.Err() != nil || isStartError(err) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", shared.ErrProbeInconclusive, videoURL, err)
	}

	return classifyProbe(videoURL, string(stderr), err)
}

// Search runs a catalog search and returns at most limit results.
func (y *YtdlpService) Search(ctx context.Context, query string, limit int) ([]models.Video, error) {
	if limit <= 0 || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	target := fmt.Sprintf("ytsearch%d:%s", limit, query)
	stdout, stderr, err := y.exec(ctx, "--flat-playlist", "--dump-single-json", "--no-warnings", target)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %s", shared.ErrSearchFailed, query, commandError(err, stderr))
	}

	var listing ytdlpListing
	if err := json.Unmarshal(stdout, &listing); err != nil {
		return nil, fmt.Errorf("%w: %q: failed to decode yt-dlp output: %v", shared.ErrSearchFailed, query, err)
	}

	results := make([]models.Video, 0, len(listing.Entries))
	for _, entry := range listing.Entries {
		if len(results) == limit {
			break
		}
		results = append(results, entry.video())
	}
	return results, nil
}

func (e ytdlpEntry) video() models.Video {
	url := e.URL
	if url == "" {
		url = e.WebpageURL
	}
	if url == "" && e.ID != "" {
		url = watchURLPrefix + e.ID
	}

	title := strings.TrimSpace(e.Title)
	if placeholderTitles[title] {
		title = ""
	}

	channel := e.Channel
	if channel == "" {
		channel = e.Uploader
	}

	return models.Video{
		URL:     url,
		ID:      e.ID,
		Title:   title,
		Channel: strings.TrimSpace(channel),
	}
}

// classifyProbe separates "the catalog says it is gone" from "the video could not be checked".
func classifyProbe(videoURL, stderr string, err error) error {
	reason := lastErrorLine(stderr)
	lower := strings.ToLower(reason)
	for _, marker := range unavailableMarkers {
		if strings.Contains(lower, marker) {
			return &UnavailableError{URL: videoURL, Reason: reason}
		}
	}

	if reason == "" {
		return fmt.Errorf("%w: %s: %v", shared.ErrProbeInconclusive, videoURL, err)
	}
	return fmt.Errorf("%w: %s: %s", shared.ErrProbeInconclusive, videoURL, reason)
}

// lastErrorLine returns the message of the last "ERROR:" line, without the extractor prefix.
func lastErrorLine(stderr string) string {
	var reason string
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if m := errorLine.FindStringSubmatch(line); m != nil {
			reason = strings.TrimSpace(m[1])
		}
	}
	return reason
}

func commandError(err error, stderr []byte) string {
	if reason := lastErrorLine(string(stderr)); reason != "" {
		return reason
	}
	return err.Error()
}

func isStartError(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr)
}
