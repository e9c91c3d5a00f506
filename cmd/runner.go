package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/formatter"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/services"
	"github.com/desertthunder/refresh/internal/shared"
	"github.com/desertthunder/refresh/internal/tasks"
	"github.com/desertthunder/refresh/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	catalog     services.Catalog
	history     services.History
	logger      *log.Logger
	output      io.Writer
	input       io.Reader
	interactive bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Nil providers are built from Config.
type RunnerOpts struct {
	Config      *shared.Config
	Catalog     services.Catalog
	History     services.History
	Logger      *log.Logger
	Output      io.Writer
	Input       io.Reader
	Interactive bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Catalog == nil {
		opts.Catalog = services.NewYtdlpService(
			opts.Config.Catalog.YtdlpPath,
			opts.Config.CatalogTimeout(),
			shared.ProviderLogger(opts.Logger, "yt-dlp"),
		)
	}
	if opts.History == nil {
		opts.History = services.NewWaybackService(services.WaybackOpts{
			CDXURL:            opts.Config.Archive.CDXURL,
			WebURL:            opts.Config.Archive.WebURL,
			Timeout:           opts.Config.ArchiveTimeout(),
			RequestsPerSecond: opts.Config.Archive.RequestsPerSecond,
			Logger:            shared.ProviderLogger(opts.Logger, "wayback"),
		})
	}

	return &Runner{
		config:      opts.Config,
		catalog:     opts.Catalog,
		history:     opts.History,
		logger:      opts.Logger,
		output:      opts.Output,
		input:       opts.Input,
		interactive: opts.Interactive,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){initCommand} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Refresh checks every video of a playlist and presents replacements for the unavailable ones.
func (r *Runner) Refresh(ctx context.Context, cmd *cli.Command) error {
	playlistURL := strings.TrimSpace(cmd.StringArg("playlist"))
	if playlistURL == "" {
		return fmt.Errorf("%w: playlist URL", shared.ErrMissingArgument)
	}
	return r.refresh(ctx, playlistURL)
}

func (r *Runner) refresh(ctx context.Context, playlistURL string) error {
	r.logger.Info("refreshing playlist", "url", playlistURL)

	videos, err := r.catalog.ListPlaylist(ctx, playlistURL)
	if err != nil {
		return err
	}

	presenter := ui.NewPresenter(ui.PresenterOpts{
		Output:      r.output,
		Input:       r.input,
		Interactive: r.interactive,
		Logger:      r.logger,
	})

	if err := r.writePlain("Checking whether videos in playlist are available...\n"); err != nil {
		return err
	}

	check := r.checkAvailability(ctx, presenter, videos)

	if err := r.writePlainln("%s\n", formatter.CheckSummary(len(check.Unavailable))); err != nil {
		return err
	}
	if block := formatter.Inconclusive(check.Inconclusive); block != nil {
		presenter.Warn(string(block) + "\n")
	}

	if len(check.Unavailable) == 0 {
		return r.writePlain("Nothing to refresh, every checked video is still available.\n")
	}

	resolver := tasks.NewResolver(r.catalog, r.history, r.config.Pipeline.ResolveWorkers, r.logger)
	resolveCh := make(chan tasks.ProgressUpdate, len(check.Unavailable))
	results := resolver.ResolveAll(ctx, check.Unavailable, resolveCh)

	presented, err := presenter.WithReasons(check.Reasons).WithProgress(resolveCh).Present(ctx, results)
	if err != nil {
		return err
	}

	r.logger.Info("refresh finished", "videos", len(videos), "presented", presented)
	return nil
}

// checkAvailability runs the availability check while rendering its progress counter.
func (r *Runner) checkAvailability(ctx context.Context, presenter *ui.Presenter, videos []models.Video) *tasks.CheckResult {
	progressCh := make(chan tasks.ProgressUpdate, len(videos))
	done := make(chan struct{})

	presenter.Progress(0, len(videos))
	go func() {
		defer close(done)
		for update := range progressCh {
			r.logger.Debug(update.Message, "phase", update.Phase)
			presenter.Progress(update.Step, update.Total)
		}
	}()

	prober := tasks.NewProber(r.catalog, r.config.Pipeline.ProbeWorkers, r.logger)
	check := prober.CheckAll(ctx, videos, progressCh)
	close(progressCh)
	<-done

	return check
}

// InitConfig writes the default configuration file.
func (r *Runner) InitConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	return r.writePlain("Created %s\n", path)
}
