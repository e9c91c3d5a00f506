package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/services"
	"github.com/desertthunder/refresh/internal/shared"
	tu "github.com/desertthunder/refresh/internal/testing"
	"github.com/urfave/cli/v3"
)

const testPlaylist = "https://www.youtube.com/playlist?list=PLtest"

func runRefresh(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{
		Name: "refresh",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Action:   runner.Refresh,
		Commands: runner.register(),
	}
	return app.Run(context.Background(), append([]string{"refresh"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			catalog := &tu.MockCatalog{}
			history := &tu.MockHistory{}

			runner := NewRunner(RunnerOpts{
				Config:      config,
				Logger:      logger,
				Output:      output,
				Input:       input,
				Catalog:     catalog,
				History:     history,
				Interactive: true,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.history != history {
				t.Error("expected history to be set")
			}
			if !runner.interactive {
				t.Error("expected interactive to be set")
			}
		})

		t.Run("with nil dependencies uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to stdin")
			}
			if _, ok := runner.catalog.(*services.YtdlpService); !ok {
				t.Errorf("expected yt-dlp catalog, got %T", runner.catalog)
			}
			if _, ok := runner.history.(*services.WaybackService); !ok {
				t.Errorf("expected wayback history, got %T", runner.history)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Catalog: &tu.MockCatalog{}, History: &tu.MockHistory{}})

			if err := runner.writePlain("%d of %d", 1, 2); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.String() != "1 of 2" {
				t.Errorf("unexpected output %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Catalog: &tu.MockCatalog{}, History: &tu.MockHistory{}})

			if err := runner.writePlain("text"); err == nil {
				t.Error("expected error from failing writer")
			}
			if err := runner.writePlainln("text"); err == nil {
				t.Error("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Catalog: &tu.MockCatalog{}, History: &tu.MockHistory{}})
		commands := runner.register()

		if len(commands) != 1 || commands[0].Name != "init" {
			t.Errorf("expected init command, got %d commands", len(commands))
		}
	})
}

func TestRefresh(t *testing.T) {
	available := models.Video{URL: tu.Watch("ok"), ID: "ok", Title: "Still Here", Channel: "Band"}
	withMetadata := models.Video{URL: tu.Watch("gone"), ID: "gone", Title: "Foo", Channel: "Bar"}
	bare := models.Video{URL: tu.Watch("bare"), ID: "bare"}
	flaky := models.Video{URL: tu.Watch("flaky"), ID: "flaky", Title: "Flaky", Channel: "Net"}

	newRunner := func(catalog *tu.MockCatalog, output io.Writer, input string) *Runner {
		return NewRunner(RunnerOpts{
			Catalog: catalog,
			History: &tu.MockHistory{},
			Logger:  log.New(io.Discard),
			Output:  output,
			Input:   strings.NewReader(input),
		})
	}

	t.Run("presents every unavailable video", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Videos: []models.Video{available, withMetadata, bare, flaky},
			ProbeErrs: map[string]error{
				withMetadata.URL: &services.UnavailableError{URL: withMetadata.URL, Reason: "This video is private"},
				bare.URL:         &services.UnavailableError{URL: bare.URL},
				flaky.URL:        fmt.Errorf("%w: timed out", shared.ErrProbeInconclusive),
			},
			Results: map[string][]models.Video{
				"Foo": {{URL: tu.Watch("alt"), ID: "alt", Title: "Foo (remaster)", Channel: "Bar"}},
			},
		}
		output := &bytes.Buffer{}

		if err := runRefresh(t, newRunner(catalog, output, "\n\n"), testPlaylist); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := output.String()
		for _, want := range []string{
			"4 of 4 done",
			"Finished checking playlist, 2 videos unavailable",
			"Could not check 1 videos",
			flaky.URL,
			"For this video, title and channel are still available from Youtube.",
			"1.: Title: 'Foo (remaster)'",
			"Sometimes the reason for unavailability is helpful: This video is private",
			"has not been archived by the Internet Archive's Wayback Machine",
		} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in output:\n%s", want, text)
			}
		}
		if got := strings.Count(text, "Press Enter to see suggestions"); got != 2 {
			t.Errorf("expected 2 prompts, got %d", got)
		}
		if got := len(catalog.Probed()); got != 4 {
			t.Errorf("expected 4 probes, got %d", got)
		}
	})

	t.Run("reports progress of both stages", func(t *testing.T) {
		catalog := &tu.MockCatalog{
			Videos: []models.Video{available, bare},
			ProbeErrs: map[string]error{
				bare.URL: &services.UnavailableError{URL: bare.URL, Reason: "Video unavailable"},
			},
		}
		output := &bytes.Buffer{}
		logs := &bytes.Buffer{}
		logger := log.New(logs)
		logger.SetLevel(log.DebugLevel)

		runner := NewRunner(RunnerOpts{
			Catalog:     catalog,
			History:     &tu.MockHistory{},
			Logger:      logger,
			Output:      output,
			Input:       strings.NewReader("\n"),
			Interactive: true,
		})

		if err := runRefresh(t, runner, testPlaylist); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(output.String(), "2 of 2 done") {
			t.Errorf("missing check progress in output %q", output.String())
		}
		for _, want := range []string{"phase=check_availability", "phase=resolve_alternatives", "[1/1] resolved " + bare.URL} {
			if !strings.Contains(logs.String(), want) {
				t.Errorf("missing %q in logs:\n%s", want, logs.String())
			}
		}
	})

	t.Run("nothing unavailable", func(t *testing.T) {
		catalog := &tu.MockCatalog{Videos: []models.Video{available}}
		output := &bytes.Buffer{}

		if err := runRefresh(t, newRunner(catalog, output, ""), testPlaylist); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		text := output.String()
		if !strings.Contains(text, "Finished checking playlist, 0 videos unavailable") {
			t.Errorf("missing summary in output:\n%s", text)
		}
		if strings.Contains(text, "Press Enter") {
			t.Error("expected no prompt")
		}
		if len(catalog.Queries()) != 0 {
			t.Errorf("expected no searches, got %v", catalog.Queries())
		}
	})

	t.Run("listing failure aborts", func(t *testing.T) {
		catalog := &tu.MockCatalog{ListErr: fmt.Errorf("%w: exit status 1", shared.ErrPlaylistListing)}

		err := runRefresh(t, newRunner(catalog, io.Discard, ""), testPlaylist)
		if !errors.Is(err, shared.ErrPlaylistListing) {
			t.Errorf("expected ErrPlaylistListing, got %v", err)
		}
		if len(catalog.Probed()) != 0 {
			t.Error("expected no probes after listing failure")
		}
	})

	t.Run("missing argument", func(t *testing.T) {
		err := runRefresh(t, newRunner(&tu.MockCatalog{}, io.Discard, ""))
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}

func TestInitConfig(t *testing.T) {
	runner := NewRunner(RunnerOpts{
		Catalog: &tu.MockCatalog{},
		History: &tu.MockHistory{},
		Logger:  log.New(io.Discard),
		Output:  io.Discard,
	})

	t.Run("creates config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := runRefresh(t, runner, "init", "--config", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		config, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("expected loadable config, got %v", err)
		}
		if config.Pipeline.ProbeWorkers != 10 {
			t.Errorf("expected default probe workers, got %d", config.Pipeline.ProbeWorkers)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[log]\n"), 0644); err != nil {
			t.Fatal(err)
		}

		if err := runRefresh(t, runner, "init", "--config", path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}
