package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/refresh/internal/formatter"
	"github.com/desertthunder/refresh/internal/models"
	"github.com/desertthunder/refresh/internal/shared"
	"github.com/desertthunder/refresh/internal/tasks"
)

const (
	waitingMessage = "Waiting for the next suggestions..."
	promptMessage  = "Press Enter to see suggestions for next unavailable video..."
)

// PresenterOpts configures a [Presenter]. Zero values fall back to stdin/stdout.
type PresenterOpts struct {
	Output      io.Writer
	Input       io.Reader
	Interactive bool // Emit transient indicators, cursor movement and colour
	Palette     *Palette
	Logger      *log.Logger
}

// Presenter renders results one at a time, waiting for an acknowledgement before each.
type Presenter struct {
	out         io.Writer
	in          *bufio.Reader
	interactive bool
	reasons     map[string]string
	progress    <-chan tasks.ProgressUpdate
	resolved    int
	total       int
	palette     *Palette
	logger      *log.Logger
	eof         bool
}

func NewPresenter(opts PresenterOpts) *Presenter {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Palette == nil {
		opts.Palette = styles
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Presenter{
		out:         opts.Output,
		in:          bufio.NewReader(opts.Input),
		interactive: opts.Interactive,
		palette:     opts.Palette,
		logger:      opts.Logger,
	}
}

// WithReasons sets the catalog explanations printed with each result, keyed by video URL.
func (p *Presenter) WithReasons(reasons map[string]string) *Presenter {
	p.reasons = reasons
	return p
}

// WithProgress makes the waiting indicator count resolutions reported on progress.
func (p *Presenter) WithProgress(progress <-chan tasks.ProgressUpdate) *Presenter {
	p.progress = progress
	return p
}

// Present consumes results until the channel is closed and returns how many were shown.
//
// The next result is not received until the previous one has been rendered.
func (p *Presenter) Present(ctx context.Context, results <-chan models.Result) (int, error) {
	count := 0
	for {
		p.transient(p.waitingLine())

		res, ok, err := p.next(ctx, results)
		if err != nil {
			p.erase()
			return count, err
		}
		if !ok {
			break
		}

		if err := p.acknowledge(); err != nil {
			return count, err
		}

		if _, err := p.out.Write(formatter.FormatResult(res, p.options(res))); err != nil {
			return count, fmt.Errorf("failed to write result: %w", err)
		}
		count++
		p.logger.Debug("presented result", "url", res.Subject().URL, "kind", fmt.Sprintf("%T", res))
	}

	p.erase()
	return count, nil
}

// next waits for the next result, refreshing the waiting indicator on every resolution update.
func (p *Presenter) next(ctx context.Context, results <-chan models.Result) (models.Result, bool, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, false, ctx.Err()
		case update, ok := <-p.progress:
			if !ok {
				p.progress = nil
				continue
			}
			p.track(update)
		case res, ok := <-results:
			p.drain()
			return res, ok, nil
		}
	}
}

// drain applies every update already queued; a result's update is sent before the result itself.
func (p *Presenter) drain() {
	for {
		select {
		case update, ok := <-p.progress:
			if !ok {
				p.progress = nil
				return
			}
			p.track(update)
		default:
			return
		}
	}
}

func (p *Presenter) track(update tasks.ProgressUpdate) {
	p.logger.Debug(update.Message, "phase", update.Phase)
	if update.Step > p.resolved {
		p.resolved, p.total = update.Step, update.Total
	}
	p.transient(p.waitingLine())
}

func (p *Presenter) waitingLine() string {
	if p.total == 0 {
		return waitingMessage
	}
	return fmt.Sprintf("%s (%d of %d resolved)", waitingMessage, p.resolved, p.total)
}

// Progress renders the availability check counter, in place when interactive.
func (p *Presenter) Progress(done, total int) {
	line := formatter.Progress(done, total)
	switch {
	case p.interactive:
		fmt.Fprint(p.out, eraseLine+line)
		if done == total {
			fmt.Fprintln(p.out)
		}
	case done == total:
		fmt.Fprintln(p.out, line)
	}
}

// Warn writes text in the warning style.
func (p *Presenter) Warn(text string) {
	if p.interactive {
		text = p.palette.Warn(text)
	}
	fmt.Fprint(p.out, text)
}

// acknowledge prompts and blocks until one line is read. Once input is exhausted it no longer blocks.
func (p *Presenter) acknowledge() error {
	p.erase()
	prompt := promptMessage
	if p.interactive {
		prompt = p.palette.Help(prompt)
	}
	fmt.Fprint(p.out, prompt)

	if !p.eof {
		_, err := p.in.ReadString('\n')
		switch {
		case errors.Is(err, io.EOF):
			p.eof = true
		case err != nil:
			return fmt.Errorf("failed to read acknowledgement: %w", err)
		}
	}

	if p.interactive && !p.eof {
		// The echoed newline moved the cursor below the prompt.
		fmt.Fprint(p.out, cursorUp+eraseLine)
	} else {
		fmt.Fprintln(p.out)
	}
	return nil
}

func (p *Presenter) options(res models.Result) formatter.Options {
	opts := formatter.Options{Reason: p.reasons[res.Subject().URL]}
	if p.interactive {
		opts.Highlight = p.palette.Subject
		opts.Error = p.palette.Error
	}
	return opts
}

func (p *Presenter) transient(text string) {
	if p.interactive {
		fmt.Fprint(p.out, eraseLine+text)
	}
}

func (p *Presenter) erase() {
	if p.interactive {
		fmt.Fprint(p.out, eraseLine)
	}
}
