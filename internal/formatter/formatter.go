// package formatter renders availability checks and refresh results as plain text
package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/refresh/internal/models"
)

const candidateIndent = "    "

// Options controls how a result is rendered.
type Options struct {
	Highlight func(string) string // Applied to the subject line, identity when nil
	Error     func(string) string // Applied to search failure lines, identity when nil
	Reason    string              // Catalog explanation for the unavailability, optional
}

func (o Options) highlight(s string) string {
	if o.Highlight == nil {
		return s
	}
	return o.Highlight(s)
}

func (o Options) error(s string) string {
	if o.Error == nil {
		return s
	}
	return o.Error(s)
}

// VideoInfo renders the known fields of a video, e.g. "Title: 'x', Channel: 'y', URL: z"
func VideoInfo(v models.Video) string {
	return v.String()
}

// Progress renders "NN of M done", zero padding the count to the width of total.
func Progress(done, total int) string {
	digits := len(strconv.Itoa(total))
	return fmt.Sprintf("%0*d of %d done", digits, done, total)
}

// CheckSummary renders the line printed once the availability check has finished.
func CheckSummary(unavailable int) string {
	return fmt.Sprintf("Finished checking playlist, %d videos unavailable", unavailable)
}

// Inconclusive lists videos whose availability could not be determined.
func Inconclusive(failures []models.ProbeFailure) []byte {
	if len(failures) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Could not check %d videos, they are not included in the suggestions:\n", len(failures)))
	for _, f := range failures {
		buf.WriteString(fmt.Sprintf("%s- %s (%v)\n", candidateIndent, VideoInfo(f.Video), f.Err))
	}
	return buf.Bytes()
}

// FormatResult renders one resolution result.
func FormatResult(res models.Result, opts Options) []byte {
	var buf bytes.Buffer
	writeIntro(&buf, res.Subject(), opts)

	switch r := res.(type) {
	case models.Success:
		writeSource(&buf, r.Source)
		writeCandidates(&buf, r, opts)
	case models.NotArchivedFailure:
		buf.WriteString("Youtube doesn't tell us any metadata about the unavailable video. ")
		buf.WriteString("It also has not been archived by the Internet Archive's Wayback Machine. ")
		buf.WriteString("Consequently, we cannot suggest any alternatives for this video :(\n")
	case models.NoTitleFailure:
		buf.WriteString("Youtube doesn't tell us any metadata about the unavailable video. ")
		buf.WriteString("While it seems like it has been archived by the Internet Archive's Wayback Machine, ")
		buf.WriteString("we failed to automatically retrieve the video title and cannot suggest alternatives. ")
		buf.WriteString(fmt.Sprintf("Maybe you can still find some information under the following URL: %s.\n", r.SnapshotURL))
	}

	return buf.Bytes()
}

func writeIntro(buf *bytes.Buffer, subject models.Video, opts Options) {
	buf.WriteString("\n\nThe following video was added to the playlist, but is no longer available:\n")
	buf.WriteString(opts.highlight(VideoInfo(subject)))
	buf.WriteString("\n")

	if reason := strings.TrimSpace(opts.Reason); reason != "" {
		buf.WriteString(fmt.Sprintf("Sometimes the reason for unavailability is helpful: %s\n", reason))
	}
}

func writeSource(buf *bytes.Buffer, source models.Provenance) {
	switch s := source.(type) {
	case models.FromMetadata:
		buf.WriteString("For this video, title and channel are still available from Youtube.\n")
	case models.FromHistory:
		buf.WriteString("Youtube doesn't tell us any metadata about the unavailable video. ")
		buf.WriteString("But based on a snapshot from the Internet Archive, we think the video was titled")
		buf.WriteString(fmt.Sprintf(" '%s'. ", s.Title))
		buf.WriteString(fmt.Sprintf("You can find an archived version from %s at %s.\n", s.Timestamp, s.SnapshotURL))
	}
}

func writeCandidates(buf *bytes.Buffer, r models.Success, opts Options) {
	if len(r.Candidates) == 0 {
		if r.SearchErr != nil {
			buf.WriteString("\n" + opts.error(fmt.Sprintf("Searching for alternatives failed: %v", r.SearchErr)) + "\n")
		} else {
			buf.WriteString("\nSearching for alternatives returned no results.\n")
		}
		return
	}

	buf.WriteString("\nConsequently, maybe one of the following is a good substitute:\n")
	for i, c := range r.Candidates {
		buf.WriteString(fmt.Sprintf("%s%d.: %s\n", candidateIndent, i+1, VideoInfo(c)))
	}

	if r.SearchErr != nil {
		buf.WriteString(opts.error(fmt.Sprintf("Some searches failed, the list may be incomplete: %v", r.SearchErr)) + "\n")
	}
}
