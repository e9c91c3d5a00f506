package formatter

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/refresh/internal/models"
	tu "github.com/desertthunder/refresh/internal/testing"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		done, total int
		want        string
	}{
		{0, 5, "0 of 5 done"},
		{7, 120, "007 of 120 done"},
		{120, 120, "120 of 120 done"},
		{3, 10, "03 of 10 done"},
	}

	for _, tt := range tests {
		if got := Progress(tt.done, tt.total); got != tt.want {
			t.Errorf("Progress(%d, %d) = %q, want %q", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestCheckSummary(t *testing.T) {
	if got := CheckSummary(3); got != "Finished checking playlist, 3 videos unavailable" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestInconclusive(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Inconclusive(nil); got != nil {
			t.Errorf("expected nil, got %q", got)
		}
	})

	t.Run("lists every failure", func(t *testing.T) {
		failures := []models.ProbeFailure{
			{Video: models.Video{URL: tu.Watch("a")}, Err: errors.New("timed out")},
			{Video: models.Video{URL: tu.Watch("b"), Title: "B"}, Err: errors.New("reset")},
		}

		output := string(Inconclusive(failures))

		if !strings.Contains(output, "Could not check 2 videos") {
			t.Errorf("missing header, got: %s", output)
		}
		for _, want := range []string{tu.Watch("a"), "timed out", "Title: 'B'", "reset"} {
			if !strings.Contains(output, want) {
				t.Errorf("missing %q, got: %s", want, output)
			}
		}
	})
}

func TestFormatResult(t *testing.T) {
	subject := models.Video{URL: tu.Watch("gone"), Title: "Foo", Channel: "Bar"}
	bare := models.Video{URL: tu.Watch("bare")}
	candidates := []models.Video{
		{URL: tu.Watch("a"), Title: "Foo live", Channel: "Bar"},
		{URL: tu.Watch("b"), Title: "Foo cover", Channel: "Other"},
	}

	tests := []struct {
		name    string
		result  models.Result
		opts    Options
		want    []string
		notWant []string
	}{
		{
			name:   "metadata success",
			result: models.Success{Video: subject, Candidates: candidates, Source: models.FromMetadata{}},
			want: []string{
				"The following video was added to the playlist, but is no longer available:",
				"Title: 'Foo', Channel: 'Bar', URL: " + tu.Watch("gone"),
				"For this video, title and channel are still available from Youtube.",
				"Consequently, maybe one of the following is a good substitute:",
				"    1.: Title: 'Foo live', Channel: 'Bar', URL: " + tu.Watch("a"),
				"    2.: Title: 'Foo cover'",
			},
			notWant: []string{"Wayback", "failed"},
		},
		{
			name: "history success",
			result: models.Success{
				Video:      bare,
				Candidates: candidates[:1],
				Source: models.FromHistory{
					SnapshotURL: "https://web.archive.org/web/20150101000000/" + bare.URL,
					Timestamp:   "2015-01-01 00:00:00",
					Title:       "my video",
				},
			},
			want: []string{
				"URL: " + bare.URL,
				"we think the video was titled 'my video'.",
				"archived version from 2015-01-01 00:00:00 at https://web.archive.org/web/20150101000000/",
				"1.: ",
			},
			notWant: []string{"2.: "},
		},
		{
			name:   "not archived",
			result: models.NotArchivedFailure{Video: bare},
			want: []string{
				"has not been archived by the Internet Archive's Wayback Machine",
				"we cannot suggest any alternatives",
			},
			notWant: []string{"substitute"},
		},
		{
			name:   "no title",
			result: models.NoTitleFailure{Video: bare, SnapshotURL: "https://web.archive.org/web/1/x"},
			want: []string{
				"failed to automatically retrieve the video title",
				"under the following URL: https://web.archive.org/web/1/x.",
			},
			notWant: []string{"substitute"},
		},
		{
			name:   "search failed",
			result: models.Success{Video: subject, Source: models.FromMetadata{}, SearchErr: errors.New("yt-dlp exited")},
			want:   []string{"Searching for alternatives failed: yt-dlp exited"},
			notWant: []string{
				"substitute",
			},
		},
		{
			name:   "no results",
			result: models.Success{Video: subject, Source: models.FromMetadata{}},
			want:   []string{"Searching for alternatives returned no results."},
		},
		{
			name:   "partial search failure",
			result: models.Success{Video: subject, Candidates: candidates, Source: models.FromMetadata{}, SearchErr: errors.New("boom")},
			want:   []string{"2.: ", "the list may be incomplete: boom"},
		},
		{
			name:   "styled search failure",
			result: models.Success{Video: subject, Source: models.FromMetadata{}, SearchErr: errors.New("yt-dlp exited")},
			opts:   Options{Error: func(s string) string { return "!!" + s + "!!" }},
			want:   []string{"!!Searching for alternatives failed: yt-dlp exited!!"},
		},
		{
			name:   "reason and highlight",
			result: models.NotArchivedFailure{Video: bare},
			opts: Options{
				Highlight: func(s string) string { return "<<" + s + ">>" },
				Reason:    "This video is private",
			},
			want: []string{
				"<<URL: " + bare.URL + ">>",
				"Sometimes the reason for unavailability is helpful: This video is private",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := string(FormatResult(tt.result, tt.opts))

			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("missing %q, got:\n%s", want, output)
				}
			}
			for _, unwanted := range tt.notWant {
				if strings.Contains(output, unwanted) {
					t.Errorf("unexpected %q, got:\n%s", unwanted, output)
				}
			}
		})
	}
}
