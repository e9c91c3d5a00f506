package tasks

import "strings"

const titleToken = "youtube"

// NormalizeTitle cleans a scraped page title into something usable as a display title.
//
// The title is trimmed and lowercased, then a leading or trailing "youtube" and a trailing
// hyphen are stripped until nothing changes, so NormalizeTitle(NormalizeTitle(s)) == NormalizeTitle(s).
// An empty result means no usable title was recovered.
func NormalizeTitle(raw string) string {
	title := strings.ToLower(strings.TrimSpace(raw))
	for {
		next := stripTitleNoise(title)
		if next == title {
			return title
		}
		title = next
	}
}

func stripTitleNoise(title string) string {
	title = strings.TrimPrefix(title, titleToken)
	title = strings.TrimSuffix(title, titleToken)
	title = strings.TrimSpace(title)
	title = strings.TrimSuffix(title, "-")
	return strings.TrimSpace(title)
}
