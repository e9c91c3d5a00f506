package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// Catalog errors
	ErrPlaylistListing   = fmt.Errorf("playlist could not be listed")
	ErrVideoUnavailable  = fmt.Errorf("video unavailable")
	ErrProbeInconclusive = fmt.Errorf("availability could not be determined")
	ErrSearchFailed      = fmt.Errorf("catalog search failed")

	// Archive errors
	ErrHistoryUnreachable = fmt.Errorf("archive unreachable")
	ErrAPIRequest         = fmt.Errorf("API request failed")
)
