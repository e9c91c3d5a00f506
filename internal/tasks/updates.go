package tasks

import (
	"fmt"

	"github.com/desertthunder/refresh/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Completed items within phase
	Total   int    // Total items in this phase
	Message string // Human-readable message, logged at debug level
}

// Operation phase enumeration
type Phase int

const (
	CheckAvailability Phase = iota
	ResolveAlternatives
)

func (p Phase) String() string {
	switch p {
	case CheckAvailability:
		return "check_availability"
	case ResolveAlternatives:
		return "resolve_alternatives"
	default:
		return ""
	}
}

// sendProgress drops the update when progress is nil or full.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func checkedUpdate(step, total int, video models.Video, available bool) ProgressUpdate {
	state := "available"
	if !available {
		state = "unavailable"
	}
	return ProgressUpdate{
		Phase:   CheckAvailability,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, video.URL, state),
	}
}

func resolvedUpdate(step, total int, result models.Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveAlternatives,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] resolved %s (%T)", step, total, result.Subject().URL, result),
	}
}
