package importer

import "fmt"

// ProgressUpdate represents a progress event during an import run.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Operation phase enumeration
type Phase int

const (
	PollCollection Phase = iota
	FetchDetails
	Reconcile
)

func (p Phase) String() string {
	switch p {
	case PollCollection:
		return "poll_collection"
	case FetchDetails:
		return "fetch_details"
	case Reconcile:
		return "reconcile"
	default:
		return ""
	}
}

func pollUpdate(username string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   PollCollection,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Requesting owned collection for %s...", username),
	}
}

func batchUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching game details (batch %d/%d)...", step, total),
	}
}

func reconcileUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Reconcile,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Reconciling %d games into the shelf...", count),
	}
}
