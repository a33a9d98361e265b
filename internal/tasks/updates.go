package tasks

import (
	"fmt"

	"github.com/desertthunder/packsmith/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Validate Phase = iota
	CreateSongs
	ProvisionSeries
	Enrich
	Cleanup
	Done
)

func (p Phase) String() string {
	switch p {
	case Validate:
		return "validate"
	case CreateSongs:
		return "create_songs"
	case ProvisionSeries:
		return "provision_series"
	case Enrich:
		return "enrich"
	case Cleanup:
		return "cleanup"
	case Done:
		return "done"
	default:
		return ""
	}
}

func validateUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Validate,
		Step:    1,
		Total:   1,
		Message: "Validating pack entries...",
	}
}

func createSongsUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateSongs,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating %d songs...", count),
	}
}

func seriesUpdate(artist, album string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProvisionSeries,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Provisioning album series: %s - %s...", artist, album),
	}
}

func seriesFailedUpdate(err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ProvisionSeries,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Album series provisioning failed: %v", err),
	}
}

func enrichUpdate(step, total int, song *models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Enrich,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Enhancing: %s - %s", step, total, song.Artist, song.Title),
	}
}

func cleanupUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Cleanup,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cleaning titles for %d songs...", count),
	}
}

func doneUpdate(message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: message,
	}
}
