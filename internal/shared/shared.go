// package shared defines shared helpers
package shared

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a new [log.Logger] instance with the specified [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	return log.NewWithOptions(w, opts)
}

// WithLogger creates a child [log.Logger] with the specified key-value pairs added to all log entries.
func WithLogger(l *log.Logger, kv ...any) *log.Logger {
	return l.With(kv...)
}

// SetLogLevel sets the [log.Level] for the given [log.Logger].
func SetLogLevel(l *log.Logger, ll log.Level) {
	l.SetLevel(ll)
}

// GenerateID generates a new v4 [uuid.UUID] as a string
func GenerateID() string {
	return uuid.New().String()
}

// OptInt renders an optional integer field, with "-" standing in for absent values.
func OptInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

// PlayerRange renders a min/max player count pair (e.g. "2-4", "3+", "-").
func PlayerRange(min, max *int) string {
	switch {
	case min == nil && max == nil:
		return "-"
	case min == nil:
		return strconv.Itoa(*max)
	case max == nil:
		return fmt.Sprintf("%d+", *min)
	case *min == *max:
		return strconv.Itoa(*min)
	default:
		return fmt.Sprintf("%d-%d", *min, *max)
	}
}

// PlayingTimeString renders a playing time in minutes (e.g. "90 min").
func PlayingTimeString(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return fmt.Sprintf("%d min", *minutes)
}

// PlayedString renders the played flag for display.
func PlayedString(played bool) string {
	if played {
		return "played"
	}
	return "unplayed"
}
