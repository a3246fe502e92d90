// internal/recovery/recovery.go
package recovery

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
)

// HandlePanic should be deferred at the top of main().
// It logs panic details and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	}
}

// HandlePanicFunc logs panic details, calls the provided cleanup function
// and exits with code 1.
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
		if cleanup != nil {
			cleanup()
		}
		os.Exit(1)
	}
}

// LogAndContinue recovers and logs without exiting. Deferred in goroutines
// on the detection path, which must never take the host process down.
func LogAndContinue(log *slog.Logger, what string) {
	if r := recover(); r != nil {
		if log == nil {
			log = slog.Default()
		}
		log.Error("recovered panic", "in", what, "panic", r, "stack", string(debug.Stack()))
	}
}
