package fitcore

import (
	"fmt"
	"os"
)

// Logger is the best-effort diagnostic sink the activity builder reports
// recoverable parse-quality issues to: leftover records after
// length-pairing, records without an enclosing lap, laps without an
// enclosing session.
type Logger interface {
	Warnf(format string, args ...any)
}

// StderrLogger writes warnings to os.Stderr, matching the teacher's own
// diagnostic texture (cmd/fit_analyze, cmd/fitllmexport write straight to
// os.Stderr with fmt.Fprintf rather than through a logging library).
type StderrLogger struct{}

func (StderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fitcore: "+format+"\n", args...)
}

// noopLogger discards every warning; used when BuilderOptions.Logger is
// left nil and the caller only wants the structured Activity.Warnings.
type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}
