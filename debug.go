package mapview

import (
	"fmt"
	"log/slog"
)

// invariant panics with a descriptive message when a caller contract is
// broken. These are programming errors, never bad input.
func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("mapview: "+format, args...))
	}
}

// componentLogger tags every record with the emitting component.
func componentLogger(l *slog.Logger, component string) *slog.Logger {
	return l.With(slog.String("component", component))
}
