package logging

import (
	"fmt"
	"io"
	"os"
)

// debugOut is where Debugf writes.
var debugOut io.Writer = os.Stderr

// DebugEnabled returns true if debug mode is enabled via TASKS_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TASKS_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(debugOut, format, args...)
	}
}
