// Package diag is a minimal leveled logger over io.Writer, switched by the
// ADIAR_LOGLEVEL environment variable. It follows the same shape as
// ClusterCockpit-cc-backend's log package: no external dependency, a
// handful of package-level Writer vars a caller can redirect in tests, and
// a level cutoff read once at init.
//
// diag is used only for cross-cutting diagnostic messages that are not
// part of the stats package's counters (e.g. which store backing was
// chosen for a given estimated 1-level cut). Nothing in the algorithmic
// core depends on diag's output.
package diag

import (
	"fmt"
	"io"
	"os"
)

var (
	// DebugWriter receives Debug messages; io.Discard suppresses them.
	DebugWriter io.Writer = os.Stderr
	// InfoWriter receives Info messages.
	InfoWriter io.Writer = os.Stderr
	// WarnWriter receives Warn messages.
	WarnWriter io.Writer = os.Stderr
	// ErrorWriter receives Error messages.
	ErrorWriter io.Writer = os.Stderr
)

const (
	debugPrefix = "[DEBUG]"
	infoPrefix  = "[INFO]"
	warnPrefix  = "[WARN]"
	errPrefix   = "[ERROR]"
)

func init() {
	switch os.Getenv("ADIAR_LOGLEVEL") {
	case "err", "error":
		WarnWriter = io.Discard
		fallthrough
	case "warn":
		InfoWriter = io.Discard
		fallthrough
	case "info":
		DebugWriter = io.Discard
	case "debug", "":
		// Nothing to do: debug is the default verbosity.
	}
}

// Debugf writes a debug-level message.
func Debugf(format string, args ...interface{}) { write(DebugWriter, debugPrefix, format, args...) }

// Infof writes an info-level message.
func Infof(format string, args ...interface{}) { write(InfoWriter, infoPrefix, format, args...) }

// Warnf writes a warn-level message.
func Warnf(format string, args ...interface{}) { write(WarnWriter, warnPrefix, format, args...) }

// Errorf writes an error-level message.
func Errorf(format string, args ...interface{}) { write(ErrorWriter, errPrefix, format, args...) }

func write(w io.Writer, prefix, format string, args ...interface{}) {
	if w == io.Discard {
		return
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
