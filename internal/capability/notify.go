package capability

import (
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Severity grades user feedback.
type Severity string

const (
	// SeverityInfo is a transient confirmation.
	SeverityInfo Severity = "info"
	// SeverityWarning flags a recoverable problem.
	SeverityWarning Severity = "warning"
	// SeverityError flags a failure the user should act on.
	SeverityError Severity = "error"
)

// Notifier displays transient or blocking feedback to the user. The
// core never consumes a return value from it.
type Notifier interface {
	Notify(message string, severity Severity)
}

// ConsoleNotifier writes feedback to a terminal stream.
type ConsoleNotifier struct {
	Out io.Writer
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(message string, severity Severity) {
	fmt.Fprintf(n.Out, "[%s] %s\n", severity, message)
}

// LogNotifier routes feedback into the structured log, for headless
// runs.
type LogNotifier struct {
	Log *zap.Logger
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		n.Log.Error(message)
	case SeverityWarning:
		n.Log.Warn(message)
	default:
		n.Log.Info(message)
	}
}
