package output

import (
	"log/slog"
	"sync"
)

// Severity tags a report line
type Severity int

const (
	// SeverityInfo marks progress such as the command about to run
	SeverityInfo Severity = iota
	// SeveritySuccess marks a step or workflow that completed
	SeveritySuccess
	// SeverityError marks a failed step, an aborted workflow or rejected input
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeveritySuccess:
		return "success"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Line is one user-visible message
type Line struct {
	Severity Severity
	Text     string
	// Step is the 1-based position of the step the line belongs to, or 0
	// for lines about the workflow as a whole.
	Step int
	// Final marks the closing summary line of a workflow.
	Final bool
}

// Marker returns the leading symbol used when rendering the line
func (l Line) Marker() string {
	switch {
	case l.Severity == SeverityError:
		return "❌"
	case l.Final && l.Severity == SeveritySuccess:
		return "🎉"
	case l.Severity == SeveritySuccess:
		return "✅"
	default:
		return "🔄"
	}
}

// Plain renders the line without color
func (l Line) Plain() string {
	return l.Marker() + " " + l.Text
}

// Reporter receives lines in the order they occur. Implementations must not
// reorder lines.
type Reporter interface {
	Report(line Line)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(Line)

// Report implements Reporter
func (f ReporterFunc) Report(line Line) {
	f(line)
}

// Discard drops every line
var Discard Reporter = ReporterFunc(func(Line) {})

// Recorder keeps every reported line in memory. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	lines []Line
}

// NewRecorder creates an empty Recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Report implements Reporter
func (r *Recorder) Report(line Line) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Lines returns a copy of the recorded lines
func (r *Recorder) Lines() []Line {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Line(nil), r.lines...)
}

// Texts returns the text of every recorded line
func (r *Recorder) Texts() []string {
	lines := r.Lines()
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return texts
}

// WithSeverity returns the recorded lines tagged with severity
func (r *Recorder) WithSeverity(severity Severity) []Line {
	var out []Line
	for _, l := range r.Lines() {
		if l.Severity == severity {
			out = append(out, l)
		}
	}
	return out
}

// Reset drops all recorded lines
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = nil
}

// ConsoleReporter renders lines through a Splog, colored by severity
type ConsoleReporter struct {
	splog  *Splog
	styles Styles
}

// NewConsoleReporter creates a ConsoleReporter writing to splog
func NewConsoleReporter(splog *Splog) *ConsoleReporter {
	return &ConsoleReporter{splog: splog, styles: DefaultStyles()}
}

// Report implements Reporter
func (c *ConsoleReporter) Report(line Line) {
	level := slog.LevelInfo
	if line.Severity == SeverityError {
		level = slog.LevelError
	}
	c.splog.logMessage(level, line.Plain(),
		displayKey, c.styles.Render(line),
		"severity", line.Severity.String(),
		"step", line.Step,
	)
}
