// Package progress renders progress bars for long running scans on interactive terminals.
package progress

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Manager starts progress tasks.
type Manager interface {
	StartTask(description string, total int) Task
	IsInteractive() bool
	Close()
}

// Task tracks the progress of a single scan.
type Task interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// NewManager returns a bar manager when enabled and stderr is a terminal, otherwise a no-op manager.
func NewManager(enabled bool) Manager {
	if enabled && IsInteractiveEnvironment() {
		return &BarManager{writer: os.Stderr}
	}
	return &NoOpManager{}
}

// IsInteractiveEnvironment reports whether stderr is attached to a terminal.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// BarManager draws progress bars to a writer.
type BarManager struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewBarManager returns a bar manager that draws to w.
func NewBarManager(w io.Writer) *BarManager {
	return &BarManager{writer: w}
}

// StartTask creates a progress bar with a description and total count.
func (m *BarManager) StartTask(description string, total int) Task {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(m.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	m.tasks = append(m.tasks, bar)
	return &barTask{bar: bar}
}

// IsInteractive returns true.
func (m *BarManager) IsInteractive() bool { return true }

// Close finishes every task that is still open.
func (m *BarManager) Close() {
	for _, bar := range m.tasks {
		_ = bar.Finish()
	}
	m.tasks = nil
}

type barTask struct {
	bar *progressbar.ProgressBar
}

func (t *barTask) Increment(n int)             { _ = t.bar.Add(n) }
func (t *barTask) Describe(description string) { t.bar.Describe(description) }
func (t *barTask) Complete()                   { _ = t.bar.Finish() }

// NoOpManager discards all progress.
type NoOpManager struct{}

// StartTask returns a task that does nothing.
func (NoOpManager) StartTask(_ string, _ int) Task { return noOpTask{} }

// IsInteractive returns false.
func (NoOpManager) IsInteractive() bool { return false }

// Close does nothing.
func (NoOpManager) Close() {}

type noOpTask struct{}

func (noOpTask) Increment(_ int)   {}
func (noOpTask) Describe(_ string) {}
func (noOpTask) Complete()         {}
