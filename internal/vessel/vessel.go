package vessel

import "time"

// Logger defines the logging interface used by vessels.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Scheduler queues a function for execution on the control loop goroutine
// at an absolute time. Times in the past run as soon as the loop gets to
// them. The loop implements this; tests substitute a recorder.
type Scheduler interface {
	ScheduleAt(at time.Time, fn func())
}
