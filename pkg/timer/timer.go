package timer

import (
	"time"

	"go.uber.org/zap"
)

// ---------------------------------------------------------
// Mode 1: Function Level (The "Defer" pattern)
// ---------------------------------------------------------

// Track returns a function that, when executed, logs the duration.
// Usage: defer timer.Track(logger, "FunctionName")()
func Track(logger *zap.Logger, name string) func() {
	start := time.Now()
	return func() {
		logger.Debug("timing", zap.String("name", name), zap.Duration("took", time.Since(start)))
	}
}

// ---------------------------------------------------------
// Mode 2: Block Level (The "Stopwatch" pattern)
// ---------------------------------------------------------

// Stopwatch is useful for measuring multiple steps within one function.
type Stopwatch struct {
	logger *zap.Logger
	start  time.Time
	last   time.Time
}

// NewStopwatch starts the clock.
func NewStopwatch(logger *zap.Logger) *Stopwatch {
	now := time.Now()
	return &Stopwatch{logger: logger, start: now, last: now}
}

// Lap logs the time taken since the last Lap call and returns it.
func (s *Stopwatch) Lap(stepName string) time.Duration {
	now := time.Now()
	elapsed := now.Sub(s.last)
	s.last = now
	s.logger.Info("step finished",
		zap.String("step", stepName),
		zap.Duration("took", elapsed),
		zap.Duration("total", now.Sub(s.start)))
	return elapsed
}

// Total logs the total time since the stopwatch started and returns it.
func (s *Stopwatch) Total(name string) time.Duration {
	total := time.Since(s.start)
	s.logger.Info("finished", zap.String("name", name), zap.Duration("total", total))
	return total
}
