package testdoubles

import (
	"context"
	"sync"
)

// LogRecord is one captured log call.
type LogRecord struct {
	Level      string
	Message    string
	Args       []any
	Contextual bool
}

// LoggerSpy implements both eventstore.Logger and eventstore.ContextualLogger.
type LoggerSpy struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLoggerSpy creates an empty LoggerSpy.
func NewLoggerSpy() *LoggerSpy {
	return &LoggerSpy{}
}

func (s *LoggerSpy) Debug(msg string, args ...any) { s.add("debug", msg, args, false) }
func (s *LoggerSpy) Info(msg string, args ...any)  { s.add("info", msg, args, false) }
func (s *LoggerSpy) Warn(msg string, args ...any)  { s.add("warn", msg, args, false) }
func (s *LoggerSpy) Error(msg string, args ...any) { s.add("error", msg, args, false) }

func (s *LoggerSpy) DebugContext(_ context.Context, msg string, args ...any) {
	s.add("debug", msg, args, true)
}

func (s *LoggerSpy) InfoContext(_ context.Context, msg string, args ...any) {
	s.add("info", msg, args, true)
}

func (s *LoggerSpy) WarnContext(_ context.Context, msg string, args ...any) {
	s.add("warn", msg, args, true)
}

func (s *LoggerSpy) ErrorContext(_ context.Context, msg string, args ...any) {
	s.add("error", msg, args, true)
}

// Records returns a copy of all captured calls.
func (s *LoggerSpy) Records() []LogRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]LogRecord(nil), s.records...)
}

// HasMessage reports whether msg was logged at the given level.
func (s *LoggerSpy) HasMessage(level, msg string) bool {
	for _, record := range s.Records() {
		if record.Level == level && record.Message == msg {
			return true
		}
	}

	return false
}

func (s *LoggerSpy) add(level, msg string, args []any, contextual bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, LogRecord{Level: level, Message: msg, Args: args, Contextual: contextual})
}
