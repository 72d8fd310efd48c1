package mocks

import (
	"fmt"
	"sync"

	"github.com/user/framegrab/pkg/ports"
)

// LogEntry is a single message recorded by Logger.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string // formatted, untranslated
}

type logStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Logger is a mock implementation of ports.Logger that records messages.
// Loggers derived with WithComponent share one record.
type Logger struct {
	store     *logStore
	component string
}

// NewLogger creates a new recording Logger.
func NewLogger() *Logger {
	return &Logger{store: &logStore{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{store: m.store, component: component}
}

func (m *Logger) record(level ports.LogLevel, msg string, args []interface{}) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	m.store.entries = append(m.store.entries, LogEntry{
		Level:     level,
		Component: m.component,
		Message:   fmt.Sprintf(msg, args...),
	})
}

// Entries returns every message recorded by this logger and its children.
func (m *Logger) Entries() []LogEntry {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return append([]LogEntry(nil), m.store.entries...)
}

// AtLevel returns recorded messages at the given level.
func (m *Logger) AtLevel(level ports.LogLevel) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

var _ ports.Logger = (*Logger)(nil)
