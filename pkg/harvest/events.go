package harvest

import (
	"time"
)

// SessionEventType identifies a session lifecycle transition.
type SessionEventType string

// Session lifecycle transitions.
const (
	SessionOpened  SessionEventType = "opened"
	SessionClosed  SessionEventType = "closed"
	SessionExpired SessionEventType = "expired"
)

// SessionEvent describes a session lifecycle transition.
type SessionEvent struct {
	Type  SessionEventType `json:"type"            yaml:"type"`
	URL   string           `json:"url"             yaml:"url"`
	Error string           `json:"error,omitempty" yaml:"error,omitempty"`
	Time  time.Time        `json:"time"            yaml:"time"`
}

// SessionObserver is notified of session lifecycle transitions. Calls are made
// synchronously from the goroutine that caused the transition.
type SessionObserver interface {
	OnSessionEvent(event SessionEvent)
}

// SessionObserverFunc adapts a function to SessionObserver.
type SessionObserverFunc func(event SessionEvent)

// OnSessionEvent implements SessionObserver.
func (f SessionObserverFunc) OnSessionEvent(event SessionEvent) {
	f(event)
}

// MetricsRecorder receives request and session measurements.
type MetricsRecorder interface {
	// ObserveRequest records one dispatched request. statusCode is 0 when the
	// server could not be reached.
	ObserveRequest(method string, statusCode int, elapsed time.Duration)
	ObserveHandshake(err error)
	ObserveSessionEvent(eventType SessionEventType)
}
