// Package notify implements the transient notification queue. Any part of
// the application can push a message; consumers read ordered snapshots and
// entries expire on their own after a fixed display duration.
package notify

import (
	"crypto/rand"
	"log/slog"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Severity classifies a notification for rendering.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// IsValid checks if the severity is known.
func (s Severity) IsValid() bool {
	switch s {
	case SeveritySuccess, SeverityError, SeverityInfo, SeverityWarning:
		return true
	}
	return false
}

// DefaultTTL is how long a notification stays queued unless dismissed.
const DefaultTTL = 4 * time.Second

// Notification is a queued message. Immutable after creation.
type Notification struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Queue holds pending notifications in insertion order (oldest first).
// Safe for concurrent use; expiry timers fire on their own goroutines.
type Queue struct {
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.Mutex
	items   []Notification
	timers  map[string]*time.Timer
	entropy *ulid.MonotonicEntropy
}

// New creates a Queue. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, logger *slog.Logger) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{
		ttl:     ttl,
		logger:  logger.With("component", "notify.queue"),
		timers:  make(map[string]*time.Timer),
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Enqueue appends a notification and schedules its expiry. The returned
// ULID is unique and monotonic across the queue's lifetime. An unknown
// severity is coerced to info rather than rejected.
func (q *Queue) Enqueue(message string, severity Severity) string {
	if !severity.IsValid() {
		severity = SeverityInfo
	}

	q.mu.Lock()
	now := time.Now()
	id := ulid.MustNew(ulid.Timestamp(now), q.entropy).String()
	q.items = append(q.items, Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
	})
	q.timers[id] = time.AfterFunc(q.ttl, func() { q.Dismiss(id) })
	q.mu.Unlock()

	q.logger.Debug("notification enqueued", "id", id, "severity", string(severity))
	return id
}

// Dismiss removes the notification with the given id and cancels its expiry
// timer. Dismissing an id that already expired or was dismissed is a silent
// no-op, which settles the race between manual dismissal and the timer.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// List returns a snapshot of pending notifications in insertion order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of pending notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Flush removes and returns everything pending, cancelling all timers.
// The CLI uses this to render accumulated notifications at command end.
func (q *Queue) Flush() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	out := q.items
	q.items = nil
	return out
}

// Success enqueues a success-severity notification.
func (q *Queue) Success(message string) string {
	return q.Enqueue(message, SeveritySuccess)
}

// Error enqueues an error-severity notification.
func (q *Queue) Error(message string) string {
	return q.Enqueue(message, SeverityError)
}

// Info enqueues an info-severity notification.
func (q *Queue) Info(message string) string {
	return q.Enqueue(message, SeverityInfo)
}

// Warn enqueues a warning-severity notification.
func (q *Queue) Warn(message string) string {
	return q.Enqueue(message, SeverityWarning)
}
