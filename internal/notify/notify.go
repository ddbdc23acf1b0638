// Package notify keeps the short-lived user notifications shown by the
// console.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diqie123/sistem-entri-data-inventaris/internal/domain"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 5 * time.Second

// Queue holds notifications until they expire or are dismissed.
type Queue struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []domain.Notification
}

// Option configures a Queue.
type Option func(*Queue)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

// NewQueue returns an empty queue whose entries live for ttl.
func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	q := &Queue{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push appends a notification and returns its id.
func (q *Queue) Push(typ domain.NotificationType, message string) string {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now().UTC()
	n := domain.Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Type:      typ,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.prune(now)
	q.items = append(q.items, n)
	return n.ID
}

// Success pushes a success notification.
func (q *Queue) Success(message string) string { return q.Push(domain.NotificationSuccess, message) }

// Warning pushes a warning notification.
func (q *Queue) Warning(message string) string { return q.Push(domain.NotificationWarning, message) }

// Info pushes an informational notification.
func (q *Queue) Info(message string) string { return q.Push(domain.NotificationInfo, message) }

// Error pushes an error notification.
func (q *Queue) Error(message string) string { return q.Push(domain.NotificationError, message) }

// Active returns the unexpired notifications, oldest first.
func (q *Queue) Active() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.prune(q.now())
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Dismiss removes a notification. It reports whether id was present.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) prune(now time.Time) {
	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	clear(q.items[len(kept):])
	q.items = kept
}
