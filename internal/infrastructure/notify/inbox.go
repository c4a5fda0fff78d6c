// Package notify holds the notification sinks: an in-memory inbox the
// presentation layer drains, and a log sink.
package notify

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"
)

const defaultInboxSize = 100

// Inbox keeps the most recent notifications until they are drained. When
// full, the oldest entry is discarded.
type Inbox struct {
	mu    sync.Mutex
	items []domain.Notification
	size  int
}

func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = defaultInboxSize
	}
	return &Inbox{size: size}
}

func (i *Inbox) Deliver(n domain.Notification) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.items) == i.size {
		i.items = append(i.items[:0:0], i.items[1:]...)
	}
	i.items = append(i.items, n)
}

// Drain returns every pending notification, oldest first, and empties the
// inbox. The result is never nil.
func (i *Inbox) Drain() []domain.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.items
	i.items = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Len reports the number of pending notifications.
func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.items)
}

// LogSink writes notifications to a zerolog logger. Destructive ones are
// logged at warn level.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log.With().Str("component", "notifications").Logger()}
}

func (s *LogSink) Deliver(n domain.Notification) {
	ev := s.log.Info()
	if n.Variant == domain.VariantDestructive {
		ev = s.log.Warn()
	}
	ev.Str("title", n.Title).Str("description", n.Description).Msg("notification")
}
