package ports

import "github.com/Harsha6202/personalized-news-sentiment/internal/core/domain"

// Notifier receives user-facing status events. Notify is fire-and-forget.
type Notifier interface {
	Notify(n domain.Notification)
}
