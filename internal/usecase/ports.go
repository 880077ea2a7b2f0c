package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cache is a best-effort JSON cache. Implementations return (false, nil) on
// a miss.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern removes every key matching a glob such as "prefix:*".
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Notifier pushes a realtime event to every connection of a user.
type Notifier interface {
	Notify(userID uuid.UUID, eventType string, payload interface{})
}

// EventRecorder counts domain events.
type EventRecorder interface {
	Event(name string)
}

type noopCache struct{}

func (noopCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (noopCache) Delete(context.Context, ...string) error { return nil }
func (noopCache) DeleteByPattern(context.Context, string) error { return nil }

type noopNotifier struct{}

func (noopNotifier) Notify(uuid.UUID, string, interface{}) {}

type noopRecorder struct{}

func (noopRecorder) Event(string) {}

func cacheOrNoop(c Cache) Cache {
	if c == nil {
		return noopCache{}
	}
	return c
}

func notifierOrNoop(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

func recorderOrNoop(r EventRecorder) EventRecorder {
	if r == nil {
		return noopRecorder{}
	}
	return r
}
