package usecase

import (
	"context"
	"time"

	"jobboard/internal/worker"
)

// Broadcaster pushes live events. Implementations must never block or fail
// the caller; a missing server is a silent no-op.
type Broadcaster interface {
	EmitToRoom(room, event string, payload any)
	EmitToAll(event string, payload any)
}

// TaskRunner schedules background work that outlives the request.
type TaskRunner interface {
	Submit(task worker.Task) bool
}

type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type noopBroadcaster struct{}

func (noopBroadcaster) EmitToRoom(string, string, any) {}
func (noopBroadcaster) EmitToAll(string, any)          {}

// inlineRunner runs tasks on the caller's goroutine; used when no pool is wired.
type inlineRunner struct{}

func (inlineRunner) Submit(task worker.Task) bool {
	_ = task(context.Background())
	return true
}
