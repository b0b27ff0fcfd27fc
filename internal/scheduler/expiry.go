// internal/scheduler/expiry.go
package scheduler

import (
	"sync"
	"time"
)

// ExpiryRegistry tracks one-shot timers by ID so a scheduled action (such as
// deleting a finished challenge) can be cancelled before it fires. Recurring
// cron entries cannot be removed once added, so one-shot work lives here
// instead.
type ExpiryRegistry struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewExpiryRegistry() *ExpiryRegistry {
	return &ExpiryRegistry{timers: make(map[string]*time.Timer)}
}

// Schedule runs fn once at the given time. Scheduling with an ID that is
// already registered replaces the previous timer. A time in the past fires
// immediately.
func (r *ExpiryRegistry) Schedule(id string, at time.Time, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[id]; ok {
		old.Stop()
	}

	d := time.Until(at)
	if d < 0 {
		d = 0
	}
	r.timers[id] = time.AfterFunc(d, func() {
		r.mu.Lock()
		delete(r.timers, id)
		r.mu.Unlock()
		fn()
	})
}

// Cancel stops a pending timer. Returns false if no timer is registered
// under the ID or it has already fired.
func (r *ExpiryRegistry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[id]
	if !ok {
		return false
	}
	delete(r.timers, id)
	return t.Stop()
}

// Stop cancels every pending timer.
func (r *ExpiryRegistry) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
}
