package history

import (
	"context"
	"sync"
	"time"

	"boildown/internal/logger"
	"boildown/internal/repository"
)

// StorageFactory returns the storage for one client.
type StorageFactory func(clientID string) Storage

// LocalStorageFactory scopes a LocalStorage to each client.
func LocalStorageFactory(repo repository.LocalStorageRepository) StorageFactory {
	return func(clientID string) Storage {
		return NewLocalStorage(repo, clientID)
	}
}

// Registry holds the live controller of every client.
type Registry struct {
	mu          sync.Mutex
	controllers map[string]*Controller
	storageFor  StorageFactory
	summarizer  Summarizer
	opts        Options
}

func NewRegistry(storageFor StorageFactory, summarizer Summarizer, opts Options) *Registry {
	return &Registry{
		controllers: make(map[string]*Controller),
		storageFor:  storageFor,
		summarizer:  summarizer,
		opts:        opts,
	}
}

// Get returns the client's controller, loading it from storage on first use.
// The controller is marked used under the registry lock so Sweep cannot
// evict it between Get and the caller's next call.
func (r *Registry) Get(ctx context.Context, clientID string) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.controllers[clientID]; ok {
		c.touch()
		return c
	}
	c := NewController(ctx, r.storageFor(clientID), r.summarizer, r.opts)
	r.controllers[clientID] = c
	r.opts.Metrics.SetSessions(len(r.controllers))
	logger.Debug("session opened", "module", "history", "action", "create", "resource", "session", "result", "ok", "client_id", clientID)
	return c
}

// Len returns the number of live controllers.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Sweep drops controllers idle for at least maxIdle and returns how many were
// dropped. Persisted history is untouched.
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, c := range r.controllers {
		if c.IdleFor(maxIdle) {
			delete(r.controllers, id)
			evicted++
		}
	}
	r.opts.Metrics.SetSessions(len(r.controllers))
	return evicted
}
