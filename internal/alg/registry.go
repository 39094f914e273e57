package alg

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry owns the pool of built, configured algorithms keyed by ID.
// Lookups amortize the construction of the few model configurations a run
// reuses many times; Adopt covers disposable single-use instances that must
// not pollute the shared pool.
type Registry struct {
	factory *Factory

	mu       sync.Mutex
	pool     map[ID]*poolEntry
	building sync.WaitGroup
	closed   bool
}

// poolEntry tracks one ID through absent -> building -> pooled. The ready
// channel is closed once the build settles; waiters then read alg/err, which
// the channel close publishes.
type poolEntry struct {
	ready chan struct{}
	alg   Algorithm
	err   error
}

// NewRegistry creates an empty registry around the given factory.
func NewRegistry(factory *Factory) *Registry {
	return &Registry{
		factory: factory,
		pool:    make(map[ID]*poolEntry),
	}
}

// GetPooled returns the pooled instance for id, building and caching it on
// first use. The returned reference is shared and owned by the registry;
// callers must not reconfigure it themselves. Repeated calls with an equal ID
// return the same instance, exactly as it last was, even if the parameter
// store has changed since (use ForceReconfigure to propagate store edits).
//
// Concurrent first lookups of the same ID perform exactly one build: later
// callers block until the first publishes, then share its instance — or its
// error, in which case the ID reverts to absent and the next call retries.
func (r *Registry) GetPooled(id ID) (Algorithm, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrClosed
	}

	if e, ok := r.pool[id]; ok {
		r.mu.Unlock()
		<-e.ready
		return e.alg, e.err
	}

	e := &poolEntry{ready: make(chan struct{})}
	r.pool[id] = e
	r.building.Add(1)
	r.mu.Unlock()

	a, err := r.factory.Build(id)

	r.mu.Lock()
	if err != nil {
		// failed build reverts the ID to absent so a later call can retry
		delete(r.pool, id)
		e.err = err
	} else {
		e.alg = a
	}
	close(e.ready)
	r.building.Done()
	r.mu.Unlock()

	return e.alg, e.err
}

// Adopt builds a fresh instance whose ownership passes entirely to the
// caller. The pool is never consulted or modified, and the instance is not
// affected by ForceReconfigure.
func (r *Registry) Adopt(id ID) (Algorithm, error) {
	return r.factory.Build(id)
}

// ForceReconfigure re-runs the configuration step of every pooled instance
// against the current contents of the parameter store. Entry failures are
// independent: each failing instance keeps its previous parameters and stays
// pooled, and the remaining entries are still attempted. The returned error
// joins one *ReconfigError per failed entry, or nil if all succeeded.
func (r *Registry) ForceReconfigure() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	var errs []error
	for id, e := range r.pool {
		select {
		case <-e.ready:
		default:
			continue // build still in flight, it reads the current store anyway
		}
		if e.alg == nil {
			continue
		}

		set, ok := r.factory.store.Set(id.Label)
		if !ok {
			errs = append(errs, &ReconfigError{ID: id, Err: fmt.Errorf("%w: label %q", ErrConfigNotFound, id.Label)})
			continue
		}
		if err := e.alg.Configure(set); err != nil {
			errs = append(errs, &ReconfigError{ID: id, Err: err})
		}
	}

	return errors.Join(errs...)
}

// Len returns the number of pooled instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.pool)
}

// Describe lists the pool contents as "id -> concrete type" lines, sorted by
// key. Diagnostics only; no side effects.
func (r *Registry) Describe() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]ID, 0, len(r.pool))
	for id := range r.pool {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Key() < keys[j].Key() })

	var b strings.Builder
	for _, id := range keys {
		e := r.pool[id]
		select {
		case <-e.ready:
			fmt.Fprintf(&b, "%s -> %T\n", id, e.alg)
		default:
			fmt.Fprintf(&b, "%s -> (building)\n", id)
		}
	}
	return b.String()
}

// Close shuts the registry down: new lookups fail with ErrClosed, in-flight
// builds are waited out, then the pool is released. Safe to call once per
// registry; later calls are no-ops.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	r.mu.Unlock()

	r.building.Wait()

	r.mu.Lock()
	r.pool = make(map[ID]*poolEntry)
	r.mu.Unlock()
}
