// Package resource manages the lifecycle of one remote resource: a fetcher,
// its current parameters and the resulting loading/success/failure state.
//
// A Resource is owned by its call site. Fetches run in their own goroutine;
// starting a new fetch cancels the previous one, and a completion that is no
// longer the latest is dropped so an old response never overwrites a newer
// one.
package resource

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Fetcher performs one network call for the given params
type Fetcher[P comparable, T any] func(ctx context.Context, params P) (T, error)

// Resource tracks the state of a fetcher bound to a set of params
type Resource[P comparable, T any] struct {
	fetch     Fetcher[P, T]
	logger    zerolog.Logger
	autoFetch bool
	onChange  func(State[T])

	mu         sync.Mutex
	params     P
	state      State[T]
	generation uint64
	cancel     context.CancelFunc
	done       chan struct{}
	mounted    bool
	seq        uint64

	notifyMu  sync.Mutex
	delivered uint64
}

// New creates a resource for fetch with the initial params. Nothing is
// fetched until Mount, SetParams or Refetch is called.
func New[P comparable, T any](fetch Fetcher[P, T], params P, logger zerolog.Logger, opts ...Option) *Resource[P, T] {
	s := settings{autoFetch: true}
	for _, opt := range opts {
		opt(&s)
	}

	r := &Resource[P, T]{
		fetch:     fetch,
		autoFetch: s.autoFetch,
		params:    params,
		logger:    logger,
	}
	if s.name != "" {
		r.logger = logger.With().Str("resource", s.name).Logger()
	}

	if s.onChange != nil {
		if fn, ok := s.onChange.(func(State[T])); ok {
			r.onChange = fn
		} else {
			r.logger.Warn().Msg("OnChange callback does not match the resource data type, ignoring")
		}
	}

	if r.autoFetch {
		r.state.Phase = PhaseLoading
	}

	return r
}

// Mount issues the first fetch when auto-fetch is enabled. Later calls are no-ops.
func (r *Resource[P, T]) Mount(ctx context.Context) {
	r.mu.Lock()
	if r.mounted {
		r.mu.Unlock()
		return
	}
	r.mounted = true
	auto := r.autoFetch
	params := r.params
	r.mu.Unlock()

	if auto {
		r.start(ctx, params)
	}
}

// SetParams replaces the params. With auto-fetch enabled a fetch is issued
// when p differs from the current params by ==; it reports whether one was.
func (r *Resource[P, T]) SetParams(ctx context.Context, p P) bool {
	r.mu.Lock()
	if p == r.params {
		r.mu.Unlock()
		return false
	}
	r.params = p
	auto := r.autoFetch
	r.mu.Unlock()

	if !auto {
		return false
	}
	r.start(ctx, p)
	return true
}

// Refetch always issues a fetch, with p if given or the last params otherwise
func (r *Resource[P, T]) Refetch(ctx context.Context, p ...P) {
	r.mu.Lock()
	params := r.params
	if len(p) > 0 {
		params = p[0]
	}
	r.mu.Unlock()

	r.start(ctx, params)
}

// Load fetches p and blocks until the result is in
func (r *Resource[P, T]) Load(ctx context.Context, p P) (State[T], error) {
	r.Refetch(ctx, p)
	return r.Wait(ctx)
}

// SetData stores v without a network call. Any in-flight fetch is superseded.
func (r *Resource[P, T]) SetData(v T) {
	r.replace(State[T]{Phase: PhaseSuccess, Data: v})
}

// Clear drops data and error and returns the resource to idle
func (r *Resource[P, T]) Clear() {
	r.replace(State[T]{Phase: PhaseIdle})
}

// Close cancels any in-flight fetch. Its result is discarded.
func (r *Resource[P, T]) Close() {
	r.mu.Lock()
	r.supersede()
	done := r.done
	r.done = nil
	if r.state.Phase == PhaseLoading {
		r.state = State[T]{Phase: PhaseIdle}
		r.bump()
	}
	r.mu.Unlock()

	if done != nil {
		close(done)
	}
}

// State returns a snapshot of the current state
func (r *Resource[P, T]) State() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Params returns the current params
func (r *Resource[P, T]) Params() P {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.params
}

// Wait blocks until no fetch is in flight and returns the settled state.
// It returns ctx.Err() if ctx ends first.
func (r *Resource[P, T]) Wait(ctx context.Context) (State[T], error) {
	for {
		r.mu.Lock()
		done := r.done
		state := r.state
		r.mu.Unlock()

		if done == nil {
			return state, nil
		}

		select {
		case <-done:
		case <-ctx.Done():
			return r.State(), ctx.Err()
		}
	}
}

// start moves to loading and runs the fetch in its own goroutine
func (r *Resource[P, T]) start(ctx context.Context, params P) {
	fetchCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	r.supersede()
	generation := r.generation
	r.cancel = cancel
	r.params = params
	if r.done == nil {
		r.done = make(chan struct{})
	}
	r.state = State[T]{Phase: PhaseLoading}
	state := r.state
	seq := r.bump()
	r.mu.Unlock()

	r.notify(seq, state)

	go func() {
		defer cancel()
		data, err := r.fetch(fetchCtx, params)
		r.finish(generation, data, err)
	}()
}

// finish stores a completed fetch unless a newer one has started since
func (r *Resource[P, T]) finish(generation uint64, data T, err error) {
	r.mu.Lock()
	if generation != r.generation {
		latest := r.generation
		r.mu.Unlock()
		r.logger.Debug().
			Uint64("generation", generation).
			Uint64("latest", latest).
			Err(err).
			Msg("Discarding stale fetch result")
		return
	}

	if err != nil {
		r.state = State[T]{Phase: PhaseFailure, Err: err}
		r.logger.Debug().Err(err).Msg("Fetch failed")
	} else {
		r.state = State[T]{Phase: PhaseSuccess, Data: data}
	}
	r.cancel = nil
	done := r.done
	r.done = nil
	state := r.state
	seq := r.bump()
	r.mu.Unlock()

	r.notify(seq, state)
	if done != nil {
		close(done)
	}
}

// replace sets state directly, superseding any in-flight fetch
func (r *Resource[P, T]) replace(state State[T]) {
	r.mu.Lock()
	r.supersede()
	r.state = state
	done := r.done
	r.done = nil
	seq := r.bump()
	r.mu.Unlock()

	r.notify(seq, state)
	if done != nil {
		close(done)
	}
}

// supersede cancels the in-flight fetch and bumps the generation. Callers hold mu.
func (r *Resource[P, T]) supersede() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.generation++
}

// bump numbers a state change for notify. Callers hold mu.
func (r *Resource[P, T]) bump() uint64 {
	r.seq++
	return r.seq
}

// notify hands state to OnChange in the order the changes were made. A
// change that loses the race to a newer one is dropped, so the last value
// the callback sees is always the current state. OnChange may read the
// resource but must not change it.
func (r *Resource[P, T]) notify(seq uint64, state State[T]) {
	if r.onChange == nil {
		return
	}

	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	if seq <= r.delivered {
		r.logger.Trace().Uint64("seq", seq).Uint64("delivered", r.delivered).Msg("Skipping superseded state notification")
		return
	}
	r.delivered = seq
	r.onChange(state)
}
