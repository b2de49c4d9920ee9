package gateway

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded reports that a newer fetch was dispatched before this one
// resolved; its result was discarded.
var ErrSuperseded = errors.New("fetch superseded by a newer request")

// Loader serializes collection fetches for one screen. Each fetch gets a
// monotonically increasing sequence number; a response is applied only when
// no newer fetch has been dispatched or applied since, so a slow early fetch
// can never clobber the result of a later one. Dispatching a new fetch
// cancels the in-flight one.
type Loader[T any] struct {
	mu      sync.Mutex
	nextSeq uint64
	applied uint64
	cancel  context.CancelFunc
}

// Load runs fetch and, if the response is still current, hands the items to
// apply. fetch runs on the calling goroutine; start Load in its own goroutine
// when the screen must stay responsive.
func (l *Loader[T]) Load(ctx context.Context, fetch func(context.Context) ([]T, error), apply func([]T)) error {
	l.mu.Lock()
	l.nextSeq++
	seq := l.nextSeq
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.mu.Unlock()
	defer cancel()

	items, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if seq < l.nextSeq || seq <= l.applied {
		return ErrSuperseded
	}
	if err != nil {
		return err
	}
	l.applied = seq
	apply(items)
	return nil
}
