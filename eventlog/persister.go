package eventlog

import (
	"context"

	"golang.org/x/time/rate"
)

// persister coalesces blob writes. Mutations mark the store dirty; one
// background goroutine writes the latest snapshot, capped by a rate limiter.
// The durability contract stays best-effort and close flushes the final
// state, so a reload after Close sees everything that was appended.
type persister struct {
	store   *Store
	limiter *rate.Limiter

	dirty  chan struct{}
	done   chan struct{}
	cancel context.CancelFunc
}

func newPersister(store *Store, limit rate.Limit, burst int) *persister {
	if burst <= 0 {
		burst = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &persister{
		store:   store,
		limiter: rate.NewLimiter(limit, burst),
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	go p.run(ctx)

	return p
}

// markDirty is non-blocking; it is called with the store mutex held.
func (p *persister) markDirty() {
	select {
	case p.dirty <- struct{}{}:
	default:
	}
}

func (p *persister) run(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.dirty:
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return
		}

		p.flush()
	}
}

func (p *persister) flush() {
	p.store.mu.Lock()
	data, ok := p.store.serializeLocked()
	p.store.mu.Unlock()

	if !ok {
		return
	}

	if err := p.store.blob.Save(context.Background(), data); err != nil {
		p.store.logger.Error("failed to persist logs", "error", err)
	}
}

// close stops the background writer and writes a final snapshot. The flush
// is unconditional: the dirty token may have been consumed by a wait that
// was cancelled before it could write.
func (p *persister) close() {
	p.cancel()
	<-p.done

	p.flush()
}
