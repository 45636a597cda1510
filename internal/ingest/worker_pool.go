package ingest

import (
	"context"
	"sync"
	"time"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// WorkerPool runs ingest tasks with bounded concurrency and an optional
// global rate limit shared by all workers.
type WorkerPool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	rate    <-chan time.Time
	ticker  *time.Ticker
}

func NewWorkerPool(workers, buffer int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &WorkerPool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

func (p *WorkerPool) SetRateLimit(rps int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()

	if rps <= 0 {
		return
	}
	t := time.NewTicker(time.Second / time.Duration(rps))
	p.mu.Lock()
	p.ticker = t
	p.rate = t.C
	p.mu.Unlock()
}

func (p *WorkerPool) Submit(t Task) {
	if p == nil || t == nil {
		return
	}
	p.tasks <- t
}

// Close stops accepting tasks. Results drain after the last submitted task
// finishes.
func (p *WorkerPool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.ticker != nil {
		p.ticker.Stop()
		p.ticker = nil
		p.rate = nil
	}
	p.mu.Unlock()
	close(p.tasks)
}

func (p *WorkerPool) Run(ctx context.Context) <-chan Result {
	buf := p.workers * 64
	if buf < 1 {
		buf = 1
	}
	out := make(chan Result, buf)
	if p == nil {
		close(out)
		return out
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					if t == nil {
						continue
					}
					p.mu.RLock()
					rate := p.rate
					p.mu.RUnlock()
					if rate != nil {
						select {
						case <-ctx.Done():
							return
						case <-rate:
						}
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}
