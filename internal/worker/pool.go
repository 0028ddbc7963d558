package worker

import (
	"context"
	"log"
	"sync"
)

type Task func(ctx context.Context) error

// Pool runs background tasks on a fixed set of goroutines. Submit never
// blocks: when the queue is full the task gets its own goroutine.
type Pool struct {
	workers int
	tasks   chan Task
	logger  *log.Logger

	mu      sync.RWMutex
	ctx     context.Context
	started bool
	closed  bool

	wg      sync.WaitGroup
	pending sync.WaitGroup
}

func NewPool(workers, buffer int, logger *log.Logger) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
		logger:  logger,
		ctx:     context.Background(),
	}
}

// Start launches the workers. ctx is handed to every task and should outlive
// any single request.
func (p *Pool) Start(ctx context.Context) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.closed {
		return
	}
	p.started = true
	p.ctx = ctx

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for t := range p.tasks {
				p.run(t)
			}
		}()
	}
}

// Submit schedules t and reports whether it was accepted.
func (p *Pool) Submit(t Task) bool {
	if p == nil || t == nil {
		return false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	p.pending.Add(1)
	if p.started {
		select {
		case p.tasks <- t:
			return true
		default:
		}
	}
	go p.run(t)
	return true
}

func (p *Pool) run(t Task) {
	defer p.pending.Done()
	defer func() {
		if r := recover(); r != nil {
			p.logger.Printf("[Worker] task panic recovered | panic=%v", r)
		}
	}()

	p.mu.RLock()
	ctx := p.ctx
	p.mu.RUnlock()

	if err := t(ctx); err != nil {
		p.logger.Printf("[Worker] task failed | err=%v", err)
	}
}

// Wait blocks until every submitted task has finished.
func (p *Pool) Wait() {
	if p == nil {
		return
	}
	p.pending.Wait()
}

// Close stops accepting tasks, drains the queue and waits for the workers.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.pending.Wait()
}
