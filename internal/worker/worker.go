// Package worker runs fire-and-forget tasks off the request path, such as
// the best-effort last-access updates after login.
package worker

import "sync"

// Task is a unit of work executed by the pool.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	Submit(Task)
	Stop()
}

const queueSize = 64

// NewPool starts n workers; n <= 0 falls back to 1. The queue is buffered so
// Submit rarely blocks a request handler.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, queueSize)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.runWorker()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) runWorker() {
	defer p.wg.Done()
	for job := range p.jobs {
		if job != nil {
			job()
		}
	}
}

func (p *pool) Submit(t Task) {
	p.jobs <- t
}

// Stop drains the queue and waits for in-flight tasks.
func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
