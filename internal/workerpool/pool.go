// Package workerpool implements the fixed-size worker pool spec.md §4.F
// describes: a single mutex-guarded FIFO task queue, a condition variable
// that wakes idle workers, and futures for result retrieval. One pool
// belongs to each hierarchical index — parallelism stays under the
// caller's control rather than riding an ambient runtime, the same
// design choice the teacher's core/ingestion.WorkerPool makes.
package workerpool

import (
	"runtime"
	"sync"

	"github.com/arx-os/zlayout/internal/coreerr"
)

// Task is the unit of work submitted to the pool.
type Task func() (any, error)

type job struct {
	task   Task
	future *Future[any]
}

// Pool is a fixed-size collection of goroutines draining a shared FIFO
// queue.
type Pool struct {
	size int

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []job
	stopped bool

	wg sync.WaitGroup
}

// New starts a pool sized to n workers. n <= 0 falls back to
// runtime.NumCPU().
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{size: n}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int { return p.size }

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.stopped {
			p.cond.Wait()
		}
		if len(p.queue) == 0 && p.stopped {
			p.mu.Unlock()
			return
		}
		j := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		result, err := j.task()
		j.future.resolve(result, err)
	}
}

// Enqueue submits a task and returns a Future for its eventual result. If
// the pool has already been shut down, the returned future resolves
// immediately with a Cancelled error.
func (p *Pool) Enqueue(task Task) *Future[any] {
	f := newFuture[any]()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		f.resolve(nil, coreerr.New(coreerr.Cancelled, "Pool.Enqueue", "pool is shut down"))
		return f
	}
	p.queue = append(p.queue, job{task: task, future: f})
	p.mu.Unlock()
	p.cond.Signal()
	return f
}

// WaitForCompletion blocks until the task queue is empty. This does not
// guarantee every dispatched task has finished executing — callers needing
// that guarantee must hold their futures and join them (see Future.Wait).
func (p *Pool) WaitForCompletion() {
	for {
		p.mu.Lock()
		empty := len(p.queue) == 0
		p.mu.Unlock()
		if empty {
			return
		}
		runtime.Gosched()
	}
}

// Shutdown sets the stop flag, wakes every worker, and waits for them to
// exit. Tasks still sitting in the queue when Shutdown is called are
// dropped — their futures resolve to a Cancelled error. Tasks already
// in-progress run to completion.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	p.stopped = true
	dropped := p.queue
	p.queue = nil
	p.mu.Unlock()
	p.cond.Broadcast()

	for _, j := range dropped {
		j.future.resolve(nil, coreerr.New(coreerr.Cancelled, "Pool.Shutdown", "task discarded during teardown"))
	}

	p.wg.Wait()
}
