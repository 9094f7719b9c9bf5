package dispatch

import (
	"sync"
	"sync/atomic"
	"time"
)

// pool is a bounded set of goroutines fed through an unbuffered channel.
// There is no task queue: a task is either handed to an idle worker, given
// to a newly started worker, or refused so the caller can run it itself.
type pool struct {
	tasks       chan func()
	quit        chan struct{}
	closeOnce   sync.Once
	max         int32
	workers     atomic.Int32
	idleTimeout time.Duration
}

func newPool(maxWorkers int, idleTimeout time.Duration) *pool {
	return &pool{
		tasks:       make(chan func()),
		quit:        make(chan struct{}),
		max:         int32(maxWorkers),
		idleTimeout: idleTimeout,
	}
}

// submit reports false when every worker is busy and the pool is full.
func (p *pool) submit(task func()) bool {
	select {
	case p.tasks <- task:
		return true
	default:
	}

	for {
		n := p.workers.Load()
		if n >= p.max {
			return false
		}
		if p.workers.CompareAndSwap(n, n+1) {
			go p.work(task)
			return true
		}
	}
}

func (p *pool) work(first func()) {
	defer p.workers.Add(-1)

	first()

	idle := time.NewTimer(p.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case task := <-p.tasks:
			task()
			idle.Reset(p.idleTimeout)
		case <-idle.C:
			return
		case <-p.quit:
			return
		}
	}
}

// size returns the number of live workers.
func (p *pool) size() int {
	return int(p.workers.Load())
}

// close releases idle workers. Callers must stop submitting first.
func (p *pool) close() {
	p.closeOnce.Do(func() { close(p.quit) })
}
