package px

import "sync"

// CpuDispatcher is a fixed pool of worker goroutines the scene submits simulation
// work to. The pool is owned by the engine side; callers only size it at creation
// and release it at teardown.
type CpuDispatcher struct {
	workers int
	tasks   chan func()
	done    chan struct{}
	once    sync.Once
}

// DefaultCpuDispatcherCreate starts a dispatcher with the given number of worker
// goroutines (minimum one).
func DefaultCpuDispatcherCreate(workers int) *CpuDispatcher {
	workers = max(1, workers)
	d := &CpuDispatcher{
		workers: workers,
		tasks:   make(chan func(), workers*2),
		done:    make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go func() {
			for {
				select {
				case task := <-d.tasks:
					task()
				case <-d.done:
					return
				}
			}
		}()
	}
	return d
}

// Workers returns the pool size.
func (d *CpuDispatcher) Workers() int { return d.workers }

// Submit queues a task for execution on the pool.
func (d *CpuDispatcher) Submit(task func()) {
	d.tasks <- task
}

// parallelFor splits [0, n) across the pool and blocks until every chunk ran.
func (d *CpuDispatcher) parallelFor(n int, fn func(i int)) {
	if n == 0 {
		return
	}
	chunk := (n + d.workers - 1) / d.workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		start := start
		end := min(start+chunk, n)
		wg.Add(1)
		d.Submit(func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		})
	}
	wg.Wait()
}

// Release stops the workers. Pending tasks may be dropped.
func (d *CpuDispatcher) Release() {
	d.once.Do(func() { close(d.done) })
}
