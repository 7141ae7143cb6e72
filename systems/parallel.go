package systems

import (
	"runtime"
	"sync"
)

// defaultMinRows is the minimum row count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const defaultMinRows = 16

// rowChunk represents a range of rows for a worker to process.
type rowChunk struct {
	start, end int
	fn         func(start, end int)
}

// WorkerPool runs fork-join passes over grid rows on persistent goroutines.
// Run is not reentrant: one pass at a time, driven by the render thread.
type WorkerPool struct {
	numWorkers int
	minRows    int

	workChan chan rowChunk  // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

// NewWorkerPool creates a pool. workers <= 0 uses GOMAXPROCS, minRows <= 0
// uses the default threshold. Workers start lazily on the first parallel pass.
func NewWorkerPool(workers, minRows int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if minRows <= 0 {
		minRows = defaultMinRows
	}
	return &WorkerPool{numWorkers: workers, minRows: minRows}
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int {
	if p == nil {
		return 1
	}
	return p.numWorkers
}

// start launches persistent worker goroutines.
func (p *WorkerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan rowChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Close signals all workers to exit and waits for them.
func (p *WorkerPool) Close() {
	if p == nil || !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// Run calls fn over [0, n) split into contiguous row ranges and returns once
// every range has finished. A nil pool, a single worker or a small n runs
// inline on the caller.
func (p *WorkerPool) Run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if p == nil || p.numWorkers <= 1 || n < p.minRows {
		fn(0, n)
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- rowChunk{start: start, end: end, fn: fn}
		dispatched++
	}

	// Join barrier
	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
