package systems

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolCoversEveryRowOnce(t *testing.T) {
	pool := NewWorkerPool(4, 1)
	defer pool.Close()

	for _, n := range []int{1, 3, 4, 17, 100} {
		hits := make([]int32, n)
		pool.Run(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d: row %d visited %d times", n, i, h)
			}
		}
	}
}

func TestWorkerPoolInlineBelowThreshold(t *testing.T) {
	pool := NewWorkerPool(4, 32)
	defer pool.Close()

	calls := 0
	pool.Run(10, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("expected single inline range [0,10), got [%d,%d)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected one inline call, got %d", calls)
	}
	if pool.running {
		t.Error("expected workers not to start for a small pass")
	}
}

func TestWorkerPoolNil(t *testing.T) {
	var pool *WorkerPool
	if pool.Workers() != 1 {
		t.Errorf("expected nil pool to report 1 worker, got %d", pool.Workers())
	}

	sum := 0
	pool.Run(5, func(start, end int) {
		for i := start; i < end; i++ {
			sum += i
		}
	})
	if sum != 10 {
		t.Errorf("expected inline sum 10, got %d", sum)
	}
	pool.Close()
}

func TestWorkerPoolZeroRows(t *testing.T) {
	pool := NewWorkerPool(2, 1)
	defer pool.Close()
	pool.Run(0, func(start, end int) {
		t.Error("expected no call for zero rows")
	})
}

func TestWorkerPoolCloseRestart(t *testing.T) {
	pool := NewWorkerPool(2, 1)
	var total atomic.Int64
	run := func() {
		pool.Run(8, func(start, end int) {
			total.Add(int64(end - start))
		})
	}

	run()
	pool.Close()
	pool.Close()
	run()
	pool.Close()

	if total.Load() != 16 {
		t.Errorf("expected 16 rows across both runs, got %d", total.Load())
	}
}
