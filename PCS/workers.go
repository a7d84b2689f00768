package pcs

import (
	"sync"

	"github.com/panjf2000/ants/v2"
)

// parallelFor runs fn(0..n-1) on the shared ants pool and blocks until all
// iterations finish. Callers write results into disjoint pre-allocated slots,
// so the WaitGroup join is the only synchronization. If the pool refuses a
// task the iteration runs inline on the submitting goroutine.
func parallelFor(n int, fn func(i int)) {
	if n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		if err := ants.Submit(func() {
			defer wg.Done()
			fn(i)
		}); err != nil {
			fn(i)
			wg.Done()
		}
	}
	wg.Wait()
}
