// Command syncbench drives every primitive in hsync under configurable
// concurrency, the same role the original system's on-screen test harness
// played, but reporting over structured logs instead of framebuffer text.
package main

import (
	"flag"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/switchlibs/hsync"
)

func main() {
	concurrency := flag.Int("concurrency", 10, "number of goroutines contending for each primitive")
	iterations := flag.Int("iterations", 1000, "lock/unlock iterations per goroutine")
	writeRatio := flag.Float64("write-ratio", 0.1, "fraction of rwlock accesses that take the write lock")
	verbose := flag.Bool("v", false, "enable debug-level logging")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().
		Int("concurrency", *concurrency).
		Int("iterations", *iterations).
		Float64("write_ratio", *writeRatio).
		Msg("starting syncbench run")

	runMutex(*concurrency, *iterations)
	runRMutex(*concurrency, *iterations)
	runCondVar(*concurrency)
	runRwLock(*concurrency, *iterations, *writeRatio)
	runSemaphore(*concurrency, *iterations)
	runBarrier(*concurrency, *iterations)
	runOneshot(*concurrency)

	log.Info().Msg("syncbench run complete")
}

func runMutex(concurrency, iterations int) {
	start := time.Now()
	var m hsync.Mutex
	var counter int64
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()
	log.Info().
		Int64("expected", int64(concurrency*iterations)).
		Int64("observed", counter).
		Dur("elapsed", time.Since(start)).
		Msg("mutex: counter increment race")
}

func runRMutex(concurrency, iterations int) {
	start := time.Now()
	var r hsync.RMutex
	var counter int64
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				r.Lock()
				r.Lock() // exercise recursion
				counter++
				r.Unlock()
				r.Unlock()
			}
		}()
	}
	wg.Wait()
	log.Info().
		Int64("observed", counter).
		Dur("elapsed", time.Since(start)).
		Msg("rmutex: nested lock/unlock")
}

func runCondVar(concurrency int) {
	start := time.Now()
	var m hsync.Mutex
	var cv hsync.CondVar
	ready := false
	var mask uint64

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(bit uint) {
			defer wg.Done()
			m.Lock()
			for !ready {
				cv.Wait(&m)
			}
			mask |= 1 << bit
			m.Unlock()
		}(uint(i % 63))
	}

	time.Sleep(10 * time.Millisecond)
	m.Lock()
	ready = true
	cv.WakeAll()
	m.Unlock()
	wg.Wait()

	log.Info().
		Uint64("mask", mask).
		Dur("elapsed", time.Since(start)).
		Msg("condvar: wake_all fan-out")
}

func runRwLock(concurrency, iterations int, writeRatio float64) {
	start := time.Now()
	var rw hsync.RwLock
	var counter int64
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func(seed int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				if pseudoRandFloat(seed, j) < writeRatio {
					rw.WriteLock()
					counter++
					rw.WriteUnlock()
				} else {
					rw.ReadLock()
					_ = counter
					rw.ReadUnlock()
				}
			}
		}(i)
	}
	wg.Wait()
	log.Info().
		Int64("writes", counter).
		Dur("elapsed", time.Since(start)).
		Msg("rwlock: mixed read/write workload")
}

func runSemaphore(concurrency, iterations int) {
	start := time.Now()
	sem := hsync.NewSemaphore(uint64(concurrency / 2))
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations/10+1; j++ {
				sem.Wait()
				sem.Signal()
			}
		}()
	}
	wg.Wait()
	log.Info().
		Uint64("final_count", sem.Count()).
		Dur("elapsed", time.Since(start)).
		Msg("semaphore: wait/signal round trip")
}

func runBarrier(concurrency, iterations int) {
	start := time.Now()
	b := hsync.NewBarrier(uint64(concurrency))
	cycles := iterations/100 + 1
	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				b.Wait()
			}
		}()
	}
	wg.Wait()
	log.Info().
		Int("cycles", cycles).
		Dur("elapsed", time.Since(start)).
		Msg("barrier: n-thread rendezvous")
}

func runOneshot(concurrency int) {
	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(concurrency)
	var delivered int64
	for i := 0; i < concurrency; i++ {
		go func(i int) {
			defer wg.Done()
			sender, receiver := hsync.NewOneshot[int]()
			done := make(chan struct{})
			go func() {
				defer close(done)
				if v, rc := receiver.Recv(); rc == 0 && v == i {
					atomic.AddInt64(&delivered, 1)
				}
			}()
			sender.Send(i)
			<-done
		}(i)
	}
	wg.Wait()
	log.Info().
		Int64("delivered", delivered).
		Dur("elapsed", time.Since(start)).
		Msg("oneshot: single-value transfer")
}

// pseudoRandFloat is a tiny deterministic hash-based generator so the
// harness doesn't need to own a shared, lockable math/rand source across
// goroutines.
func pseudoRandFloat(seed, i int) float64 {
	x := uint64(seed)*2654435761 + uint64(i)*40503
	x ^= x >> 13
	x *= 0x2545F4914F6CDD1D
	x ^= x >> 17
	return float64(x%1000) / 1000.0
}
