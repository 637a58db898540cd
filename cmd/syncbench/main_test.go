package main

import "testing"

func TestRunnersTerminate(t *testing.T) {
	const concurrency = 6
	const iterations = 20

	runMutex(concurrency, iterations)
	runRMutex(concurrency, iterations)
	runCondVar(concurrency)
	runRwLock(concurrency, iterations, 0.25)
	runSemaphore(concurrency, iterations)
	runBarrier(concurrency, iterations)
	runOneshot(concurrency)
}

func TestPseudoRandFloatBounded(t *testing.T) {
	for seed := 0; seed < 8; seed++ {
		for i := 0; i < 100; i++ {
			v := pseudoRandFloat(seed, i)
			if v < 0 || v >= 1 {
				t.Fatalf("pseudoRandFloat(%d, %d) = %v, want [0, 1)", seed, i, v)
			}
		}
	}
}
