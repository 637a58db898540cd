package hsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRMutexRecursionSingleThread(t *testing.T) {
	var r RMutex
	r.Lock()
	r.Lock()
	r.Lock()
	assert.Equal(t, uint32(3), r.RecursionCount())

	r.Unlock()
	r.Unlock()
	assert.Equal(t, uint32(1), r.RecursionCount())

	r.Unlock()
	assert.Equal(t, uint32(0), r.RecursionCount())
	assert.Equal(t, uint32(0), r.mutex.rawWord())
}

func TestRMutexTryLockRecursive(t *testing.T) {
	var r RMutex
	assert.True(t, r.TryLock())
	assert.True(t, r.TryLock())
	assert.Equal(t, uint32(2), r.RecursionCount())
	r.Unlock()
	r.Unlock()
}

// TestRMutexScenario5 reproduces spec.md scenario 5: a single thread takes
// the lock three times, a second thread blocks trying to acquire it, the
// first thread releases two of its three holds (second thread still
// blocked), then releases the last hold and the second thread proceeds.
func TestRMutexScenario5(t *testing.T) {
	var r RMutex
	r.Lock()
	r.Lock()
	r.Lock()

	acquired := make(chan struct{})
	go func() {
		r.Lock()
		close(acquired)
		r.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-acquired:
		t.Fatal("second thread acquired before first thread fully unlocked")
	default:
	}

	r.Unlock()
	r.Unlock()
	assert.Equal(t, uint32(1), r.RecursionCount())

	time.Sleep(20 * time.Millisecond)
	select {
	case <-acquired:
		t.Fatal("second thread acquired while first still holds one recursion level")
	default:
	}

	r.Unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second thread never acquired after final unlock")
	}
}
