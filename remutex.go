package hsync

import (
	"sync/atomic"

	"github.com/switchlibs/hsync/internal/hthread"
)

// RMutex is a reentrant mutex: the owning thread may lock it repeatedly
// without deadlocking itself, and must unlock it the same number of times
// before another thread can acquire it.
type RMutex struct {
	mutex    Mutex
	ownerTag atomic.Uint32 // read without holding mutex; see Lock/TryLock.
	counter  uint32        // only ever touched by the current owner.
}

// NewRMutex returns an initialized, unlocked RMutex.
func NewRMutex() *RMutex {
	return &RMutex{}
}

// Init resets r to the unlocked state. The zero value is already usable.
func (r *RMutex) Init() {
	r.mutex = Mutex{}
	r.ownerTag.Store(0)
	r.counter = 0
}

// Lock acquires r. If the calling thread already holds r, this simply
// increments the recursion counter instead of blocking.
func (r *RMutex) Lock() {
	self := uint32(hthread.Handle())
	if r.ownerTag.Load() == self {
		r.counter++
		return
	}
	r.mutex.Lock()
	r.ownerTag.Store(self)
	r.counter = 1
}

// TryLock attempts to acquire r without blocking. A thread that already
// holds r always succeeds (incrementing the counter); otherwise it defers
// to the inner mutex's TryLock.
func (r *RMutex) TryLock() bool {
	self := uint32(hthread.Handle())
	if r.ownerTag.Load() == self {
		r.counter++
		return true
	}
	if !r.mutex.TryLock() {
		return false
	}
	r.ownerTag.Store(self)
	r.counter = 1
	return true
}

// Unlock releases one recursion level. Only once the counter reaches zero is
// the inner mutex actually unlocked. Unlocking from a thread that does not
// hold r is undefined behavior.
func (r *RMutex) Unlock() {
	r.counter--
	if r.counter > 0 {
		return
	}
	r.ownerTag.Store(0)
	r.mutex.Unlock()
}

// RecursionCount reports the number of unmatched Lock calls held by the
// current owner. It is meaningful only when called by the owning thread.
func (r *RMutex) RecursionCount() uint32 {
	return r.counter
}
