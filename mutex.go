package hsync

import (
	"github.com/switchlibs/hsync/internal/arbiter"
	"github.com/switchlibs/hsync/internal/hthread"
)

// Mutex is an owner-tagged exclusive lock backed by a single packed 32-bit
// word: bit 30 is the contention bit (HAS_LISTENERS), bits 29..0 hold the
// owning thread's handle, or zero when unlocked.
type Mutex struct {
	word arbiter.MutexWord
}

// NewMutex returns an initialized, unlocked Mutex.
func NewMutex() *Mutex {
	return &Mutex{}
}

// Init resets m to the unlocked, no-waiters state. Provided for parity with
// the SVC-level API; the zero value of Mutex is already usable.
func (m *Mutex) Init() {
	*m = Mutex{}
}

// TryLock attempts to acquire m without blocking, succeeding only if it was
// unlocked. It never enters the arbiter.
func (m *Mutex) TryLock() bool {
	return m.word.TryLock(uint32(hthread.Handle()))
}

// Lock acquires m, blocking via the arbiter if it is already held.
func (m *Mutex) Lock() {
	m.word.Lock(uint32(hthread.Handle()))
}

// Unlock releases m. Unlocking a mutex not held by the calling thread, or
// unlocking twice, is undefined behavior, matching the underlying platform
// primitive.
func (m *Mutex) Unlock() {
	m.word.Unlock(uint32(hthread.Handle()))
}

// IsLockedByCurrentThread reports whether the calling thread currently owns
// m.
func (m *Mutex) IsLockedByCurrentThread() bool {
	return m.word.Load()&arbiter.TagMask == uint32(hthread.Handle())
}

// rawWord exposes the packed word for white-box tests that assert on the
// exact bit pattern described by the mutex protocol.
func (m *Mutex) rawWord() uint32 {
	return m.word.Load()
}
