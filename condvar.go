package hsync

import (
	"time"

	"github.com/switchlibs/hsync/hresult"
	"github.com/switchlibs/hsync/internal/arbiter"
	"github.com/switchlibs/hsync/internal/hthread"
)

// CondVar is a condition variable keyed on a 32-bit process-wide word. The
// word is kernel-managed: userspace only initializes it to zero and never
// interprets its value as anything but "waiters parked or not".
type CondVar struct {
	key arbiter.Key
}

// NewCondVar returns an initialized CondVar.
func NewCondVar() *CondVar {
	return &CondVar{}
}

// Init resets c to the no-waiters state. The zero value is already usable.
func (c *CondVar) Init() {
	*c = CondVar{}
}

// Wait releases m, blocks until woken, and re-acquires m before returning.
// The caller must hold m. Callers must re-test their predicate in a loop:
// Wait makes no guarantee beyond "returned after some wake".
func (c *CondVar) Wait(m *Mutex) {
	c.WaitTimeout(m, 0)
}

// WaitTimeout is Wait with a bound on how long to block, in nanoseconds. It
// returns hresult.TimedOut if the timeout elapsed before a wake arrived, and
// hresult.Success otherwise. A non-positive timeout means "wait forever".
func (c *CondVar) WaitTimeout(m *Mutex, timeout time.Duration) hresult.Result {
	return c.key.WaitTimeout(&m.word, uint32(hthread.Handle()), timeout)
}

// Wake wakes up to n parked waiters in FIFO order; n < 0 wakes all of them.
func (c *CondVar) Wake(n int32) {
	c.key.Wake(n)
}

// WakeOne wakes a single waiter, if any are parked.
func (c *CondVar) WakeOne() {
	c.Wake(1)
}

// WakeAll wakes every parked waiter.
func (c *CondVar) WakeAll() {
	c.Wake(-1)
}

// rawWord exposes the packed key word for white-box tests.
func (c *CondVar) rawWord() uint32 {
	return c.key.Load()
}
