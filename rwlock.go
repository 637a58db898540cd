package hsync

import "github.com/switchlibs/hsync/internal/hthread"

// RwLock is a multi-reader/single-writer lock with writer preference (a new
// reader cannot pass a writer that is already waiting) and reentrant
// read-on-write (the writer may recursively take read locks without
// self-deadlocking). All scalar state is guarded by the inner mutex; two
// condition variables split waiting readers from waiting writers so that
// waking one class never produces a thundering herd in the other.
type RwLock struct {
	mutex            Mutex
	cvReaderWait     CondVar
	cvWriterWait     CondVar
	readLockCount    uint32
	readWaiterCount  uint32
	writeLockCount   uint32
	writeWaiterCount uint32
	writeOwnerTag    uint32
}

// NewRwLock returns an initialized, unlocked RwLock.
func NewRwLock() *RwLock {
	return &RwLock{}
}

// Init resets rw to the unlocked state. The zero value is already usable.
func (rw *RwLock) Init() {
	*rw = RwLock{}
}

// ReadLock acquires rw for reading, blocking while a writer holds or is
// waiting for the lock, unless the calling thread already holds the write
// lock (reentrant read-on-write).
func (rw *RwLock) ReadLock() {
	self := uint32(hthread.Handle())

	rw.mutex.Lock()
	if rw.writeOwnerTag == self {
		rw.readLockCount++
		rw.mutex.Unlock()
		return
	}

	for rw.writeLockCount > 0 || rw.writeWaiterCount > 0 {
		rw.readWaiterCount++
		rw.cvReaderWait.Wait(&rw.mutex)
		rw.readWaiterCount--
	}
	rw.readLockCount++
	rw.mutex.Unlock()
}

// TryReadLock attempts ReadLock without blocking, returning false instead of
// waiting when a writer holds or is waiting for the lock.
func (rw *RwLock) TryReadLock() bool {
	self := uint32(hthread.Handle())

	rw.mutex.Lock()
	defer rw.mutex.Unlock()

	if rw.writeOwnerTag == self {
		rw.readLockCount++
		return true
	}
	if rw.writeLockCount > 0 || rw.writeWaiterCount > 0 {
		return false
	}
	rw.readLockCount++
	return true
}

// ReadUnlock releases one read lock. If this was the last reader and a
// writer is waiting, it is woken.
func (rw *RwLock) ReadUnlock() {
	rw.mutex.Lock()
	rw.readLockCount--
	if rw.readLockCount == 0 && rw.writeWaiterCount > 0 {
		rw.cvWriterWait.WakeOne()
	}
	rw.mutex.Unlock()
}

// WriteLock acquires rw for writing, blocking while any reader or writer
// holds the lock, unless the calling thread already holds the write lock
// (plain write-side reentrancy).
func (rw *RwLock) WriteLock() {
	self := uint32(hthread.Handle())

	rw.mutex.Lock()
	if rw.writeOwnerTag == self {
		rw.writeLockCount++
		rw.mutex.Unlock()
		return
	}

	for rw.readLockCount > 0 || rw.writeLockCount > 0 {
		rw.writeWaiterCount++
		rw.cvWriterWait.Wait(&rw.mutex)
		rw.writeWaiterCount--
	}
	rw.writeOwnerTag = self
	rw.writeLockCount = 1
	rw.mutex.Unlock()
}

// TryWriteLock attempts WriteLock without blocking.
func (rw *RwLock) TryWriteLock() bool {
	self := uint32(hthread.Handle())

	rw.mutex.Lock()
	defer rw.mutex.Unlock()

	if rw.writeOwnerTag == self {
		rw.writeLockCount++
		return true
	}
	if rw.readLockCount > 0 || rw.writeLockCount > 0 {
		return false
	}
	rw.writeOwnerTag = self
	rw.writeLockCount = 1
	return true
}

// WriteUnlock releases one write lock level. Once the recursion count
// reaches zero, waiting writers are preferred over waiting readers: if any
// writer is waiting, exactly one is woken; otherwise every waiting reader is
// woken together.
func (rw *RwLock) WriteUnlock() {
	rw.mutex.Lock()
	rw.writeLockCount--
	if rw.writeLockCount > 0 {
		rw.mutex.Unlock()
		return
	}
	rw.writeOwnerTag = 0
	switch {
	case rw.writeWaiterCount > 0:
		rw.cvWriterWait.WakeOne()
	case rw.readWaiterCount > 0:
		rw.cvReaderWait.WakeAll()
	}
	rw.mutex.Unlock()
}

// IsWriteLockHeldByCurrentThread reports whether the calling thread holds
// the write lock.
func (rw *RwLock) IsWriteLockHeldByCurrentThread() bool {
	rw.mutex.Lock()
	defer rw.mutex.Unlock()
	return rw.writeOwnerTag == uint32(hthread.Handle()) && rw.writeLockCount > 0
}

// IsOwnedByCurrentThread reports whether the calling thread holds the write
// lock. Read locks are anonymous once granted, so this cannot distinguish
// owner-held reentrant reads from any other thread's reads; it is therefore
// defined to return true only when the current thread holds the write lock,
// per spec.md's resolution of that ambiguity.
func (rw *RwLock) IsOwnedByCurrentThread() bool {
	return rw.IsWriteLockHeldByCurrentThread()
}
