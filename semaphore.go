package hsync

// Semaphore is a counting semaphore built from a Mutex and a CondVar.
type Semaphore struct {
	mutex Mutex
	cond  CondVar
	count uint64
}

// NewSemaphore returns a Semaphore initialized with the given count.
func NewSemaphore(initialCount uint64) *Semaphore {
	s := &Semaphore{}
	s.Init(initialCount)
	return s
}

// Init (re)sets s's internal counter to initialCount.
func (s *Semaphore) Init(initialCount uint64) {
	s.mutex = Mutex{}
	s.cond = CondVar{}
	s.count = initialCount
}

// Signal increments the count and wakes a single waiter, if any.
func (s *Semaphore) Signal() {
	s.mutex.Lock()
	s.count++
	s.cond.WakeOne()
	s.mutex.Unlock()
}

// Wait decrements the count, blocking while it is zero.
func (s *Semaphore) Wait() {
	s.mutex.Lock()
	for s.count == 0 {
		s.cond.Wait(&s.mutex)
	}
	s.count--
	s.mutex.Unlock()
}

// TryWait attempts Wait without blocking, returning false if the count is
// currently zero.
func (s *Semaphore) TryWait() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.count == 0 {
		return false
	}
	s.count--
	return true
}

// Count returns the current value of the internal counter.
func (s *Semaphore) Count() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.count
}
