package hsync

// oneshotState is the state machine described by spec.md's one-shot
// channel: Empty is the only state with more than one outgoing transition.
type oneshotState int

const (
	oneshotEmpty oneshotState = iota
	oneshotValue
	oneshotConsumed
)

// oneshotInner is the shared state referenced by both halves of a one-shot
// channel. It is destroyed (in the Go sense: becomes unreachable and is
// collected) once both Sender and Receiver have been freed or consumed.
type oneshotInner[T any] struct {
	mutex Mutex
	cond  CondVar

	state         oneshotState
	value         T
	senderAlive   bool
	receiverAlive bool
}

// Sender is the sending half of a single-value, single-use channel. It must
// be consumed by exactly one of Send or SenderFree.
type Sender[T any] struct {
	inner *oneshotInner[T]
}

// Receiver is the receiving half of a single-value, single-use channel. It
// must be consumed by exactly one of Recv or ReceiverFree.
type Receiver[T any] struct {
	inner *oneshotInner[T]
}

// NewOneshot creates a new one-shot channel and returns its two halves.
func NewOneshot[T any]() (*Sender[T], *Receiver[T]) {
	inner := &oneshotInner[T]{
		state:         oneshotEmpty,
		senderAlive:   true,
		receiverAlive: true,
	}
	return &Sender[T]{inner: inner}, &Receiver[T]{inner: inner}
}

// Send sends v on the channel, consuming s. It returns 0 on success, -1 if
// the receiver has already been freed (in which case v is discarded). s
// must not be used again after this call, regardless of the result.
func (s *Sender[T]) Send(v T) int32 {
	inner := s.inner
	inner.mutex.Lock()
	if !inner.receiverAlive {
		inner.mutex.Unlock()
		return -1
	}
	inner.value = v
	inner.state = oneshotValue
	inner.senderAlive = false
	inner.cond.WakeOne()
	inner.mutex.Unlock()
	return 0
}

// SenderFree drops s without sending a value. A nil s is a no-op.
func SenderFree[T any](s *Sender[T]) {
	if s == nil {
		return
	}
	inner := s.inner
	inner.mutex.Lock()
	inner.senderAlive = false
	// Wake a receiver that may be blocked waiting for a value: it needs to
	// re-check senderAlive now that it has gone false.
	inner.cond.WakeOne()
	inner.mutex.Unlock()
}

// Recv receives the channel's value, consuming r. It returns the value and 0
// on success, or the zero value and -1 if the sender was freed without
// sending. r must not be used again after this call, regardless of the
// result.
func (r *Receiver[T]) Recv() (T, int32) {
	inner := r.inner
	inner.mutex.Lock()
	for {
		if inner.state == oneshotValue {
			v := inner.value
			var zero T
			inner.value = zero
			inner.state = oneshotConsumed
			inner.receiverAlive = false
			inner.mutex.Unlock()
			return v, 0
		}
		if !inner.senderAlive && inner.state == oneshotEmpty {
			inner.mutex.Unlock()
			var zero T
			return zero, -1
		}
		inner.cond.Wait(&inner.mutex)
	}
}

// ReceiverFree drops r without receiving a value; any pending sent value is
// discarded. A nil r is a no-op. A blocked sender can never exist (Send
// never blocks), so no wake is needed.
func ReceiverFree[T any](r *Receiver[T]) {
	if r == nil {
		return
	}
	inner := r.inner
	inner.mutex.Lock()
	inner.receiverAlive = false
	inner.mutex.Unlock()
}
