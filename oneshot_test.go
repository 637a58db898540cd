package hsync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOneshotSendRecv(t *testing.T) {
	sender, receiver := NewOneshot[int]()
	assert.Equal(t, int32(0), sender.Send(42))
	v, rc := receiver.Recv()
	assert.Equal(t, int32(0), rc)
	assert.Equal(t, 42, v)
}

func TestOneshotRecvBlocksUntilSend(t *testing.T) {
	sender, receiver := NewOneshot[string]()
	result := make(chan string, 1)
	go func() {
		v, rc := receiver.Recv()
		if rc != 0 {
			result <- "error"
			return
		}
		result <- v
	}()

	select {
	case <-result:
		t.Fatal("recv returned before send")
	case <-time.After(20 * time.Millisecond):
	}

	sender.Send("hello")
	select {
	case v := <-result:
		assert.Equal(t, "hello", v)
	case <-time.After(time.Second):
		t.Fatal("recv never returned after send")
	}
}

// TestOneshotScenario6a reproduces spec.md scenario 6(a): a receiver blocks
// in Recv, the sender is freed without sending, and Recv returns failure.
func TestOneshotScenario6a(t *testing.T) {
	sender, receiver := NewOneshot[int]()

	rc := make(chan int32, 1)
	started := make(chan struct{})
	go func() {
		close(started)
		_, code := receiver.Recv()
		rc <- code
	}()

	<-started
	time.Sleep(20 * time.Millisecond)
	SenderFree(sender)

	select {
	case code := <-rc:
		assert.Equal(t, int32(-1), code)
	case <-time.After(time.Second):
		t.Fatal("recv never returned after sender was freed")
	}
}

// TestOneshotScenario6b reproduces spec.md scenario 6(b): the receiver is
// freed first, then the sender calls Send; Send returns failure and the
// value is discarded.
func TestOneshotScenario6b(t *testing.T) {
	sender, receiver := NewOneshot[int]()
	ReceiverFree(receiver)
	assert.Equal(t, int32(-1), sender.Send(7))
}

func TestOneshotSenderFreeNilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { SenderFree[int](nil) })
}

func TestOneshotReceiverFreeNilIsNoop(t *testing.T) {
	assert.NotPanics(t, func() { ReceiverFree[int](nil) })
}

func TestOneshotSingleUse(t *testing.T) {
	sender, receiver := NewOneshot[int]()
	assert.Equal(t, int32(0), sender.Send(1))
	v1, rc1 := receiver.Recv()
	assert.Equal(t, int32(0), rc1)
	assert.Equal(t, 1, v1)

	// A second channel must be independent of the first: no cross-talk.
	sender2, receiver2 := NewOneshot[int]()
	assert.Equal(t, int32(0), sender2.Send(2))
	v2, rc2 := receiver2.Recv()
	assert.Equal(t, int32(0), rc2)
	assert.Equal(t, 2, v2)
}
