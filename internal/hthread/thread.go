// Package hthread provides the thread-local context that the synchronization
// primitives in hsync use as their owner tag: a small per-thread record
// holding a unique, non-zero handle, modeled on libnx's ThreadVars.
//
// Go has no goroutine-local storage by design, so this package fakes one:
// the runtime-assigned goroutine id is parsed out of a runtime.Stack dump on
// first entry from a given goroutine and used as the key into a registry that
// hands out stable handles. The cost is paid once per goroutine, not on every
// lock/unlock.
package hthread

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

const threadVarsMagic uint32 = 0x21545624 // "!TV$"

// ThreadHandle is the 32-bit kernel handle used as the owner tag throughout
// hsync. Zero is reserved to mean "no owner".
type ThreadHandle uint32

// Vars is the thread-local record every live thread owns. It mirrors the
// original 0x20-byte ThreadVars layout: Magic and Handle are load-bearing for
// hsync, ThreadPtr and Reent are kept only for structural fidelity with the
// layout surrounding modules (thread creation, newlib reentrancy state) would
// populate; this package never reads or writes them.
type Vars struct {
	Magic     uint32
	Handle    ThreadHandle
	ThreadPtr uintptr
	Reent     uintptr
}

var (
	nextHandle uint32 = 1
	registryMu sync.Mutex
	registry   = make(map[uint64]*Vars)
)

// goroutineID extracts the runtime-assigned id from the current goroutine's
// stack trace header, e.g. "goroutine 123 [running]:". It is only ever used
// to key the handle registry below; callers never see or reason about the
// numeric value itself.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	const prefix = "goroutine "
	b = bytes.TrimPrefix(b, []byte(prefix))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		panic("hthread: could not parse goroutine id: " + err.Error())
	}
	return id
}

// Current returns the calling goroutine's thread-local context, allocating
// one (with a freshly assigned, process-unique handle) on first call from
// that goroutine.
func Current() *Vars {
	gid := goroutineID()

	registryMu.Lock()
	defer registryMu.Unlock()

	if v, ok := registry[gid]; ok {
		return v
	}
	v := &Vars{
		Magic:  threadVarsMagic,
		Handle: ThreadHandle(atomic.AddUint32(&nextHandle, 1)),
	}
	registry[gid] = v
	return v
}

// Handle is shorthand for Current().Handle, the owner tag used by every
// primitive in hsync.
func Handle() ThreadHandle {
	return Current().Handle
}

// forget drops the calling goroutine's registry entry. Exposed only to
// tests: in production the registry simply accumulates one entry per
// goroutine that ever touched a primitive, matching the "destroyed at thread
// exit" lifecycle closely enough for a library with no hook into goroutine
// exit.
func forget() {
	registryMu.Lock()
	delete(registry, goroutineID())
	registryMu.Unlock()
}

// ForgetForTesting is the exported form of forget, for test cleanup that
// wants a fresh handle assigned to the same goroutine across subtests.
func ForgetForTesting() {
	forget()
}
