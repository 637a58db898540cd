// Package hresult defines the result-code taxonomy used at the boundary of
// the synchronization primitives, mirroring libnx's Result newtype. Most of
// hsync's operations are unconditional (spec: "the kernel arbiter SVCs are
// assumed never to fail in this context"); CondVar.WaitTimeout is the one
// operation in the core that surfaces a distinct, test-observable code.
package hresult

// Result is a libnx-style result code: zero is success, any other value is
// a specific failure or status.
type Result uint32

// Success is the zero Result: the operation completed as requested.
const Success Result = 0

// TimedOut is returned by CondVar.WaitTimeout when the timeout elapsed
// before a wake arrived. The numeric value matches libnx's encoding so that
// tests asserting on the raw code remain meaningful.
const TimedOut Result = 0xEA01

// Cancelled is returned when a wait was interrupted by a mechanism other
// than signal or timeout (e.g. the process-wide key being torn down). hsync
// never produces this itself, but the code is reserved for parity with the
// real kernel's result space and surfaced through WaitTimeout's return type.
const Cancelled Result = 0xF201

// IsSuccess reports whether r indicates success.
func (r Result) IsSuccess() bool { return r == Success }

// IsTimedOut reports whether r is the condvar wait-timeout code.
func (r Result) IsTimedOut() bool { return r == TimedOut }
