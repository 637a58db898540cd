// Package hsync implements the Horizon-style userspace synchronization
// primitives: Mutex, RMutex, CondVar, RwLock, Semaphore, Barrier, and the
// one-shot channel. Each is built on the kernel arbiter simulated in
// internal/arbiter, using the calling goroutine's hthread handle as its
// owner tag exactly as a real Horizon thread's kernel handle would be used.
//
// Every blocking operation suspends only by handing control to the arbiter;
// none of the primitives here spin-wait.
package hsync
