package hthread

import (
	"runtime"
	"time"
)

// YieldKind mirrors the three yield flavors the sleep SVC exposes. None of
// the primitives in hsync use these themselves (spec carried forward
// unchanged); they exist for callers of the library that want to yield the
// same way a Horizon thread would.
type YieldKind int

const (
	// YieldWithoutCoreMigration yields to another thread on the same core.
	YieldWithoutCoreMigration YieldKind = iota
	// YieldWithCoreMigration yields and allows migration to another core.
	YieldWithCoreMigration
	// YieldToAnyThread yields to any ready thread on any core.
	YieldToAnyThread
)

// Yield yields the calling goroutine. Go's scheduler has no notion of core
// affinity, so all three YieldKind values collapse to runtime.Gosched(); the
// parameter is kept so callers porting code that distinguishes them compile
// unchanged.
func Yield(_ YieldKind) {
	runtime.Gosched()
}

// Sleep parks the calling goroutine for d, standing in for sleep_thread(ns).
// A negative or zero duration yields once instead of blocking, matching
// sleep_thread(0)'s "yield" special case.
func Sleep(d time.Duration) {
	if d <= 0 {
		runtime.Gosched()
		return
	}
	time.Sleep(d)
}
