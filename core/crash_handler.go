package core

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"
)

// cleanup restores the host surface (terminal teardown, window close)
// before crash output. Stage adapters register it during Start
var cleanup atomic.Pointer[func()]

// SetCrashCleanup registers the function HandleCrash runs before printing
// Last registration wins; nil clears
func SetCrashCleanup(fn func()) {
	if fn == nil {
		cleanup.Store(nil)
		return
	}
	cleanup.Store(&fn)
}

// HandleCrash is the unified panic handler: restore the surface, print the
// stack trace to stderr, exit non-zero
func HandleCrash(r any) {
	if r == nil {
		return
	}

	if fn := cleanup.Load(); fn != nil {
		(*fn)()
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())

	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword so the surface is restored on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
