package parameter

import "time"

// Style Variable Batching
const (
	// StyleNamespace is the required prefix for every batched variable key
	StyleNamespace = "--sn-"

	// DeferredFlushFloor is the remaining budget below which deferred
	// writes are truncated from the flush
	DeferredFlushFloor = 2 * time.Millisecond

	// PendingMapCapacity pre-sizes the per-frame write map
	PendingMapCapacity = 128
)
