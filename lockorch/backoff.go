package lockorch

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/vfscore/vfscore/vfserr"
	"github.com/vfscore/vfscore/vlock"
)

// TryAcquireSharedWithBackoff turns vlock's non-blocking TryEnterShared
// into a bounded, rate.Limiter-paced retry loop: an opt-in convenience
// for callers that would rather poll than either block forever on
// EnterShared or fail immediately on a single TryEnterShared attempt.
// The blocking primitives remain the default path through the
// orchestrator; this exists purely for callers (e.g. an interactive CLI)
// that want Busy turned into bounded retry instead of an immediate error.
func TryAcquireSharedWithBackoff(ctx context.Context, lock *vlock.Lock, mode vlock.ShareMode, limiter *rate.Limiter) error {
	for {
		if lock.TryEnterShared(mode) {
			return nil
		}
		if err := limiter.Wait(ctx); err != nil {
			return vfserr.New(vfserr.Busy, "")
		}
	}
}

// TryAcquireExclusiveWithBackoff is TryAcquireSharedWithBackoff's
// exclusive-lock counterpart.
func TryAcquireExclusiveWithBackoff(ctx context.Context, lock *vlock.Lock, limiter *rate.Limiter) error {
	for {
		if lock.TryEnterExclusive() {
			return nil
		}
		if err := limiter.Wait(ctx); err != nil {
			return vfserr.New(vfserr.Busy, "")
		}
	}
}
