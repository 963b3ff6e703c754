package lockorch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/vfscore/vfscore/vlock"
)

func TestTryAcquireSharedWithBackoffSucceedsImmediately(t *testing.T) {
	l := vlock.New()
	limiter := rate.NewLimiter(rate.Limit(100), 1)

	err := TryAcquireSharedWithBackoff(context.Background(), l, vlock.ShareRead, limiter)
	require.NoError(t, err)
	count, mode := l.State()
	assert.Equal(t, 1, count)
	assert.Equal(t, vlock.ShareRead, mode)
}

func TestTryAcquireExclusiveWithBackoffWaitsThenSucceeds(t *testing.T) {
	l := vlock.New()
	l.EnterExclusive()

	limiter := rate.NewLimiter(rate.Limit(200), 1)
	done := make(chan error, 1)
	go func() {
		done <- TryAcquireExclusiveWithBackoff(context.Background(), l, limiter)
	}()

	time.Sleep(20 * time.Millisecond)
	l.ExitExclusive()

	err := <-done
	require.NoError(t, err)
	count, _ := l.State()
	assert.Equal(t, -1, count)
	l.ExitExclusive()
}

func TestTryAcquireSharedWithBackoffRespectsContextCancellation(t *testing.T) {
	l := vlock.New()
	l.EnterExclusive()
	defer l.ExitExclusive()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(50), 1)
	err := TryAcquireSharedWithBackoff(ctx, l, vlock.ShareRead, limiter)
	require.Error(t, err)
}
