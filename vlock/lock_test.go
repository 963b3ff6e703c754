package vlock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedCompatible(t *testing.T) {
	l := New()
	require.NoError(t, l.EnterShared(ShareRead))
	require.NoError(t, l.EnterShared(ShareRead))
	count, mode := l.State()
	assert.Equal(t, 2, count)
	assert.Equal(t, ShareRead, mode)
	l.ExitShared()
	l.ExitShared()
	count, _ = l.State()
	assert.Equal(t, 0, count)
}

func TestSharedAsymmetricSubsetRule(t *testing.T) {
	l := New()
	require.NoError(t, l.EnterShared(ShareRead))
	// A later ReadWrite request is not a subset of the existing Read mode.
	err := l.EnterShared(ShareReadWrite)
	require.Error(t, err)
	l.ExitShared()

	l2 := New()
	require.NoError(t, l2.EnterShared(ShareReadWrite))
	// A later Read request IS a subset of ReadWrite.
	require.NoError(t, l2.EnterShared(ShareRead))
}

func TestTryEnterShared(t *testing.T) {
	l := New()
	l.EnterExclusive()
	assert.False(t, l.TryEnterShared(ShareRead))
	l.ExitExclusive()
	assert.True(t, l.TryEnterShared(ShareRead))
}

func TestExclusiveBlocksShared(t *testing.T) {
	l := New()
	require.NoError(t, l.EnterShared(ShareRead))

	done := make(chan struct{})
	go func() {
		l.EnterExclusive()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("exclusive acquired while shared held")
	default:
	}

	l.ExitShared()
	<-done
	l.ExitExclusive()
}

func TestTryEnterExclusive(t *testing.T) {
	l := New()
	require.NoError(t, l.EnterShared(ShareRead))
	assert.False(t, l.TryEnterExclusive())
	l.ExitShared()
	assert.True(t, l.TryEnterExclusive())
	l.ExitExclusive()
}

func TestConcurrentSharedHolders(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, l.EnterShared(ShareRead))
			time.Sleep(time.Millisecond)
			l.ExitShared()
		}()
	}
	wg.Wait()
	count, _ := l.State()
	assert.Equal(t, 0, count)
}
