package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedLockerMutualExclusion(t *testing.T) {
	locker := NewKeyedLocker()

	const workers = 20
	var inside, peak int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			release, err := locker.Acquire(context.Background(), "staff:1")
			require.NoError(t, err)
			defer release()

			mu.Lock()
			inside++
			if inside > peak {
				peak = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, peak)
}

func TestKeyedLockerIndependentKeys(t *testing.T) {
	locker := NewKeyedLocker()

	release1, err := locker.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	defer release1()

	// A different key must not block.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	release2, err := locker.Acquire(ctx, "staff:2")
	require.NoError(t, err)
	release2()
}

func TestKeyedLockerContextCancel(t *testing.T) {
	locker := NewKeyedLocker()

	release, err := locker.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, "staff:1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	release()

	// Usable again once released.
	release2, err := locker.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	release2()
}

func TestKeyedLockerReleaseIsIdempotent(t *testing.T) {
	locker := NewKeyedLocker()

	release, err := locker.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)

	release()
	release()

	release2, err := locker.Acquire(context.Background(), "staff:1")
	require.NoError(t, err)
	release2()
}
