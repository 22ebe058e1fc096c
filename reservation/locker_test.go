package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayLocker_SerializesSameKey(t *testing.T) {
	l := NewDayLocker()
	release, err := l.Lock(context.Background(), "2026-10-19")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		r, err := l.Lock(context.Background(), "2026-10-19")
		if err == nil {
			close(acquired)
			r()
		}
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held date")
	case <-time.After(30 * time.Millisecond):
	}

	release()
	release() // no-op
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released date")
	}
}

func TestDayLocker_IndependentKeysAndCleanup(t *testing.T) {
	l := NewDayLocker()
	a, err := l.Lock(context.Background(), "2026-10-19")
	require.NoError(t, err)
	b, err := l.Lock(context.Background(), "2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())

	a()
	b()
	assert.Zero(t, l.Len())
}

func TestDayLocker_DeadlineWhileWaiting(t *testing.T) {
	l := NewDayLocker()
	release, err := l.Lock(context.Background(), "2026-10-19")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "2026-10-19")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.Len())
}
