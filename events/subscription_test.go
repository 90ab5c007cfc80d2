package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type progressEvent struct {
	JobID     string
	Completed int
}

func TestSubscriptionManager(t *testing.T) {
	sm := NewSubscriptionManager[progressEvent]()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	subscriberCount := 5
	received := make([]progressEvent, subscriberCount)

	for i := 0; i < subscriberCount; i++ {
		sub := sm.Subscribe()

		wg.Add(1)
		go func(sub ISubscription[progressEvent], idx int) {
			defer wg.Done()
			select {
			case event := <-sub.Chan():
				received[idx] = event
			case <-time.After(1 * time.Second):
				// Timeout waiting for notification
			}
		}(sub, i)
	}

	sm.Emit(ctx, progressEvent{JobID: "job-1", Completed: 3})
	wg.Wait()

	for i, event := range received {
		require.Equalf(t, "job-1", event.JobID, "Subscriber %d did not receive the event", i)
		require.Equal(t, 3, event.Completed)
	}
}

func TestSubscriptionManager_CancelIsIdempotent(t *testing.T) {
	sm := NewSubscriptionManager[int]()

	sub := sm.Subscribe()
	require.Equal(t, 1, sm.Count())

	sub.Cancel()
	sub.Cancel()
	require.Equal(t, 0, sm.Count())

	_, open := <-sub.Chan()
	require.False(t, open, "channel is closed after cancel")

	// Emitting without subscribers is a no-op
	sm.Emit(context.Background(), 1)
}

func TestSubscriptionManager_FullBufferDropsEvents(t *testing.T) {
	sm := NewSubscriptionManagerWithBuffer[int](2)
	sub := sm.Subscribe()
	defer sub.Cancel()

	for i := 0; i < 5; i++ {
		sm.Emit(context.Background(), i)
	}

	require.Equal(t, 0, <-sub.Chan())
	require.Equal(t, 1, <-sub.Chan())
	select {
	case v := <-sub.Chan():
		t.Fatalf("unexpected buffered event %d", v)
	default:
	}
}

func TestSubscription_Watch(t *testing.T) {
	sm := NewSubscriptionManager[int]()

	ctx, cancel := context.WithCancel(context.Background())

	var mu sync.Mutex
	var got []int
	done := make(chan struct{})

	sm.Subscribe().Watch(ctx, func(v int) {
		mu.Lock()
		got = append(got, v)
		if len(got) == 3 {
			close(done)
		}
		mu.Unlock()
	})

	sm.Emit(ctx, 1)
	sm.Emit(ctx, 2)
	sm.Emit(ctx, 3)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch callback was not called for every event")
	}

	mu.Lock()
	require.Equal(t, []int{1, 2, 3}, got)
	mu.Unlock()

	cancel()
	require.Eventually(t, func() bool { return sm.Count() == 0 }, time.Second, 10*time.Millisecond)
}
