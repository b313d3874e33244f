package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestBroker_PublishReachesSubscribers verifies a published event reaches
// every subscriber.
func TestBroker_PublishReachesSubscribers(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch1 := b.Subscribe(ctx)
	ch2 := b.Subscribe(ctx)
	require.Equal(t, 2, b.SubscriberCount())

	b.Publish(ThemeChangedEvent, "slate-dark")

	for _, ch := range []<-chan Event[string]{ch1, ch2} {
		select {
		case ev := <-ch:
			require.Equal(t, ThemeChangedEvent, ev.Type)
			require.Equal(t, "slate-dark", ev.Payload)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

// TestBroker_FullBufferDropsEvent verifies publishing never blocks when a
// subscriber stops draining.
func TestBroker_FullBufferDropsEvent(t *testing.T) {
	b := NewBroker[int]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := b.Subscribe(ctx)

	for i := 0; i < subscriberBuffer+1; i++ {
		b.Publish(OverridesChangedEvent, i)
	}

	for i := 0; i < subscriberBuffer; i++ {
		ev := <-ch
		require.Equal(t, i, ev.Payload)
	}

	select {
	case ev := <-ch:
		t.Fatalf("event past the buffer should have been dropped, got %v", ev.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

// TestBroker_CancelledContextRemovesSubscriber verifies cancellation
// closes the channel and drops the subscription.
func TestBroker_CancelledContextRemovesSubscriber(t *testing.T) {
	b := NewBroker[string]()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		return b.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-ch
	require.False(t, open)
}

// TestBroker_SubscribeAfterClose verifies a closed broker hands back a
// closed channel instead of leaking a dead subscription.
func TestBroker_SubscribeAfterClose(t *testing.T) {
	b := NewBroker[string]()
	b.Close()

	ch := b.Subscribe(context.Background())
	_, open := <-ch
	require.False(t, open)
}
