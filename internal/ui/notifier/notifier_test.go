package notifier

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestNotifier_Subscribe_Unsubscribe(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Listeners())

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Listeners())

	_, open := <-ch
	assert.False(t, open, "unsubscribe closes the channel")
}

func TestNotifier_Broadcast(t *testing.T) {
	n := New()

	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	want := Change{Reason: CategoryUpdated, CategoryID: "Q2F0ZWdvcnk6MQ=="}
	n.Broadcast(want)

	for i, ch := range []chan Change{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, want, got)
		case <-time.After(100 * time.Millisecond):
			t.Errorf("listener %d did not receive broadcast", i+1)
		}
	}
}

func TestNotifier_Broadcast_KeepsPendingChange(t *testing.T) {
	n := New()

	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	n.Broadcast(Change{Reason: CategoryDeleted, CategoryID: "a"})

	// Broadcast must not block on a listener that has not caught up
	done := make(chan struct{})
	go func() {
		n.Broadcast(Change{Reason: CategoryCreated, CategoryID: "b"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Broadcast blocked on full channel")
	}

	assert.Equal(t, Change{Reason: CategoryDeleted, CategoryID: "a"}, <-ch)
}

func TestChange_Removes(t *testing.T) {
	tests := []struct {
		name   string
		change Change
		id     string
		want   bool
	}{
		{"deleted same id", Change{Reason: CategoryDeleted, CategoryID: "a"}, "a", true},
		{"deleted other id", Change{Reason: CategoryDeleted, CategoryID: "b"}, "a", false},
		{"updated same id", Change{Reason: CategoryUpdated, CategoryID: "a"}, "a", false},
		{"empty ids", Change{Reason: CategoryDeleted}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.change.Removes(tt.id))
		})
	}
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New()

	var wg sync.WaitGroup
	const numGoroutines = 10

	for range numGoroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := n.Subscribe()
			n.Broadcast(Change{Reason: CategoryUpdated})
			n.Unsubscribe(ch)
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, n.Listeners())
}

func TestNotifier_StreamExitsOnCancel(t *testing.T) {
	n := New()
	ctx, cancel := context.WithCancel(context.Background())

	received := make(chan Change, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ch := n.Subscribe()
		defer n.Unsubscribe(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-ch:
				received <- c
			}
		}
	}()

	require.Eventually(t, func() bool {
		return n.Listeners() == 1
	}, time.Second, 5*time.Millisecond)

	n.Broadcast(Change{Reason: TranslationsReloaded})
	select {
	case c := <-received:
		assert.Equal(t, TranslationsReloaded, c.Reason)
	case <-time.After(time.Second):
		t.Fatal("stream did not receive broadcast")
	}

	cancel()
	<-done
	assert.Equal(t, 0, n.Listeners())
}
