package notify_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/facet-ui/facet/notify"
)

func TestChannel_SendReceive(t *testing.T) {
	ctx := context.Background()
	ch := notify.NewChannel[string](ctx, 1)

	if err := ch.Send(ctx, "hello"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	got, err := ch.Receive(ctx)
	if err != nil {
		t.Fatalf("Receive() error = %v", err)
	}
	if got != "hello" {
		t.Errorf("Receive() = %q, want %q", got, "hello")
	}
}

func TestChannel_TrySend(t *testing.T) {
	ch := notify.NewChannel[int](context.Background(), 1)

	if !ch.TrySend(1) {
		t.Error("TrySend() on empty buffer = false, want true")
	}
	if ch.TrySend(2) {
		t.Error("TrySend() on full buffer = true, want false")
	}

	ch.Close()
	if ch.TrySend(3) {
		t.Error("TrySend() on closed channel = true, want false")
	}
}

func TestChannel_TryReceive(t *testing.T) {
	ch := notify.NewChannel[int](context.Background(), 1)

	if _, ok := ch.TryReceive(); ok {
		t.Error("TryReceive() on empty channel = true, want false")
	}

	ch.TrySend(42)
	got, ok := ch.TryReceive()
	if !ok {
		t.Fatal("TryReceive() = false, want true")
	}
	if got != 42 {
		t.Errorf("TryReceive() = %d, want 42", got)
	}
}

func TestChannel_ReceiveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	ch := notify.NewChannel[int](context.Background(), 1)

	_, err := ch.Receive(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Receive() error = %v, want %v", err, context.DeadlineExceeded)
	}
}

func TestChannel_SendParentContextCancelled(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ch := notify.NewChannel[int](parent, 0)
	cancel()

	err := ch.Send(context.Background(), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Send() error = %v, want %v", err, context.Canceled)
	}
}

func TestChannel_SendAfterClose(t *testing.T) {
	ch := notify.NewChannel[int](context.Background(), 1)
	ch.Close()

	if err := ch.Send(context.Background(), 1); !errors.Is(err, notify.ErrClosed) {
		t.Errorf("Send() error = %v, want %v", err, notify.ErrClosed)
	}
}

func TestChannel_Close(t *testing.T) {
	ch := notify.NewChannel[int](context.Background(), 1)

	if ch.IsClosed() {
		t.Error("IsClosed() = true before Close")
	}

	ch.Close()
	ch.Close()

	if !ch.IsClosed() {
		t.Error("IsClosed() = false after Close")
	}
}

func TestChannel_ConcurrentTrySendClose(t *testing.T) {
	for i := 0; i < 100; i++ {
		ch := notify.NewChannel[int](context.Background(), 4)

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					ch.TrySend(j)
				}
			}()
		}
		ch.Close()
		wg.Wait()

		if ch.TrySend(1) {
			t.Fatal("TrySend() on closed channel = true, want false")
		}
	}
}

func TestChannel_LenCap(t *testing.T) {
	ch := notify.NewChannel[int](context.Background(), 4)

	if got := ch.Cap(); got != 4 {
		t.Errorf("Cap() = %d, want 4", got)
	}
	if got := ch.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}

	ch.TrySend(1)
	ch.TrySend(2)
	if got := ch.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}
