package notify

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fairway/internal/domain/entity"
	"fairway/internal/domain/service"
)

func newTestHub() service.Notifier {
	return &hub{
		subscribers: make(map[string]map[*subscriber]struct{}),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func receive(t *testing.T, ch <-chan entity.Notification) entity.Notification {
	t.Helper()
	select {
	case n := <-ch:
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for notification")

		return entity.Notification{}
	}
}

func TestHub_PublishReachesOnlySubscribedUser(t *testing.T) {
	h := newTestHub()
	defer h.Close()

	aliceCh, cancelAlice := h.Subscribe("alice")
	defer cancelAlice()
	bobCh, cancelBob := h.Subscribe("bob")
	defer cancelBob()

	h.Publish("alice", entity.NotificationSuccess, "Round logged")

	n := receive(t, aliceCh)
	assert.Equal(t, "alice", n.UserID)
	assert.Equal(t, entity.NotificationSuccess, n.Level)
	assert.Equal(t, "Round logged", n.Text)
	assert.NotEmpty(t, n.ID)

	select {
	case <-bobCh:
		t.Fatal("bob received alice's notification")
	default:
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	h := newTestHub()
	defer h.Close()

	ch, cancel := h.Subscribe("alice")
	defer cancel()

	// Overfill the buffer; publishers must not block.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			h.Publish("alice", entity.NotificationInfo, "msg")
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// The buffer still holds the first messages.
	require.Len(t, ch, subscriberBuffer)
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	h := newTestHub()
	defer h.Close()

	ch, cancel := h.Subscribe("alice")
	cancel()

	// Channel is closed on cancel; publishing afterwards is a no-op.
	h.Publish("alice", entity.NotificationInfo, "late")
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_CloseClosesAllSubscribers(t *testing.T) {
	h := newTestHub()

	ch, cancel := h.Subscribe("alice")
	h.Close()

	_, open := <-ch
	assert.False(t, open)

	// Cancel after close must not panic.
	cancel()
}
