package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) (Event, bool) {
	t.Helper()
	select {
	case e, ok := <-sub.C:
		return e, ok
	case <-time.After(50 * time.Millisecond):
		return Event{}, false
	}
}

func TestHub_Routing(t *testing.T) {
	hub := NewHub()
	ctx := context.Background()

	owner := hub.Subscribe(7, false)
	other := hub.Subscribe(8, false)
	admin := hub.Subscribe(1, true)
	defer owner.Close()
	defer other.Close()
	defer admin.Close()

	hub.Publish(ctx, Event{Type: OrderStatusChanged, ResourceID: 42, Status: "in-progress", UserID: 7})

	e, ok := receive(t, owner)
	require.True(t, ok)
	assert.Equal(t, uint(42), e.ResourceID)
	assert.Equal(t, "in-progress", e.Status)
	assert.False(t, e.OccurredAt.IsZero())

	e, ok = receive(t, admin)
	require.True(t, ok)
	assert.Equal(t, OrderStatusChanged, e.Type)

	_, ok = receive(t, other)
	assert.False(t, ok, "other users must not see the event")

	assert.Equal(t, uint64(1), hub.Published.Load())
}

func TestHub_DropsWhenFull(t *testing.T) {
	hub := NewHub()
	hub.buffer = 1
	sub := hub.Subscribe(7, false)
	defer sub.Close()

	for i := 0; i < 3; i++ {
		hub.Publish(context.Background(), Event{Type: OrderStatusChanged, UserID: 7})
	}

	assert.Equal(t, uint64(2), hub.Dropped.Load())
}

func TestSubscription_Close(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(7, false)
	assert.Equal(t, 1, hub.Subscribers())

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, hub.Subscribers())
	_, ok := <-sub.C
	assert.False(t, ok)
}

func TestHub_Close(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(7, true)

	hub.Close()

	_, ok := <-sub.C
	assert.False(t, ok)
	assert.NotPanics(t, sub.Close)
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NotPanics(t, func() { p.Publish(context.Background(), Event{}) })
}

func TestWSServer_StreamsEvents(t *testing.T) {
	hub := NewHub()
	ws := NewWSServer(hub, nil)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Serve(w, r, 7, false)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(context.Background(), Event{Type: ServiceRequestStatusChanged, ResourceID: 3, Status: "assigned", UserID: 7})

	var got Event
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ServiceRequestStatusChanged, got.Type)
	assert.Equal(t, uint(3), got.ResourceID)
	assert.Equal(t, "assigned", got.Status)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWSServer_RejectsForeignOrigin(t *testing.T) {
	ws := NewWSServer(NewHub(), []string{"http://allowed.test"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.Serve(w, r, 7, false)
	}))
	defer srv.Close()

	header := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	assert.Error(t, err)
	if resp != nil {
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}
}
