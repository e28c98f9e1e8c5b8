package websockets

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(h *Hub, clientType ClientType) *Client {
	return &Client{hub: h, send: make(chan []byte, 4), clientType: clientType}
}

func TestHubBroadcastToType(t *testing.T) {
	h := NewHub()
	go h.Run()

	admin := newTestClient(h, ClientTypeAdmin)
	pos := newTestClient(h, ClientTypePOS)
	h.register <- admin
	h.register <- pos

	h.BroadcastToType(ClientTypeAdmin, []byte("low stock"))

	select {
	case msg := <-admin.send:
		assert.Equal(t, "low stock", string(msg))
	case <-time.After(time.Second):
		t.Fatal("admin client never received the message")
	}

	select {
	case msg := <-pos.send:
		t.Fatalf("pos client received %q", msg)
	default:
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	h := NewHub()
	go h.Run()

	admin := newTestClient(h, ClientTypeAdmin)
	pos := newTestClient(h, ClientTypePOS)
	h.register <- admin
	h.register <- pos

	h.BroadcastMessage([]byte("refresh"))

	for _, c := range []*Client{admin, pos} {
		select {
		case msg := <-c.send:
			assert.Equal(t, "refresh", string(msg))
		case <-time.After(time.Second):
			t.Fatal("client never received the broadcast")
		}
	}
}

// Typed broadcasts arrive from request goroutines while clients register and
// unregister. All of it must serialize through the hub goroutine; run with
// -race to catch regressions.
func TestHubConcurrentTypedBroadcast(t *testing.T) {
	h := NewHub()
	go h.Run()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				client := newTestClient(h, ClientTypeAdmin)
				h.register <- client
				h.BroadcastToType(ClientTypeAdmin, []byte("x"))
				h.unregister <- client
			}
		}()
	}
	wg.Wait()
}
