package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/goleak"

	"vacuumworld/internal/domain/environment"
	"vacuumworld/internal/domain/world"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, b, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return m
}

func waitClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.Clients() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("clients got=%d want=%d", h.Clients(), want)
}

func TestHub_BroadcastsSnapshots(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	hub.Publish(0, environment.Snapshot{Size: 3, Locations: []environment.LocationSnapshot{}})

	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitClients(t, hub, 1)

	first := readMessage(t, conn)
	if first.Type != "SNAPSHOT" || first.Tick != 0 || first.Snapshot.Size != 3 {
		t.Fatalf("unexpected replayed message: %+v", first)
	}

	hub.Publish(1, environment.Snapshot{Size: 3, Locations: []environment.LocationSnapshot{
		{Coord: world.Coord{X: 1, Y: 1}, Dirt: &environment.DirtSnapshot{Colour: world.Green}},
	}})
	next := readMessage(t, conn)
	if next.Tick != 1 || len(next.Snapshot.Locations) != 1 || next.Snapshot.Locations[0].Dirt == nil {
		t.Fatalf("unexpected message: %+v", next)
	}

	_ = conn.Close()
	waitClients(t, hub, 0)
	hub.Close()
}

func TestHub_DropsSlowClientsAndCloses(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	id, ch, ok := hub.register()
	if !ok {
		t.Fatalf("register failed")
	}
	for i := 0; i <= clientBuffer; i++ {
		hub.Publish(uint64(i), environment.Snapshot{Size: 3})
	}
	if hub.Clients() != 0 {
		t.Fatalf("expected slow client %d to be dropped", id)
	}
	drained := 0
	for range ch {
		drained++
	}
	if drained != clientBuffer {
		t.Fatalf("drained got=%d want=%d", drained, clientBuffer)
	}

	hub.Close()
	if _, _, ok := hub.register(); ok {
		t.Fatalf("expected register to fail after Close")
	}
	hub.unregister(id)
}
