package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func serveRoom(t *testing.T, hub *Hub, room string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, room)
		if !hub.Register(client) {
			conn.Close()
			return
		}
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestRoomForTournament(t *testing.T) {
	assert.Equal(t, "tournament_abc_roster", RoomForTournament("abc"))
}

func TestHub_BroadcastReachesRoomOnly(t *testing.T) {
	hub, _ := startHub(t)
	roomA := RoomForTournament("a")
	roomB := RoomForTournament("b")

	connA := dial(t, serveRoom(t, hub, roomA))
	connB := dial(t, serveRoom(t, hub, roomB))

	require.Eventually(t, func() bool {
		return hub.ClientCount(roomA) == 1 && hub.ClientCount(roomB) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.BroadcastToRoom(roomA, Message{Type: "ROSTER_ENTRY_ADDED", RoomID: roomA, Payload: map[string]string{"id": "e1"}})

	require.NoError(t, connA.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := connA.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		RoomID  string            `json:"roomId"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "ROSTER_ENTRY_ADDED", msg.Type)
	assert.Equal(t, roomA, msg.RoomID)
	assert.Equal(t, "e1", msg.Payload["id"])

	require.NoError(t, connB.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = connB.ReadMessage()
	assert.Error(t, err, "room b must not receive room a messages")
}

func TestHub_ClientLeavesRoomOnClose(t *testing.T) {
	hub, _ := startHub(t)
	room := RoomForTournament("a")
	conn := dial(t, serveRoom(t, hub, room))

	require.Eventually(t, func() bool { return hub.ClientCount(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount(room) == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_StopsOnContextCancel(t *testing.T) {
	hub, cancel := startHub(t)
	room := RoomForTournament("a")
	conn := dial(t, serveRoom(t, hub, room))
	require.Eventually(t, func() bool { return hub.ClientCount(room) == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection is closed when the hub stops")
	assert.Zero(t, hub.ClientCount(room))

	select {
	case <-hub.done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}
	assert.False(t, hub.Register(&Client{room: room}))
}

func TestHub_BroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub(nil)
	assert.NotPanics(t, func() {
		hub.BroadcastToRoom("nobody", Message{Type: "X"})
	})
}
