package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/mcp-training/smartmario/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 4),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount(sessionID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Expected %d clients in session %s, got %d", want, sessionID, hub.ClientCount(sessionID))
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return message
	case <-time.After(time.Second):
		t.Fatal("No message received within timeout")
	}
	return Message{}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	client1 := newTestClient(hub, "abcd")
	client2 := newTestClient(hub, "abcd")

	hub.registerClient(client1)
	hub.registerClient(client2)
	if len(hub.sessions["abcd"]) != 2 {
		t.Fatalf("Expected 2 clients, got %d", len(hub.sessions["abcd"]))
	}

	hub.unregisterClient(client1)
	if _, ok := <-client1.send; ok {
		t.Error("Expected send channel of unregistered client to be closed")
	}
	if len(hub.sessions["abcd"]) != 1 {
		t.Errorf("Expected 1 client remaining, got %d", len(hub.sessions["abcd"]))
	}

	// A second unregister is a no-op.
	hub.unregisterClient(client1)

	hub.unregisterClient(client2)
	if _, exists := hub.sessions["abcd"]; exists {
		t.Error("Session should be removed after its last client left")
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := startHub(t)
	client := newTestClient(hub, "abcd")
	other := newTestClient(hub, "ffff")
	hub.register <- client
	hub.register <- other

	state := &engine.GameState{
		PlayerPos:    engine.Position{X: 2, Y: 1},
		Score:        3,
		MaxMushrooms: 5,
	}
	hub.BroadcastToSession("ABCD", state)

	message := receive(t, client)
	if message.Event != EventStateUpdate {
		t.Errorf("Expected event %s, got %s", EventStateUpdate, message.Event)
	}
	if message.GameState == nil || message.GameState.PlayerPos != state.PlayerPos || message.GameState.Score != 3 {
		t.Errorf("Game state not transmitted: %+v", message.GameState)
	}

	select {
	case <-other.send:
		t.Error("Client of another session should not receive the update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := startHub(t)
	client := newTestClient(hub, "abcd")
	hub.register <- client

	hub.BroadcastEvent("abcd", EventTimeout, &engine.GameState{TimedOut: true, GameOver: true}, map[string]int{"score": 2})

	message := receive(t, client)
	if message.Event != EventTimeout {
		t.Errorf("Expected event %s, got %s", EventTimeout, message.Event)
	}
	if message.GameState == nil || !message.GameState.TimedOut {
		t.Error("Expected timed-out state in event")
	}
	data, ok := message.Data.(map[string]any)
	if !ok || data["score"] != float64(2) {
		t.Errorf("Expected data with score 2, got %v", message.Data)
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := startHub(t)
	client := newTestClient(hub, "slow")
	hub.register <- client

	for i := 0; i < cap(client.send)+1; i++ {
		hub.BroadcastToSession("slow", &engine.GameState{Score: i})
	}
	waitForClients(t, hub, "slow", 0)
}

func TestHubStopClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	client := newTestClient(hub, "abcd")
	hub.register <- client
	cancel()
	<-hub.done

	if _, ok := <-client.send; ok {
		t.Error("Expected client channel to be closed on stop")
	}
	if hub.ClientCount("abcd") != 0 {
		t.Error("Expected no clients after stop")
	}
	// Broadcasting after stop must not block.
	hub.BroadcastToSession("abcd", &engine.GameState{})
}

func TestWebSocketRoundTrip(t *testing.T) {
	hub := startHub(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=ws01"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, "ws01", 1)

	hub.BroadcastToSession("ws01", &engine.GameState{PlayerPos: engine.Position{X: 1, Y: 1}, Score: 2})
	hub.BroadcastEvent("ws01", EventRoundOver, &engine.GameState{Victory: true, GameOver: true}, nil)

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var first, second Message
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("Failed to read first message: %v", err)
	}
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("Failed to read second message: %v", err)
	}

	if first.Event != EventStateUpdate || first.GameState.Score != 2 {
		t.Errorf("Unexpected first message: %+v", first)
	}
	if second.Event != EventRoundOver || !second.GameState.Victory {
		t.Errorf("Unexpected second message: %+v", second)
	}

	conn.Close()
	waitForClients(t, hub, "ws01", 0)
}
