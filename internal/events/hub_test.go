package events

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okradley/veilarena/internal/model"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	go hub.Run()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("hub never reached %d clients", want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestHubRegistersAndUnregistersClients(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, "player-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)
}

func TestPublishReachesAllClients(t *testing.T) {
	hub := newTestHub(t)

	c1 := NewClient(hub, "player-1")
	c2 := NewClient(hub, "player-2")
	hub.Register(c1)
	hub.Register(c2)
	waitForClients(t, hub, 2)

	hub.Publish(model.Event{
		Type:      model.EventMonsterFought,
		Timestamp: time.Now(),
		PlayerID:  "player-1",
		Payload:   model.MonsterFoughtPayload{Victory: true, Reward: 42, Battles: 1},
	})

	for _, c := range []*Client{c1, c2} {
		select {
		case frame := <-c.send:
			text := string(frame)
			assert.True(t, strings.HasPrefix(text, "event: monster_fought\n"), "frame: %q", text)
			assert.Contains(t, text, `"reward":42`)
			assert.True(t, strings.HasSuffix(text, "\n\n"))
		case <-time.After(time.Second):
			t.Fatal("client never received event")
		}
	}
}

func TestPublishDropsWhenClientBufferFull(t *testing.T) {
	hub := newTestHub(t)

	client := NewClient(hub, "player-1")
	// Saturate the buffer so the next broadcast must drop
	for i := 0; i < sendBufferSize; i++ {
		client.send <- []byte("x")
	}
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Publish(model.Event{Type: model.EventHealUsed, PlayerID: "player-1"})

	// The hub must keep running despite the drop
	hub.Publish(model.Event{Type: model.EventHealUsed, PlayerID: "player-1"})
	require.Equal(t, 1, hub.ClientCount())
}

func TestStopDisconnectsClients(t *testing.T) {
	hub := NewHub(slog.New(slog.NewJSONHandler(io.Discard, nil)))
	go hub.Run()

	client := NewClient(hub, "player-1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Stop()

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("client channel never closed")
	}
}
