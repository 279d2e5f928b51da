package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeCraft_Go/internal/domain"
	"github.com/osse101/RecipeCraft_Go/internal/event"
	"github.com/osse101/RecipeCraft_Go/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case evt := <-c.Events:
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

var (
	craftStarted  = string(event.CraftStarted)
	recipeLearned = string(event.RecipeLearned)
)

func TestHub_FiltersByType(t *testing.T) {
	hub := startHub(t)

	all := hub.Register(nil, 0)
	learnedOnly := hub.Register([]string{recipeLearned}, 0)
	assert.Equal(t, 2, hub.ClientCount())

	hub.Broadcast(craftStarted, "craft")
	hub.Broadcast(recipeLearned, "learned")

	assert.Equal(t, craftStarted, receive(t, all).Type)
	assert.Equal(t, recipeLearned, receive(t, all).Type)

	evt := receive(t, learnedOnly)
	assert.Equal(t, recipeLearned, evt.Type)
	assert.Equal(t, "learned", evt.Payload)
	assert.Equal(t, "2", evt.ID)
	assert.Empty(t, learnedOnly.Events)
}

func TestHub_ReplaysNewestEventPerType(t *testing.T) {
	hub := startHub(t)

	probe := hub.Register(nil, 0)
	hub.Broadcast(craftStarted, "first")
	hub.Broadcast(craftStarted, "second")
	hub.Broadcast(recipeLearned, "learned")
	for range 3 {
		receive(t, probe)
	}

	late := hub.Register(nil, 0)
	evt := receive(t, late)
	assert.Equal(t, "2", evt.ID)
	assert.Equal(t, "second", evt.Payload)
	assert.Equal(t, recipeLearned, receive(t, late).Type)
	assert.Empty(t, late.Events)

	resumed := hub.Register(nil, 2)
	assert.Equal(t, "3", receive(t, resumed).ID)
	assert.Empty(t, resumed.Events)

	craftsOnly := hub.Register([]string{craftStarted}, 0)
	assert.Equal(t, "second", receive(t, craftsOnly).Payload)
	assert.Empty(t, craftsOnly.Events)
}

func TestHub_SlowClientDropsInsteadOfBlocking(t *testing.T) {
	hub := startHub(t)
	slow := hub.Register(nil, 0)

	for i := 0; i < ClientEventBuffer+10; i++ {
		hub.Broadcast(craftStarted, i)
	}

	require.Eventually(t, func() bool { return slow.Dropped() == 10 }, time.Second, 5*time.Millisecond)
	assert.Len(t, slow.Events, ClientEventBuffer)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)

	c := hub.Register(nil, 0)
	hub.Unregister(c.ID)
	assert.Zero(t, hub.ClientCount())

	_, open := <-c.Events
	assert.False(t, open)
	assert.NotPanics(t, func() { hub.Unregister(c.ID) })
}

func TestHub_StopTwice(t *testing.T) {
	defer leaktest.Check(t)()
	hub := NewHub()
	hub.Start()
	c := hub.Register(nil, 0)

	hub.Stop()
	assert.NotPanics(t, hub.Stop)

	_, open := <-c.Events
	assert.False(t, open)

	after := hub.Register(nil, 0)
	_, open = <-after.Events
	assert.False(t, open, "registering on a stopped hub yields a closed stream")
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "7", Type: recipeLearned, Timestamp: 1, Payload: map[string]string{"recipe": "Fire Potion"}})
	require.NoError(t, err)

	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: 7\nevent: recipe.learned\ndata: {"))
	assert.Contains(t, text, `"recipe":"Fire Potion"`)
	assert.True(t, strings.HasSuffix(text, "\n\n"))

	keepalive, err := FormatSSEMessage(Event{Type: EventTypeKeepalive})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(keepalive), "event: keepalive\n"))
}

func TestSubscriber_ForwardsCraftingEvents(t *testing.T) {
	ctx := context.Background()
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe(ctx)

	c := hub.Register(nil, 0)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(ctx, event.NewItemUsedEvent(domain.ItemKey{Type: domain.ItemTypeGood, ID: 1}, true)))
	require.NoError(t, bus.Publish(ctx, event.NewRecipeLearnedEvent("Fire Potion", "Learned Recipe: Fire Potion", domain.AudioCue{})))

	evt := receive(t, c)
	assert.Equal(t, string(event.RecipeLearned), evt.Type, "item.used is not streamed")
	payload, ok := evt.Payload.(event.RecipeLearnedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, "Fire Potion", payload.Recipe)
}

type frame struct {
	id, event string
}

func readFrame(t *testing.T, reader *bufio.Reader) frame {
	t.Helper()
	var f frame
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		switch {
		case line == "\n":
			return f
		case strings.HasPrefix(line, "id: "):
			f.id = strings.TrimSpace(strings.TrimPrefix(line, "id: "))
		case strings.HasPrefix(line, "event: "):
			f.event = strings.TrimSpace(strings.TrimPrefix(line, "event: "))
		}
	}
}

func openStream(t *testing.T, url string, header http.Header) *bufio.Reader {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func TestHandler_StreamsEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub))
	t.Cleanup(srv.Close)

	reader := openStream(t, srv.URL+"?types=recipe.learned", nil)

	connected := readFrame(t, reader)
	assert.Equal(t, EventTypeConnected, connected.event)
	assert.Empty(t, connected.id)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Broadcast(craftStarted, nil)
	hub.Broadcast(recipeLearned, nil)
	assert.Equal(t, frame{id: "2", event: recipeLearned}, readFrame(t, reader))
}

func TestHandler_ResumesFromLastEventID(t *testing.T) {
	hub := startHub(t)
	probe := hub.Register(nil, 0)
	hub.Broadcast(craftStarted, nil)
	hub.Broadcast(recipeLearned, nil)
	receive(t, probe)
	receive(t, probe)

	srv := httptest.NewServer(Handler(hub))
	t.Cleanup(srv.Close)

	reader := openStream(t, srv.URL, http.Header{HeaderLastEventID: []string{"1"}})
	assert.Equal(t, EventTypeConnected, readFrame(t, reader).event)
	assert.Equal(t, frame{id: "2", event: recipeLearned}, readFrame(t, reader))
}
