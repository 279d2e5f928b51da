package sse

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Client is one open stream
type Client struct {
	ID     string
	Events chan Event

	filter  map[string]bool // nil means every type
	dropped atomic.Uint64
}

// Wants reports whether the client subscribed to eventType
func (c *Client) Wants(eventType string) bool {
	return c.filter == nil || c.filter[eventType]
}

// Dropped is the number of events skipped because the client fell behind
func (c *Client) Dropped() uint64 {
	return c.dropped.Load()
}

func (c *Client) offer(evt Event) {
	select {
	case c.Events <- evt:
	default:
		c.dropped.Add(1)
	}
}

// Hub fans events out to every connected client. It remembers the newest
// event of each type so a dashboard that connects mid-craft starts from the
// current craft and the last learned recipe.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	latest  map[string]Event
	stopped bool

	seq      atomic.Uint64
	queue    chan Event
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub; call Start before broadcasting
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		latest:  make(map[string]Event),
		queue:   make(chan Event, BroadcastBufferSize),
		done:    make(chan struct{}),
	}
}

// Start runs the fan-out loop
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the fan-out loop and closes every client stream. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.mu.Lock()
		defer h.mu.Unlock()
		h.stopped = true
		for id, client := range h.clients {
			close(client.Events)
			delete(h.clients, id)
		}
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case evt := <-h.queue:
			h.deliver(evt)
		case <-h.done:
			return
		}
	}
}

func (h *Hub) deliver(evt Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[evt.Type] = evt
	for _, client := range h.clients {
		if client.Wants(evt.Type) {
			client.offer(evt)
		}
	}
}

// Register opens a stream for eventTypes (empty means all). The newest
// retained event of each wanted type with a sequence above afterID is queued
// on the client straight away.
func (h *Hub) Register(eventTypes []string, afterID uint64) *Client {
	client := &Client{
		ID:     uuid.New().String(),
		Events: make(chan Event, ClientEventBuffer),
	}
	if len(eventTypes) > 0 {
		client.filter = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			client.filter[t] = true
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopped {
		close(client.Events)
		return client
	}
	h.clients[client.ID] = client

	replay := make([]Event, 0, len(h.latest))
	for _, evt := range h.latest {
		if client.Wants(evt.Type) && eventSeq(evt) > afterID {
			replay = append(replay, evt)
		}
	}
	sort.Slice(replay, func(i, j int) bool { return eventSeq(replay[i]) < eventSeq(replay[j]) })
	for _, evt := range replay {
		client.offer(evt)
	}

	return client
}

// Unregister closes the client's stream
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	client, ok := h.clients[clientID]
	if ok {
		delete(h.clients, clientID)
		close(client.Events)
	}
	h.mu.Unlock()

	if ok && client.Dropped() > 0 {
		slog.Warn(LogMsgClientLagged, "client_id", clientID, "dropped", client.Dropped())
	}
}

// Broadcast stamps the next sequence number on an event and queues it
func (h *Hub) Broadcast(eventType string, payload any) {
	evt := Event{
		ID:        strconv.FormatUint(h.seq.Add(1), 10),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.queue <- evt:
	default:
		slog.Warn(LogMsgEventDropped, "event_type", eventType)
	}
}

// ClientCount returns the number of open streams
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func eventSeq(evt Event) uint64 {
	n, _ := strconv.ParseUint(evt.ID, 10, 64)
	return n
}

// FormatSSEMessage renders one event in text/event-stream framing. Events
// without an ID (connected, keepalive) omit the id line so they never move a
// browser's Last-Event-ID.
func FormatSSEMessage(evt Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if evt.ID != "" {
		b.WriteString("id: " + evt.ID + "\n")
	}
	b.WriteString("event: " + evt.Type + "\n")
	b.WriteString("data: ")
	b.Write(data)
	b.WriteString("\n\n")
	return []byte(b.String()), nil
}
