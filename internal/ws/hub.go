package ws

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

const (
	EventConversations = "conversations"
	EventFeedStatus    = "feed_status"
	EventReadReceipt   = "read_receipt"
	EventPresence      = "presence"
	EventNewMessage    = "new_message"
)

// ClientMessageHandler handles incoming WebSocket messages from dashboards.
type ClientMessageHandler interface {
	HandleMarkRead(ctx context.Context, conversationID string)
	HandleSetPresence(online bool)
}

// Snapshot is the state a dashboard receives right after connecting.
type Snapshot struct {
	Conversations []entity.ConversationView
	Streams       map[string]bool
	Connected     bool
	Online        bool
	LastSeen      time.Time
}

type SnapshotProvider func() Snapshot

// Event represents a WebSocket event sent to dashboards.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type feedStatus struct {
	Streams   map[string]bool `json:"streams"`
	Connected bool            `json:"connected"`
}

type readReceipt struct {
	ConversationID string   `json:"conversation_id"`
	MessageIDs     []string `json:"message_ids"`
}

type presenceState struct {
	Online   bool      `json:"online"`
	LastSeen time.Time `json:"last_seen"`
}

// Hub maintains the set of active WebSocket clients and broadcasts events.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	handler    ClientMessageHandler
	snapshot   SnapshotProvider
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log.With(sl.Module("ws.hub")),
	}
}

func (h *Hub) SetHandler(handler ClientMessageHandler) {
	h.handler = handler
}

func (h *Hub) SetSnapshotProvider(provider SnapshotProvider) {
	h.snapshot = provider
}

// Clients returns the number of connected dashboards.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run is the hub's event loop; it closes every client when ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendSnapshot(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				h.log.With(sl.Err(err)).Error("marshal event", slog.String("type", event.Type))
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// slow consumer
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) sendSnapshot(client *Client) {
	if h.snapshot == nil {
		return
	}
	s := h.snapshot()
	events := []*Event{
		{Type: EventConversations, Data: s.Conversations},
		{Type: EventFeedStatus, Data: feedStatus{Streams: s.Streams, Connected: s.Connected}},
		{Type: EventPresence, Data: presenceState{Online: s.Online, LastSeen: s.LastSeen}},
	}
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			continue
		}
		select {
		case client.send <- data:
		default:
		}
	}
}

func (h *Hub) publish(event *Event) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn("broadcast queue full, event dropped", slog.String("type", event.Type))
	}
}

// BroadcastConversations sends the full conversation list.
func (h *Hub) BroadcastConversations(views []entity.ConversationView) {
	h.publish(&Event{Type: EventConversations, Data: views})
}

func (h *Hub) BroadcastFeedStatus(streams map[string]bool, connected bool) {
	h.publish(&Event{Type: EventFeedStatus, Data: feedStatus{Streams: streams, Connected: connected}})
}

func (h *Hub) BroadcastReadReceipt(conversationID string, messageIDs []string) {
	h.publish(&Event{Type: EventReadReceipt, Data: readReceipt{ConversationID: conversationID, MessageIDs: messageIDs}})
}

func (h *Hub) BroadcastPresence(online bool, lastSeen time.Time) {
	h.publish(&Event{Type: EventPresence, Data: presenceState{Online: online, LastSeen: lastSeen}})
}

func (h *Hub) BroadcastNewMessage(m entity.Message) {
	h.publish(&Event{Type: EventNewMessage, Data: m})
}

// clientEvent represents an incoming WebSocket message from a dashboard.
type clientEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// HandleClientMessage parses and dispatches an incoming message from a client.
func (h *Hub) HandleClientMessage(ctx context.Context, username string, raw []byte) {
	if h.handler == nil {
		return
	}
	log := h.log.With(slog.String("username", username))

	var event clientEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		log.With(sl.Err(err)).Warn("failed to parse client ws message")
		return
	}

	switch event.Type {
	case "mark_read":
		var data struct {
			ConversationID string `json:"conversation_id"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			log.With(sl.Err(err)).Warn("failed to parse mark_read data")
			return
		}
		if data.ConversationID == "" {
			return
		}
		h.handler.HandleMarkRead(ctx, data.ConversationID)
	case "presence":
		var data struct {
			Online bool `json:"online"`
		}
		if err := json.Unmarshal(event.Data, &data); err != nil {
			log.With(sl.Err(err)).Warn("failed to parse presence data")
			return
		}
		h.handler.HandleSetPresence(data.Online)
	default:
		log.Debug("unknown client event", slog.String("type", event.Type))
	}
}
