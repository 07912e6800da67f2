package inbox

import (
	"DentEase/entity"
	"DentEase/internal/lib/sl"
	"DentEase/internal/presence"
	"log/slog"
	"sync"
	"time"
)

// Listener receives the recomputed views after every change.
type Listener func(views []entity.ConversationView)

// Inbox holds the latest snapshot of both streams and the views derived from
// them. Either stream may deliver first; views are recomputed in full on every
// snapshot.
type Inbox struct {
	mu               sync.RWMutex
	messages         []entity.Message
	conversations    []entity.Conversation
	hasMessages      bool
	hasConversations bool
	result           Result
	seen             map[string]struct{}
	streams          map[string]bool
	listeners        []Listener
	onNewMessage     func(entity.Message)
	now              func() time.Time
	log              *slog.Logger
}

func New(log *slog.Logger) *Inbox {
	return &Inbox{
		seen:    make(map[string]struct{}),
		streams: make(map[string]bool),
		now:     time.Now,
		log:     log.With(sl.Module("inbox")),
	}
}

func (i *Inbox) Subscribe(fn Listener) {
	i.mu.Lock()
	i.listeners = append(i.listeners, fn)
	i.mu.Unlock()
}

// SetNewMessageHandler is called for every unread user message that appears
// after the first message snapshot.
func (i *Inbox) SetNewMessageHandler(fn func(entity.Message)) {
	i.mu.Lock()
	i.onNewMessage = fn
	i.mu.Unlock()
}

func (i *Inbox) ApplyMessages(messages []entity.Message) {
	i.mu.Lock()
	var fresh []entity.Message
	seen := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		seen[m.ID] = struct{}{}
		if !i.hasMessages {
			continue
		}
		if _, ok := i.seen[m.ID]; !ok && m.IsUnread() {
			fresh = append(fresh, m)
		}
	}
	i.seen = seen
	i.messages = messages
	i.hasMessages = true
	views := i.recomputeLocked()
	listeners, onNew := i.listeners, i.onNewMessage
	orphans := len(i.result.Orphans)
	i.mu.Unlock()

	i.log.With(
		slog.Int("messages", len(messages)),
		slog.Int("conversations", len(views)),
		slog.Int("orphans", orphans),
	).Debug("message snapshot applied")

	i.notify(listeners, views)
	if onNew != nil {
		for _, m := range fresh {
			onNew(m)
		}
	}
}

func (i *Inbox) ApplyConversations(conversations []entity.Conversation) {
	i.mu.Lock()
	i.conversations = conversations
	i.hasConversations = true
	views := i.recomputeLocked()
	listeners := i.listeners
	i.mu.Unlock()

	i.log.Debug("conversation snapshot applied", slog.Int("conversations", len(conversations)))
	i.notify(listeners, views)
}

// MarkRead flips every unread user message of a conversation to read in the
// local snapshot and returns the ids that must be persisted.
func (i *Inbox) MarkRead(conversationID string) []string {
	i.mu.Lock()
	var thread []entity.Message
	for _, v := range i.result.Conversations {
		if v.ID == conversationID {
			thread = v.Messages
			break
		}
	}
	unread := make(map[string]struct{})
	for _, m := range thread {
		if m.IsUnread() {
			unread[m.ID] = struct{}{}
		}
	}
	if len(unread) == 0 {
		i.mu.Unlock()
		return nil
	}

	ids := make([]string, 0, len(unread))
	messages := make([]entity.Message, len(i.messages))
	copy(messages, i.messages)
	for k := range messages {
		if _, ok := unread[messages[k].ID]; ok {
			messages[k].IsRead = true
			ids = append(ids, messages[k].ID)
		}
	}
	i.messages = messages
	views := i.recomputeLocked()
	listeners := i.listeners
	i.mu.Unlock()

	i.notify(listeners, views)
	return ids
}

func (i *Inbox) Views() []entity.ConversationView {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return withPresence(i.result.Conversations, i.now(), presence.Status)
}

func (i *Inbox) View(conversationID string) (entity.ConversationView, bool) {
	for _, v := range i.Views() {
		if v.ID == conversationID {
			return v, true
		}
	}
	return entity.ConversationView{}, false
}

func (i *Inbox) Orphans() []entity.Message {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]entity.Message(nil), i.result.Orphans...)
}

// TotalUnread sums unread counts over all conversations.
func (i *Inbox) TotalUnread() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	total := 0
	for _, v := range i.result.Conversations {
		total += v.UnreadCount
	}
	return total
}

// Synced reports whether both streams delivered at least one snapshot.
func (i *Inbox) Synced() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.hasMessages && i.hasConversations
}

func (i *Inbox) SetFeedState(stream string, connected bool) {
	i.mu.Lock()
	i.streams[stream] = connected
	i.mu.Unlock()
}

// FeedState returns the last known state per stream.
func (i *Inbox) FeedState() map[string]bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[string]bool, len(i.streams))
	for k, v := range i.streams {
		out[k] = v
	}
	return out
}

// Connected is false while any known stream is disconnected.
func (i *Inbox) Connected() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if len(i.streams) == 0 {
		return false
	}
	for _, ok := range i.streams {
		if !ok {
			return false
		}
	}
	return true
}

func (i *Inbox) recomputeLocked() []entity.ConversationView {
	i.result = Aggregate(i.messages, i.conversations)
	return withPresence(i.result.Conversations, i.now(), presence.Status)
}

func (i *Inbox) notify(listeners []Listener, views []entity.ConversationView) {
	for _, fn := range listeners {
		fn(views)
	}
}
