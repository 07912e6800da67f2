package inbox

import (
	"DentEase/entity"
	"sort"
	"strings"
	"time"
)

// Result is one full recompute of the inbox.
type Result struct {
	Conversations []entity.ConversationView
	// Orphans are legacy admin messages with no conversation id and no earlier
	// user message to attach them to.
	Orphans []entity.Message
}

// Aggregate groups a full message snapshot into conversation views and
// reconciles them with the stored conversation metadata.
//
// Messages carrying a conversation id are grouped by it. Legacy messages are
// grouped by the sending user; a legacy admin message joins the thread of the
// latest user message before it. Views are ordered newest first and their
// messages oldest first.
func Aggregate(messages []entity.Message, conversations []entity.Conversation) Result {
	sorted := make([]entity.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Timestamp.Equal(b.Timestamp) {
			return a.Timestamp.Before(b.Timestamp)
		}
		// a reply never precedes the question it answers
		if a.SenderType != b.SenderType {
			return a.SenderType == entity.SenderUser
		}
		return a.ID < b.ID
	})

	byID := make(map[string]int, len(conversations))
	byUser := make(map[string]string, len(conversations))
	metas := make([]entity.Conversation, 0, len(conversations))
	for _, c := range conversations {
		if _, dup := byID[c.ID]; dup {
			continue
		}
		byID[c.ID] = len(metas)
		metas = append(metas, c)
		if _, ok := byUser[c.UserID]; !ok {
			byUser[c.UserID] = c.ID
		}
	}

	// legacy threads are keyed by user id until resolved against metadata
	resolve := func(userID string) string {
		if _, ok := byID[userID]; ok {
			return userID
		}
		if id, ok := byUser[userID]; ok {
			return id
		}
		return userID
	}

	threads := make(map[string][]entity.Message)
	var orphans []entity.Message
	lastUserThread := ""
	for _, m := range sorted {
		switch {
		case m.ConversationID != "":
			threads[m.ConversationID] = append(threads[m.ConversationID], m)
		case m.SenderType == entity.SenderUser:
			key := resolve(m.SenderID)
			threads[key] = append(threads[key], m)
			lastUserThread = key
		case lastUserThread != "":
			threads[lastUserThread] = append(threads[lastUserThread], m)
		default:
			orphans = append(orphans, m)
		}
	}

	views := make([]entity.ConversationView, 0, len(metas)+len(threads))
	for i := range metas {
		views = append(views, buildView(&metas[i], metas[i].ID, threads[metas[i].ID]))
	}
	for key, msgs := range threads {
		if _, ok := byID[key]; ok {
			continue
		}
		views = append(views, buildView(nil, key, msgs))
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].LastMessageTime, views[j].LastMessageTime
		if !a.Equal(b) {
			return a.After(b)
		}
		return views[i].ID < views[j].ID
	})

	return Result{
		Conversations: views,
		Orphans:       orphans,
	}
}

func buildView(meta *entity.Conversation, id string, msgs []entity.Message) entity.ConversationView {
	view := entity.ConversationView{Messages: msgs}
	if meta != nil {
		view.Conversation = *meta
	} else {
		view.ID = id
		for _, m := range msgs {
			if m.SenderType == entity.SenderUser {
				view.UserID = m.SenderID
				view.UserName = m.DisplayName()
				break
			}
		}
	}

	if n := len(msgs); n > 0 {
		last := msgs[n-1]
		if meta == nil || last.Timestamp.After(view.LastMessageTime) {
			view.LastMessage = last.Text
			view.LastMessageTime = last.Timestamp
			view.LastMessageSender = last.SenderType
		}
	}
	view.UnreadCount = UnreadCount(msgs)

	return view
}

// UnreadCount counts user-authored messages not yet read by the clinic.
func UnreadCount(msgs []entity.Message) int {
	n := 0
	for i := range msgs {
		if msgs[i].IsUnread() {
			n++
		}
	}
	return n
}

// Filter keeps views whose user name or last message contains q, ignoring case.
func Filter(views []entity.ConversationView, q string) []entity.ConversationView {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return views
	}
	filtered := make([]entity.ConversationView, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.UserName), q) || strings.Contains(strings.ToLower(v.LastMessage), q) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Summaries drops message bodies for list rendering.
func Summaries(views []entity.ConversationView) []entity.ConversationView {
	out := make([]entity.ConversationView, len(views))
	for i, v := range views {
		v.Messages = nil
		out[i] = v
	}
	return out
}

func withPresence(views []entity.ConversationView, now time.Time, status func(lastSeen, now time.Time) entity.PresenceStatus) []entity.ConversationView {
	out := make([]entity.ConversationView, len(views))
	for i, v := range views {
		v.Presence = status(v.UserLastSeen, now)
		out[i] = v
	}
	return out
}
