package core

import (
	"DentEase/entity"
	"DentEase/internal/inbox"
	"DentEase/internal/presence"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)

type stubRepo struct {
	mu            sync.Mutex
	messages      []entity.Message
	conversations map[string]*entity.Conversation
	appointments  []entity.Appointment
	patients      []entity.Patient
	services      map[string]*entity.Service
	feedback      []entity.Feedback
	markedRead    []string
	touched       []string
	failMarkRead  error
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		conversations: make(map[string]*entity.Conversation),
		services:      make(map[string]*entity.Service),
	}
}

func (r *stubRepo) AllMessages(context.Context) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Message(nil), r.messages...), nil
}

func (r *stubRepo) InsertMessage(_ context.Context, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubRepo) MarkMessagesRead(_ context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failMarkRead != nil {
		return 0, r.failMarkRead
	}
	r.markedRead = append(r.markedRead, ids...)
	return int64(len(ids)), nil
}

func (r *stubRepo) CountUnread(context.Context, string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for i := range r.messages {
		if r.messages[i].IsUnread() {
			n++
		}
	}
	return n, nil
}

func (r *stubRepo) DeleteConversationMessages(_ context.Context, conversationID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.messages[:0]
	var n int64
	for _, m := range r.messages {
		if m.ConversationID == conversationID || (m.ConversationID == "" && m.SenderID == userID) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return n, nil
}

func (r *stubRepo) AllConversations(context.Context) ([]entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Conversation, 0, len(r.conversations))
	for _, c := range r.conversations {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubRepo) GetConversation(_ context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubRepo) FindConversationByUser(_ context.Context, userID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conversations {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *stubRepo) InsertConversation(_ context.Context, conv *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *conv
	r.conversations[conv.ID] = &cp
	return nil
}

func (r *stubRepo) UpdateLastMessage(_ context.Context, msg *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conversations[msg.ConversationID]
	if !ok {
		return entity.ErrNotFound
	}
	c.LastMessage = msg.Text
	c.LastMessageTime = msg.Timestamp
	c.LastMessageSender = msg.SenderType
	return nil
}

func (r *stubRepo) TouchAdminLastSeen(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, id)
	return nil
}

func (r *stubRepo) DeleteConversation(_ context.Context, id string) error {
	r.mu.Lock()
	c, ok := r.conversations[id]
	if !ok {
		r.mu.Unlock()
		return entity.ErrNotFound
	}
	delete(r.conversations, id)
	r.mu.Unlock()
	_, err := r.DeleteConversationMessages(context.Background(), c.ID, c.UserID)
	return err
}

func (r *stubRepo) AllAppointments(context.Context) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Appointment(nil), r.appointments...), nil
}

func (r *stubRepo) GetAppointment(_ context.Context, id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *stubRepo) UpdateAppointmentStatus(_ context.Context, id string, from, to entity.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.appointments {
		if r.appointments[i].ID == id && r.appointments[i].Status == from {
			r.appointments[i].Status = to
			return nil
		}
	}
	return entity.ErrInvalidStateTransition
}

func (r *stubRepo) AllPatients(context.Context) ([]entity.Patient, error) {
	return append([]entity.Patient(nil), r.patients...), nil
}

func (r *stubRepo) AllServices(context.Context) ([]entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Service, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubRepo) GetService(_ context.Context, id string) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubRepo) UpsertService(_ context.Context, svc *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *svc
	cp.ImageURL = ""
	r.services[svc.ID] = &cp
	return nil
}

func (r *stubRepo) DeleteService(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *stubRepo) AllFeedback(context.Context) ([]entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Feedback(nil), r.feedback...), nil
}

func (r *stubRepo) AppendReply(_ context.Context, id string, reply entity.AdminReply) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.feedback {
		if r.feedback[i].ID == id {
			r.feedback[i].AdminReplies = append(r.feedback[i].AdminReplies, reply)
			return nil
		}
	}
	return entity.ErrNotFound
}

type stubFiles struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	next    int
}

func (f *stubFiles) UploadFile(_ context.Context, _ string, reader io.Reader, _ entity.FileMetadata) (string, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", 0, err
	}
	f.next++
	id := fmt.Sprintf("file-%d", f.next)
	if f.files == nil {
		f.files = make(map[string][]byte)
	}
	f.files[id] = data
	return id, int64(len(data)), nil
}

func (f *stubFiles) DownloadFile(_ context.Context, id string) (string, entity.FileMetadata, io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[id]
	if !ok {
		return "", entity.FileMetadata{}, nil, entity.ErrNotFound
	}
	return id + ".png", entity.FileMetadata{MIMEType: "image/png"}, io.NopCloser(bytes.NewReader(data)), nil
}

func (f *stubFiles) DeleteFile(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	delete(f.files, id)
	return nil
}

type stubSigner struct{}

func (stubSigner) URL(id string) string { return "/api/v1/files/" + id + "?sig=ok" }

func (stubSigner) Verify(_, _, sig string) bool { return sig == "ok" }

type stubHub struct {
	mu       sync.Mutex
	receipts map[string][]string
	newMsgs  []string
	presence []bool
	views    int
}

func (h *stubHub) BroadcastConversations([]entity.ConversationView) {
	h.mu.Lock()
	h.views++
	h.mu.Unlock()
}

func (h *stubHub) BroadcastFeedStatus(map[string]bool, bool) {}

func (h *stubHub) BroadcastReadReceipt(id string, ids []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.receipts == nil {
		h.receipts = make(map[string][]string)
	}
	h.receipts[id] = ids
}

func (h *stubHub) BroadcastPresence(online bool, _ time.Time) {
	h.mu.Lock()
	h.presence = append(h.presence, online)
	h.mu.Unlock()
}

func (h *stubHub) BroadcastNewMessage(m entity.Message) {
	h.mu.Lock()
	h.newMsgs = append(h.newMsgs, m.ID)
	h.mu.Unlock()
}

type stubNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (n *stubNotifier) NotifyNewMessage(m entity.Message) {
	n.mu.Lock()
	n.sent = append(n.sent, m.ID)
	n.mu.Unlock()
}

type stubResponder struct {
	answer string
	done   chan struct{}
}

func (r *stubResponder) Reply(context.Context, []entity.Message, []entity.Service) (string, error) {
	defer close(r.done)
	return r.answer, nil
}

type stubCalendar struct {
	added []string
}

func (c *stubCalendar) AddAppointment(_ context.Context, a *entity.Appointment) (string, error) {
	c.added = append(c.added, a.ID)
	return "event-" + a.ID, nil
}

type fixture struct {
	core  *Core
	repo  *stubRepo
	files *stubFiles
	hub   *stubHub
	inbox *inbox.Inbox
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := newStubRepo()
	files := &stubFiles{}
	hub := &stubHub{}
	box := inbox.New(discard())

	c := New("DentEase", "Dr. Fano", discard())
	c.now = func() time.Time { return testNow }
	c.SetRepository(repo)
	c.SetFileStore(files)
	c.SetURLSigner(stubSigner{})
	c.SetBroadcaster(hub)
	c.SetInbox(box)
	c.SetOperator(presence.NewOperator(repo, discard()))
	c.Init()

	return &fixture{core: c, repo: repo, files: files, hub: hub, inbox: box}
}

func userMessage(id, conv, sender string, at time.Time, read bool) entity.Message {
	return entity.Message{
		ID:             id,
		ConversationID: conv,
		Text:           "hello " + id,
		SenderID:       sender,
		SenderName:     "Patient " + sender,
		SenderType:     entity.SenderUser,
		Timestamp:      at,
		IsRead:         read,
	}
}
