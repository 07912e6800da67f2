package core

import (
	"DentEase/entity"
	"DentEase/internal/analytics"
	"DentEase/internal/inbox"
	"DentEase/internal/lib/sl"
	"DentEase/internal/presence"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

type Repository interface {
	AllMessages(ctx context.Context) ([]entity.Message, error)
	InsertMessage(ctx context.Context, msg *entity.Message) error
	MarkMessagesRead(ctx context.Context, ids []string) (int64, error)
	CountUnread(ctx context.Context, conversationID string) (int64, error)
	DeleteConversationMessages(ctx context.Context, conversationID, userID string) (int64, error)

	AllConversations(ctx context.Context) ([]entity.Conversation, error)
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	FindConversationByUser(ctx context.Context, userID string) (*entity.Conversation, error)
	InsertConversation(ctx context.Context, conv *entity.Conversation) error
	UpdateLastMessage(ctx context.Context, msg *entity.Message) error
	DeleteConversation(ctx context.Context, id string) error

	AllAppointments(ctx context.Context) ([]entity.Appointment, error)
	GetAppointment(ctx context.Context, id string) (*entity.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, from, to entity.AppointmentStatus) error

	AllPatients(ctx context.Context) ([]entity.Patient, error)

	AllServices(ctx context.Context) ([]entity.Service, error)
	GetService(ctx context.Context, id string) (*entity.Service, error)
	UpsertService(ctx context.Context, svc *entity.Service) error
	DeleteService(ctx context.Context, id string) error

	AllFeedback(ctx context.Context) ([]entity.Feedback, error)
	AppendReply(ctx context.Context, feedbackID string, reply entity.AdminReply) error
}

type FileStore interface {
	UploadFile(ctx context.Context, filename string, reader io.Reader, meta entity.FileMetadata) (string, int64, error)
	DownloadFile(ctx context.Context, fileID string) (string, entity.FileMetadata, io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID string) error
}

type URLSigner interface {
	URL(fileID string) string
	Verify(fileID, expires, sig string) bool
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *entity.AdminAuth, error)
	ChangePassword(ctx context.Context, email, current, next string) error
	AuthenticateByToken(token string) (*entity.AdminAuth, error)
}

// Notifier alerts the clinic about patient messages outside the dashboard.
type Notifier interface {
	NotifyNewMessage(m entity.Message)
}

// Responder drafts an automatic reply while the operator is offline.
type Responder interface {
	Reply(ctx context.Context, history []entity.Message, services []entity.Service) (string, error)
}

type CalendarService interface {
	AddAppointment(ctx context.Context, a *entity.Appointment) (string, error)
}

// Broadcaster pushes state changes to connected dashboards.
type Broadcaster interface {
	BroadcastConversations(views []entity.ConversationView)
	BroadcastFeedStatus(streams map[string]bool, connected bool)
	BroadcastReadReceipt(conversationID string, messageIDs []string)
	BroadcastPresence(online bool, lastSeen time.Time)
	BroadcastNewMessage(m entity.Message)
}

type Core struct {
	repo         Repository
	files        FileStore
	signer       URLSigner
	auth         AuthService
	notifier     Notifier
	responder    Responder
	calendar     CalendarService
	hub          Broadcaster
	inbox        *inbox.Inbox
	operator     *presence.Operator
	clinicName   string
	operatorName string
	mu           sync.RWMutex
	now          func() time.Time
	log          *slog.Logger
}

func New(clinicName, operatorName string, log *slog.Logger) *Core {
	return &Core{
		clinicName:   clinicName,
		operatorName: operatorName,
		now:          time.Now,
		log:          log.With(sl.Module("core")),
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetFileStore(files FileStore) {
	c.files = files
}

func (c *Core) SetURLSigner(signer URLSigner) {
	c.signer = signer
}

func (c *Core) SetAuthService(auth AuthService) {
	c.auth = auth
}

func (c *Core) SetNotifier(notifier Notifier) {
	c.notifier = notifier
}

func (c *Core) SetResponder(responder Responder) {
	c.responder = responder
}

func (c *Core) SetCalendar(calendar CalendarService) {
	c.calendar = calendar
}

func (c *Core) SetBroadcaster(hub Broadcaster) {
	c.hub = hub
}

func (c *Core) SetInbox(box *inbox.Inbox) {
	c.inbox = box
}

func (c *Core) SetOperator(operator *presence.Operator) {
	c.operator = operator
}

// Init connects the inbox and operator events to the broadcaster and the
// new message alerts.
func (c *Core) Init() {
	c.inbox.Subscribe(func(views []entity.ConversationView) {
		if c.hub != nil {
			c.hub.BroadcastConversations(inbox.Summaries(views))
		}
	})
	c.inbox.SetNewMessageHandler(c.HandleNewUserMessage)
	c.operator.OnChange(func(online bool, lastSeen time.Time) {
		if c.hub != nil {
			c.hub.BroadcastPresence(online, lastSeen)
		}
	})
}

// HandleFeedState records a subscription state change and tells the dashboards.
func (c *Core) HandleFeedState(collection string, connected bool) {
	c.inbox.SetFeedState(collection, connected)
	log := c.log.With(slog.String("collection", collection))
	if connected {
		log.Info("subscription connected")
	} else {
		log.Warn("subscription disconnected")
	}
	if c.hub != nil {
		c.hub.BroadcastFeedStatus(c.FeedStatus())
	}
}

// FeedStatus reports per-stream state and whether the inbox is live.
func (c *Core) FeedStatus() (map[string]bool, bool) {
	return c.inbox.FeedState(), c.inbox.Connected()
}

type Settings struct {
	ClinicName   string `json:"clinicName"`
	OperatorName string `json:"operatorName"`
	Online       bool   `json:"online"`
}

func (c *Core) Settings() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Settings{
		ClinicName:   c.clinicName,
		OperatorName: c.operatorName,
		Online:       c.operator.Online(),
	}
}

// SetOperatorName changes the sender name used on outgoing messages.
func (c *Core) SetOperatorName(name string) Settings {
	c.mu.Lock()
	c.operatorName = name
	c.mu.Unlock()
	c.log.Info("operator name changed", slog.String("name", name))
	return c.Settings()
}

func (c *Core) OperatorName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.operatorName
}

type LoginResult struct {
	Token string            `json:"token"`
	Admin *entity.AdminAuth `json:"admin"`
}

func (c *Core) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	token, admin, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Admin: admin}, nil
}

func (c *Core) AuthenticateByToken(token string) (*entity.AdminAuth, error) {
	if c.auth == nil {
		return nil, fmt.Errorf("auth service not set")
	}
	return c.auth.AuthenticateByToken(token)
}

func (c *Core) ChangePassword(ctx context.Context, email, current, next string) error {
	return c.auth.ChangePassword(ctx, email, current, next)
}

// Dashboard is the landing page payload.
type Dashboard struct {
	analytics.Counts
	Upcoming    []entity.Appointment     `json:"upcoming"`
	TopServices []analytics.ServiceCount `json:"topServices"`
}

func (c *Core) DashboardSummary(ctx context.Context, upcoming string) (*Dashboard, error) {
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	patients, err := c.repo.AllPatients(ctx)
	if err != nil {
		return nil, err
	}
	now := c.now()
	d := &Dashboard{
		Counts:      analytics.CountAppointments(appointments, now),
		Upcoming:    analytics.Upcoming(appointments, analytics.ParseRange(upcoming), now),
		TopServices: analytics.TopServices(appointments, analytics.TopServicesLimit),
	}
	d.Patients = len(patients)
	if c.inbox.Synced() {
		d.Unread = c.inbox.TotalUnread()
	} else {
		unread, err := c.repo.CountUnread(ctx, "")
		if err != nil {
			return nil, err
		}
		d.Unread = int(unread)
	}
	return d, nil
}

func (c *Core) Analytics(ctx context.Context, filter string) (*analytics.Summary, error) {
	appointments, err := c.repo.AllAppointments(ctx)
	if err != nil {
		return nil, err
	}
	s := analytics.Summarize(appointments, analytics.ParseRange(filter), c.now())
	return &s, nil
}
