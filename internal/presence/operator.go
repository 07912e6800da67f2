package presence

import (
	"DentEase/internal/lib/sl"
	"context"
	"log/slog"
	"sync"
	"time"
)

// HeartbeatInterval is how often an online operator refreshes adminLastSeen.
const HeartbeatInterval = 30 * time.Second

// Toucher persists the operator's last activity on conversation metadata.
// An empty conversationID touches every conversation.
type Toucher interface {
	TouchAdminLastSeen(ctx context.Context, conversationID string, at time.Time) error
}

// Operator is the clinic operator's manually toggled presence.
type Operator struct {
	mu       sync.Mutex
	online   bool
	lastSeen time.Time
	base     context.Context
	cancel   context.CancelFunc
	toucher  Toucher
	interval time.Duration
	now      func() time.Time
	onChange func(online bool, lastSeen time.Time)
	log      *slog.Logger
}

func NewOperator(toucher Toucher, log *slog.Logger) *Operator {
	return &Operator{
		base:     context.Background(),
		toucher:  toucher,
		interval: HeartbeatInterval,
		now:      time.Now,
		log:      log.With(sl.Module("presence.operator")),
	}
}

// OnChange registers a callback for presence toggles.
func (o *Operator) OnChange(fn func(online bool, lastSeen time.Time)) {
	o.mu.Lock()
	o.onChange = fn
	o.mu.Unlock()
}

// Start binds the heartbeat to ctx and applies the initial state.
func (o *Operator) Start(ctx context.Context, online bool) {
	o.mu.Lock()
	o.base = ctx
	o.mu.Unlock()
	o.SetOnline(online)
}

func (o *Operator) SetOnline(online bool) {
	o.mu.Lock()
	if o.online == online && (!online || o.cancel != nil) {
		o.mu.Unlock()
		return
	}
	o.online = online
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	var ctx context.Context
	if online {
		ctx, o.cancel = context.WithCancel(o.base)
	}
	onChange := o.onChange
	lastSeen := o.lastSeen
	o.mu.Unlock()

	o.log.Info("operator presence changed", slog.Bool("online", online))

	if online {
		o.Touch(ctx, "")
		lastSeen = o.LastSeen()
		go o.heartbeat(ctx)
	}
	if onChange != nil {
		onChange(online, lastSeen)
	}
}

func (o *Operator) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

func (o *Operator) LastSeen() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSeen
}

// Touch records operator activity and persists it. Failures are logged only.
func (o *Operator) Touch(ctx context.Context, conversationID string) {
	now := o.now()
	o.mu.Lock()
	o.lastSeen = now
	o.mu.Unlock()

	if o.toucher == nil {
		return
	}
	if err := o.toucher.TouchAdminLastSeen(ctx, conversationID, now); err != nil {
		o.log.With(
			slog.String("conversation_id", conversationID),
			sl.Err(err),
		).Error("persist admin last seen")
	}
}

// Stop ends the heartbeat without changing the reported state.
func (o *Operator) Stop() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Operator) heartbeat(ctx context.Context) {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.Touch(ctx, "")
		}
	}
}
