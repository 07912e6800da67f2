package feed

import (
	"DentEase/internal/lib/sl"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var ErrStreamClosed = errors.New("change stream closed")

// Stream yields one event per change on the watched collection.
type Stream interface {
	Next(ctx context.Context) bool
	Err() error
	Close(ctx context.Context) error
}

type Watcher interface {
	Watch(ctx context.Context, collection string) (Stream, error)
}

// Loader reads the full current snapshot of a collection.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Handler receives every snapshot.
type Handler[T any] func(items []T)

type StateFunc func(collection string, connected bool)

// Feed keeps live subscriptions on collections. A subscription delivers the
// whole snapshot on start and after every change; when the stream fails it is
// marked disconnected and reopened after the retry delay.
type Feed struct {
	watcher Watcher
	retry   time.Duration
	mu      sync.RWMutex
	state   map[string]bool
	onState []StateFunc
	log     *slog.Logger
}

func New(watcher Watcher, retry time.Duration, log *slog.Logger) *Feed {
	if retry <= 0 {
		retry = 5 * time.Second
	}
	return &Feed{
		watcher: watcher,
		retry:   retry,
		state:   make(map[string]bool),
		log:     log.With(sl.Module("feed")),
	}
}

func (f *Feed) OnState(fn StateFunc) {
	f.mu.Lock()
	f.onState = append(f.onState, fn)
	f.mu.Unlock()
}

// Status returns the connection state per subscribed collection.
func (f *Feed) Status() map[string]bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]bool, len(f.state))
	for k, v := range f.state {
		out[k] = v
	}
	return out
}

func (f *Feed) setState(collection string, connected bool) {
	f.mu.Lock()
	prev, known := f.state[collection]
	f.state[collection] = connected
	listeners := f.onState
	f.mu.Unlock()

	if known && prev == connected {
		return
	}
	for _, fn := range listeners {
		fn(collection, connected)
	}
}

// Subscribe blocks until ctx is done.
func Subscribe[T any](ctx context.Context, f *Feed, collection string, load Loader[T], handle Handler[T]) {
	log := f.log.With(slog.String("collection", collection))
	f.setState(collection, false)

	for {
		err := watchOnce(ctx, f, collection, load, handle)
		f.setState(collection, false)
		if ctx.Err() != nil {
			return
		}
		log.With(sl.Err(err)).Warn("subscription lost, retrying", slog.Duration("delay", f.retry))

		timer := time.NewTimer(f.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

func watchOnce[T any](ctx context.Context, f *Feed, collection string, load Loader[T], handle Handler[T]) error {
	// open the stream before the first read so no change between them is lost
	stream, err := f.watcher.Watch(ctx, collection)
	if err != nil {
		return fmt.Errorf("watch %s: %w", collection, err)
	}
	defer func() {
		_ = stream.Close(context.Background())
	}()

	if err = deliver(ctx, load, handle); err != nil {
		return err
	}
	f.setState(collection, true)

	for stream.Next(ctx) {
		if err = deliver(ctx, load, handle); err != nil {
			return err
		}
	}
	if err = stream.Err(); err != nil {
		return fmt.Errorf("stream %s: %w", collection, err)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return ErrStreamClosed
}

func deliver[T any](ctx context.Context, load Loader[T], handle Handler[T]) error {
	items, err := load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	handle(items)
	return nil
}
