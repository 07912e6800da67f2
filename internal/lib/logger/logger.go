package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"

	logFile = "dentease.log"
)

// Sender delivers a plain text alert to the clinic admin.
type Sender interface {
	SendMessage(msg string)
}

func SetupLogger(env, logPath string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(logWriter(logPath), &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(logWriter(logPath), &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func logWriter(logPath string) io.Writer {
	if logPath == "" {
		return os.Stdout
	}
	f, err := os.OpenFile(filepath.Join(logPath, logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file %s: %v, using stdout\n", logPath, err)
		return os.Stdout
	}
	return f
}

// SetupTelegramHandler duplicates records at or above level to the admin chat.
func SetupTelegramHandler(log *slog.Logger, sender Sender, level slog.Level) *slog.Logger {
	return slog.New(&alertHandler{
		next:   log.Handler(),
		sender: sender,
		level:  level,
	})
}

type alertHandler struct {
	next   slog.Handler
	sender Sender
	level  slog.Level
	attrs  []slog.Attr
}

func (h *alertHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *alertHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level >= h.level && h.sender != nil {
		h.sender.SendMessage(formatRecord(record, h.attrs))
	}
	return h.next.Handle(ctx, record)
}

func (h *alertHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &alertHandler{
		next:   h.next.WithAttrs(attrs),
		sender: h.sender,
		level:  h.level,
		attrs:  merged,
	}
}

func (h *alertHandler) WithGroup(name string) slog.Handler {
	return &alertHandler{
		next:   h.next.WithGroup(name),
		sender: h.sender,
		level:  h.level,
		attrs:  h.attrs,
	}
}

func formatRecord(record slog.Record, attrs []slog.Attr) string {
	var b strings.Builder
	b.WriteString(record.Level.String())
	b.WriteString(": ")
	b.WriteString(record.Message)
	write := func(a slog.Attr) bool {
		b.WriteString("\n")
		b.WriteString(a.Key)
		b.WriteString(": ")
		b.WriteString(a.Value.String())
		return true
	}
	for _, a := range attrs {
		write(a)
	}
	record.Attrs(write)
	return b.String()
}
