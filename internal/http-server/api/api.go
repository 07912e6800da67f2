package api

import (
	"DentEase/internal/config"
	"DentEase/internal/http-server/handlers/appointments"
	"DentEase/internal/http-server/handlers/auth"
	"DentEase/internal/http-server/handlers/conversations"
	"DentEase/internal/http-server/handlers/dashboard"
	"DentEase/internal/http-server/handlers/errors"
	"DentEase/internal/http-server/handlers/feedback"
	"DentEase/internal/http-server/handlers/files"
	"DentEase/internal/http-server/handlers/patients"
	"DentEase/internal/http-server/handlers/presence"
	"DentEase/internal/http-server/handlers/services"
	"DentEase/internal/http-server/handlers/settings"
	"DentEase/internal/http-server/middleware/authenticate"
	"DentEase/internal/http-server/middleware/recoverer"
	"DentEase/internal/lib/sl"
	"DentEase/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	authenticate.Authenticate
	auth.Core
	dashboard.Core
	appointments.Core
	patients.Core
	services.Core
	feedback.Core
	conversations.Core
	presence.Core
	settings.Core
	files.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) *Server {
	server := &Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	server.httpServer = &http.Server{
		Handler:  NewRouter(conf, log, handler, hub),
		ErrorLog: slog.NewLogLogger(log.Handler(), slog.LevelError),
	}
	return server
}

// NewRouter builds the /api/v1 routes.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(authenticate.RequestLog(log))
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   conf.Listen.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)
	router.Use(sentryhttp.New(sentryhttp.Options{}).Handle)
	router.Use(recoverer.New(log))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		// public
		v1.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(conf.Listen.Timeout))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Post("/auth/login", auth.Login(log, handler))
			r.Get("/files/{file_id}", files.Serve(log, handler))
		})

		if hub != nil {
			v1.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
				ws.ServeWs(hub, handler, log, w, r)
			})
		}

		v1.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(conf.Listen.Timeout))
			r.Use(render.SetContentType(render.ContentTypeJSON))
			r.Use(authenticate.New(log, handler))

			r.Post("/auth/password", auth.ChangePassword(log, handler))

			r.Get("/dashboard/summary", dashboard.Summary(log, handler))
			r.Get("/analytics", dashboard.Analytics(log, handler))

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", appointments.List(log, handler))
				r.Get("/calendar", appointments.Calendar(log, handler))
				r.Get("/upcoming", appointments.Upcoming(log, handler))
				r.Get("/export", appointments.Export(log, handler))
				r.Post("/{id}/status", appointments.UpdateStatus(log, handler))
			})

			r.Route("/patients", func(r chi.Router) {
				r.Get("/", patients.List(log, handler))
				r.Get("/export", patients.Export(log, handler))
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", services.List(log, handler))
				r.Post("/", services.Create(log, handler))
				r.Put("/{id}", services.Update(log, handler))
				r.Delete("/{id}", services.Delete(log, handler))
				r.Post("/{id}/image", services.UploadImage(log, handler))
				r.Delete("/{id}/image", services.DeleteImage(log, handler))
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", feedback.List(log, handler))
				r.Post("/{id}/reply", feedback.Reply(log, handler))
			})

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", conversations.List(log, handler))
				r.Post("/", conversations.Start(log, handler))
				r.Get("/{id}", conversations.Get(log, handler))
				r.Delete("/{id}", conversations.Delete(log, handler))
				r.Post("/{id}/open", conversations.Open(log, handler))
				r.Post("/{id}/messages", conversations.Send(log, handler))
			})

			r.Get("/presence", presence.Get(log, handler))
			r.Post("/presence", presence.Set(log, handler))
			r.Get("/feed/status", presence.FeedStatus(log, handler))

			r.Get("/settings", settings.Get(log, handler))
			r.Put("/settings", settings.Update(log, handler))
		})
	})

	return router
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	s.log.Info("starting api server", slog.String("address", serverAddress))

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.Serve(listener)
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
