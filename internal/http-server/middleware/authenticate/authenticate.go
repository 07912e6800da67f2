package authenticate

import (
	"DentEase/entity"
	"DentEase/internal/lib/api/cont"
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Authenticate interface {
	AuthenticateByToken(token string) (*entity.AdminAuth, error)
}

// RequestLog writes one line per request with its outcome.
func RequestLog(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.request")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			remote := r.RemoteAddr
			// behind a proxy
			if xRemote := r.Header.Get("X-Forwarded-For"); xRemote != "" {
				remote = xRemote
			}
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()

			defer func() {
				logger := log.With(
					mod,
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", remote),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.Int("status", ww.Status()),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", time.Since(t1).Seconds()),
				)
				if user := ww.Header().Get("X-User"); user != "" {
					logger = logger.With(slog.String("user", user))
				}
				logger.Info("incoming request")
			}()

			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}

// New rejects requests without a valid bearer token and puts the admin
// identity into the request context.
func New(log *slog.Logger, auth Authenticate) func(next http.Handler) http.Handler {
	logger := log.With(sl.Module("middleware.authenticate"))
	logger.Info("authenticate middleware initialized")

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				authFailed(w, r, "Authorization header not found")
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			token = strings.TrimSpace(token)
			if !ok || token == "" {
				authFailed(w, r, "Token not found")
				return
			}

			if auth == nil {
				authFailed(w, r, "Unauthorized: authentication not enabled")
				return
			}

			user, err := auth.AuthenticateByToken(token)
			if err != nil {
				logger.Debug("token rejected",
					sl.Secret("token", token),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				authFailed(w, r, "Session expired, please sign in again")
				return
			}

			w.Header().Set("X-User", user.Email)
			next.ServeHTTP(w, r.WithContext(cont.PutUser(r.Context(), user)))
		}
		return http.HandlerFunc(fn)
	}
}

func authFailed(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, response.Error(message))
}
