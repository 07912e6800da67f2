package recoverer

import (
	"DentEase/internal/lib/api/response"
	"DentEase/internal/lib/sl"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// New recovers handler panics, reports them to Sentry and answers with a
// generic JSON error.
func New(log *slog.Logger) func(next http.Handler) http.Handler {
	logger := log.With(sl.Module("middleware.recoverer"))

	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				hub := sentry.GetHubFromContext(r.Context())
				if hub == nil {
					hub = sentry.CurrentHub()
				}
				hub.RecoverWithContext(r.Context(), rec)

				logger.Error("panic recovered",
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
				)

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Something went wrong, please refresh"))
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
