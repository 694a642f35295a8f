package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"yatube/internal/logging"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/service"
)

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that the last middleware is the outermost.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}

const (
	RequestIDHeader   = "X-Request-ID"
	SessionCookieName = "sessionid"
)

type contextKey string

const userKey contextKey = "user"

func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the signed-in user, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok && user != nil
}

// statusRecorder remembers the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	if rec, ok := w.(*statusRecorder); ok {
		return rec
	}
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, requestID)

		ctx := logging.ContextWithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging writes one line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)

		next.ServeHTTP(rec, r)

		event := logging.Ctx(r.Context()).Info()
		if rec.status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int("bytes", rec.bytes).
			Dur("duration", time.Since(start)).
			Msg("запрос обработан")
	})
}

// Recoverer turns a panic into a 500 answered by fallback.
func Recoverer(fallback http.Handler) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}

					logging.Ctx(r.Context()).Error().
						Interface("panic", rvr).
						Bytes("stack", debug.Stack()).
						Msg("паника при обработке запроса")

					if fallback != nil {
						fallback.ServeHTTP(w, r)
						return
					}
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// SessionParser resolves a session token to its user.
type SessionParser interface {
	ParseSession(ctx context.Context, token string) (*models.User, error)
}

// Session loads the user of the session cookie into the request context.
// It never rejects a request. An invalid session cookie is removed; when the
// session cannot be checked the request is served anonymously and the cookie
// is kept.
func Session(auth SessionParser) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := auth.ParseSession(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, service.ErrInvalidSession) {
					logging.Ctx(r.Context()).Debug().Err(err).Msg("сессия отклонена")
					ClearSessionCookie(w, false)
				} else {
					logging.Ctx(r.Context()).Error().Err(err).Msg("не удалось проверить сессию")
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func SetSessionCookie(w http.ResponseWriter, token string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoginURL builds loginURL?next=<request URI>. Slashes in next stay unescaped.
func LoginURL(loginURL string, r *http.Request) string {
	next := strings.ReplaceAll(url.QueryEscape(r.URL.RequestURI()), "%2F", "/")

	sep := "?"
	if strings.Contains(loginURL, "?") {
		sep = "&"
	}
	return loginURL + sep + "next=" + next
}

// LoginRequired redirects anonymous requests to the login page.
func LoginRequired(loginURL string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := UserFromContext(r.Context()); !ok {
				http.Redirect(w, r, LoginURL(loginURL, r), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RouteMatcher finds the route serving a request.
type RouteMatcher interface {
	Match(req *http.Request, match *mux.RouteMatch) bool
}

// Metrics records request counts and latency labelled by route template,
// so /posts/1/ and /posts/2/ share one series.
func Metrics(routes RouteMatcher) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			route := routeLabel(routes, r)
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			metrics.RecordHTTPRequest(r.Method, route, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}

func routeLabel(routes RouteMatcher, r *http.Request) string {
	var match mux.RouteMatch
	if routes == nil || !routes.Match(r, &match) || match.Route == nil {
		if errors.Is(match.MatchErr, mux.ErrMethodMismatch) {
			return "method_not_allowed"
		}
		return "unmatched"
	}

	template, err := match.Route.GetPathTemplate()
	if err != nil {
		return "unmatched"
	}
	return template
}
