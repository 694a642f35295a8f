package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yatube/internal/middleware"
)

// NewRouter registers every page of the site. Paths end with a slash;
// requests without it are redirected.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.MethodNotAllowed)

	loginRequired := middleware.LoginRequired(h.Cfg.LoginURL)

	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/group/{slug}/", h.GroupPosts).Methods(http.MethodGet)
	r.HandleFunc("/profile/{username}/", h.Profile).Methods(http.MethodGet)
	r.HandleFunc("/posts/{post_id:[0-9]+}/", h.PostDetail).Methods(http.MethodGet)
	r.Handle("/posts/{post_id:[0-9]+}/edit/", loginRequired(http.HandlerFunc(h.PostEdit))).
		Methods(http.MethodGet, http.MethodPost)
	r.Handle("/create/", loginRequired(http.HandlerFunc(h.PostCreate))).
		Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/auth/login/", h.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/logout/", h.Logout).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/auth/signup/", h.Signup).Methods(http.MethodGet, http.MethodPost)

	r.HandleFunc("/about/author/", h.AboutAuthor).Methods(http.MethodGet)
	r.HandleFunc("/about/tech/", h.AboutTech).Methods(http.MethodGet)

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// NewHandler wraps the router with the site middleware. Recoverer runs
// inside Metrics and Logging so a panic is logged and counted as a 500.
func NewHandler(h *Handlers) http.Handler {
	router := NewRouter(h)

	return middleware.Chain(
		router,
		middleware.Session(h.AuthService),
		middleware.Recoverer(http.HandlerFunc(h.ServerError)),
		middleware.Metrics(router),
		middleware.Logging,
		middleware.RequestID,
	)
}
