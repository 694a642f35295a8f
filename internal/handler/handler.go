package handlers

import (
	"net/http"

	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/service"
)

// Renderer writes a named page with the given status.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	HealthCheck() error
}

type Handlers struct {
	UserService  service.UserService
	AuthService  service.AuthService
	PostService  service.PostService
	GroupService service.GroupService
	StatsService service.StatsService
	Renderer     Renderer
	DB           Pinger
	Cfg          *config.Config
}

func NewHandlers(services *service.Service, renderer Renderer, db Pinger, cfg *config.Config) *Handlers {
	return &Handlers{
		UserService:  services.User,
		AuthService:  services.Auth,
		PostService:  services.Post,
		GroupService: services.Group,
		StatsService: services.Stats,
		Renderer:     renderer,
		DB:           db,
		Cfg:          cfg,
	}
}

// Layout is the data every page shares.
type Layout struct {
	CurrentUser *models.User
	Title       string
}

func (h *Handlers) layout(r *http.Request, title string) Layout {
	user, _ := middleware.UserFromContext(r.Context())
	return Layout{CurrentUser: user, Title: title}
}

type IndexPage struct {
	Layout
	PageObj *service.PostPage
}

type GroupPage struct {
	Layout
	Group   *models.Group
	PageObj *service.PostPage
}

type ProfilePage struct {
	Layout
	Author  *models.User
	PageObj *service.PostPage
	Count   int
}

type PostDetailPage struct {
	Layout
	Post       *models.Post
	PostsCount int
	CanEdit    bool
}

// PostFormPage serves both creation and editing; Post is set only when
// IsEdit is true.
type PostFormPage struct {
	Layout
	Form   *forms.PostForm
	Groups []models.Group
	Post   *models.Post
	IsEdit bool
}

type LoginPage struct {
	Layout
	Form *forms.LoginForm
}

type SignupPage struct {
	Layout
	Form *forms.SignupForm
}

type ErrorPage struct {
	Layout
	Path string
}
