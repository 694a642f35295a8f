package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"yatube/internal/logging"
	"yatube/internal/repository"
	"yatube/internal/templates"
)

// render writes the page or, if the template fails, a plain 500.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.Renderer.Render(w, status, name, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("ошибка рендеринга страницы")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, templates.NotFound, ErrorPage{
		Layout: h.layout(r, "Страница не найдена"),
		Path:   r.URL.Path,
	})
}

func (h *Handlers) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// ServerError renders the 500 page. It is also the panic fallback.
func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusInternalServerError, templates.ServerError, ErrorPage{
		Layout: h.layout(r, "Ошибка сервера"),
		Path:   r.URL.Path,
	})
}

// handleError maps repository.ErrNotFound to 404 and anything else to 500.
func (h *Handlers) handleError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		h.NotFound(w, r)
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("ошибка обработки запроса")
	h.ServerError(w, r)
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
