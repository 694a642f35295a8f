package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"yatube/internal/templates"
)

// Profile lists the posts of one author. Count is the author's total.
func (h *Handlers) Profile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	author, page, err := h.PostService.ListAuthorPosts(r.Context(), username, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, templates.Profile, ProfilePage{
		Layout:  h.layout(r, "Профайл пользователя "+author.FullName()),
		Author:  author,
		PageObj: page,
		Count:   page.Page.Count,
	})
}

func (h *Handlers) AboutAuthor(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, templates.AboutAuthor, h.layout(r, "Об авторе проекта"))
}

func (h *Handlers) AboutTech(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, templates.AboutTech, h.layout(r, "Технологии"))
}
