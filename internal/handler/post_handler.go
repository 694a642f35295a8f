package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/templates"
)

func profileURL(username string) string {
	return "/profile/" + url.PathEscape(username) + "/"
}

func postURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

// postID reads the post_id path variable. The route only admits digits, so
// the error means the number overflows and is treated as not found.
func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["post_id"], 10, 64)
	if err != nil {
		return 0, repository.ErrNotFound
	}
	return id, nil
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.PostService.ListPosts(r.Context(), r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, templates.Index, IndexPage{
		Layout:  h.layout(r, "Последние обновления на сайте"),
		PageObj: page,
	})
}

func (h *Handlers) GroupPosts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	group, page, err := h.PostService.ListGroupPosts(r.Context(), slug, r.URL.Query().Get("page"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, templates.GroupList, GroupPage{
		Layout:  h.layout(r, "Записи сообщества "+slug),
		Group:   group,
		PageObj: page,
	})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, count, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, ok := middleware.UserFromContext(r.Context())

	h.render(w, r, http.StatusOK, templates.PostDetail, PostDetailPage{
		Layout:     h.layout(r, "Пост "+post.String()),
		Post:       post,
		PostsCount: count,
		CanEdit:    ok && post.HasAuthor() && post.AuthorID == user.ID,
	})
}

// renderPostForm shows the create or edit form. post is nil for creation.
func (h *Handlers) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post) {
	groups, err := h.GroupService.ListGroups(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	title := "Новый пост"
	if post != nil {
		title = "Редактировать пост"
	}

	h.render(w, r, http.StatusOK, templates.CreatePost, PostFormPage{
		Layout: h.layout(r, title),
		Form:   form,
		Groups: groups,
		Post:   post,
		IsEdit: post != nil,
	})
}

func (h *Handlers) PostCreate(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	if r.Method != http.MethodPost {
		h.renderPostForm(w, r, forms.NewPostForm(url.Values{}), nil)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	form := forms.NewPostForm(r.PostForm)
	input, ok, err := form.Validate(r.Context(), h.GroupService)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.renderPostForm(w, r, form, nil)
		return
	}

	if _, err := h.PostService.CreatePost(r.Context(), user, input); err != nil {
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, profileURL(user.Username), http.StatusFound)
}

// PostEdit lets the author change text and group. Anyone else is sent to
// the post page and nothing is changed.
func (h *Handlers) PostEdit(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	id, err := postID(r)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	post, _, err := h.PostService.GetPost(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if !post.HasAuthor() || post.AuthorID != user.ID {
		http.Redirect(w, r, postURL(post.ID), http.StatusFound)
		return
	}

	if r.Method != http.MethodPost {
		h.renderPostForm(w, r, forms.PostFormFromPost(post), post)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	form := forms.NewPostForm(r.PostForm)
	input, ok, err := form.Validate(r.Context(), h.GroupService)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.renderPostForm(w, r, form, post)
		return
	}

	if _, err := h.PostService.UpdatePost(r.Context(), user, post.ID, input); err != nil {
		if errors.Is(err, service.ErrNotAuthor) {
			http.Redirect(w, r, postURL(post.ID), http.StatusFound)
			return
		}
		h.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, postURL(post.ID), http.StatusFound)
}
