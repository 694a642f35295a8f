package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/forms"
	"yatube/internal/logging"
	"yatube/internal/middleware"
	"yatube/internal/repository"
	"yatube/internal/service"
	"yatube/internal/templates"
)

const invalidLoginMessage = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."

// safeNext returns next if it is a path on this site, otherwise "/".
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	return next
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		form := forms.NewLoginForm(url.Values{"next": {r.URL.Query().Get("next")}})
		h.render(w, r, http.StatusOK, templates.Login, LoginPage{Layout: h.layout(r, "Войти"), Form: form})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	form := forms.NewLoginForm(r.PostForm)
	ok, err := form.Validate()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.render(w, r, http.StatusOK, templates.Login, LoginPage{Layout: h.layout(r, "Войти"), Form: form})
		return
	}

	session, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logging.Ctx(r.Context()).Info().Str("username", form.Username).Msg("неудачная попытка входа")
			form.Errors.Add(forms.NonField, invalidLoginMessage)
			h.render(w, r, http.StatusOK, templates.Login, LoginPage{Layout: h.layout(r, "Войти"), Form: form})
			return
		}
		h.handleError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt, h.Cfg.SecureCookies)
	http.Redirect(w, r, safeNext(form.Next), http.StatusFound)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.Cfg.SecureCookies)

	h.render(w, r, http.StatusOK, templates.LoggedOut, Layout{Title: "Вы вышли из системы"})
}

// Signup registers a user, signs them in and sends them to the main page.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		form := forms.NewSignupForm(url.Values{})
		h.render(w, r, http.StatusOK, templates.Signup, SignupPage{Layout: h.layout(r, "Зарегистрироваться"), Form: form})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	form := forms.NewSignupForm(r.PostForm)
	ok, err := form.Validate()
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !ok {
		h.render(w, r, http.StatusOK, templates.Signup, SignupPage{Layout: h.layout(r, "Зарегистрироваться"), Form: form})
		return
	}

	user, err := h.AuthService.Register(r.Context(), repository.CreateUserRequest{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			form.Errors.Add("username", "Пользователь с таким именем уже существует.")
			h.render(w, r, http.StatusOK, templates.Signup, SignupPage{Layout: h.layout(r, "Зарегистрироваться"), Form: form})
			return
		}
		h.handleError(w, r, err)
		return
	}

	session, err := h.AuthService.IssueSession(user)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, session.Token, session.ExpiresAt, h.Cfg.SecureCookies)
	http.Redirect(w, r, "/", http.StatusFound)
}
