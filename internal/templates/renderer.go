// Package templates renders the HTML pages of the site from embedded
// html/template files. Every page is parsed together with the shared layout
// and includes, and executed through the "layout" template.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"
)

//go:embed layout.html includes pages
var files embed.FS

// Page names.
const (
	Index       = "posts/index.html"
	GroupList   = "posts/group_list.html"
	Profile     = "posts/profile.html"
	PostDetail  = "posts/post_detail.html"
	CreatePost  = "posts/create_post.html"
	Login       = "users/login.html"
	Signup      = "users/signup.html"
	LoggedOut   = "users/logged_out.html"
	AboutAuthor = "about/author.html"
	AboutTech   = "about/tech.html"
	NotFound    = "core/404.html"
	ServerError = "core/500.html"
)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02.01.2006 15:04")
	},
	"truncatechars": func(n int, s string) string {
		if utf8.RuneCountInString(s) <= n {
			return s
		}
		runes := []rune(s)
		return string(runes[:n-1]) + "…"
	},
	"linebreaksbr": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page under pages/ with the layout and includes.
func New() (*Renderer, error) {
	shared := []string{"layout.html", "includes/*.html"}

	r := &Renderer{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(files, "pages", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		name := strings.TrimPrefix(path, "pages/")
		patterns := append(append([]string{}, shared...), path)

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(files, patterns...)
		if err != nil {
			return fmt.Errorf("ошибка разбора шаблона %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r, nil
}

// Render executes page name with data and writes it with status. Nothing is
// written when execution fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %s не найден", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("ошибка выполнения шаблона %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
