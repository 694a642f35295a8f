// Command loaddata fills the database from a JSON fixture and removes
// groups or users by name.
//
//	loaddata -file fixtures.json
//	loaddata -delete-group cats
//	loaddata -delete-user leo
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"yatube/cmd/app"
	"yatube/internal/config"
	"yatube/internal/forms"
	"yatube/internal/logging"
	"yatube/internal/models"
	"yatube/internal/repository"
	"yatube/internal/service"
)

type fixtureGroup struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// fixturePost refers to its author and group by username and slug. Both
// may be empty.
type fixturePost struct {
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Group   string    `json:"group"`
	PubDate time.Time `json:"pubDate"`
}

type fixture struct {
	Users  []repository.CreateUserRequest `json:"users"`
	Groups []fixtureGroup                 `json:"groups"`
	Posts  []fixturePost                  `json:"posts"`
}

type loadResult struct {
	Users, Groups, Posts int
}

func readFixture(path string) (*fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать %s: %w", path, err)
	}

	var f fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("некорректный JSON в %s: %w", path, err)
	}
	return &f, nil
}

// load stores users, then groups, then posts. It stops at the first error;
// rows stored before it stay.
func load(ctx context.Context, repo *repository.Repository, services *service.Service, f *fixture) (loadResult, error) {
	var res loadResult

	users := make(map[string]*models.User, len(f.Users))
	for _, req := range f.Users {
		user, err := services.Auth.Register(ctx, req)
		if err != nil {
			return res, fmt.Errorf("пользователь %q: %w", req.Username, err)
		}
		users[user.Username] = user
		res.Users++
	}

	groups := make(map[string]*models.Group, len(f.Groups))
	for _, g := range f.Groups {
		group, err := services.Group.CreateGroup(ctx, forms.NewGroupForm(g.Title, g.Slug, g.Description))
		if err != nil {
			return res, fmt.Errorf("группа %q: %w", g.Slug, err)
		}
		groups[group.Slug] = group
		res.Groups++
	}

	for i, p := range f.Posts {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			return res, fmt.Errorf("пост #%d: пустой текст", i+1)
		}

		post := &models.Post{Text: text, PubDate: p.PubDate}

		if p.Author != "" {
			author, ok := users[p.Author]
			if !ok {
				var err error
				if author, err = repo.User.GetUserByUsername(ctx, p.Author); err != nil {
					return res, fmt.Errorf("пост #%d: автор %q: %w", i+1, p.Author, err)
				}
			}
			post.AuthorID = author.ID
		}

		if p.Group != "" {
			group, ok := groups[p.Group]
			if !ok {
				var err error
				if group, err = repo.Group.GetBySlug(ctx, p.Group); err != nil {
					return res, fmt.Errorf("пост #%d: группа %q: %w", i+1, p.Group, err)
				}
			}
			post.GroupID = &group.ID
		}

		if err := repo.Post.Import(ctx, post); err != nil {
			return res, fmt.Errorf("пост #%d: %w", i+1, err)
		}
		res.Posts++
	}

	return res, nil
}

type options struct {
	file        string
	deleteGroup string
	deleteUser  string
}

func run(ctx context.Context, repo *repository.Repository, services *service.Service, opts options) error {
	if opts.file != "" {
		f, err := readFixture(opts.file)
		if err != nil {
			return err
		}

		res, err := load(ctx, repo, services, f)
		if err != nil {
			return fmt.Errorf("загрузка прервана (пользователей %d, групп %d, постов %d): %w",
				res.Users, res.Groups, res.Posts, err)
		}
		logging.Info().
			Int("users", res.Users).
			Int("groups", res.Groups).
			Int("posts", res.Posts).
			Msg("данные загружены")
	}

	if opts.deleteGroup != "" {
		if err := services.Group.DeleteGroup(ctx, opts.deleteGroup); err != nil {
			return fmt.Errorf("не удалось удалить группу %s: %w", opts.deleteGroup, err)
		}
	}

	if opts.deleteUser != "" {
		if err := services.User.DeleteUser(ctx, opts.deleteUser); err != nil {
			return fmt.Errorf("не удалось удалить пользователя %s: %w", opts.deleteUser, err)
		}
	}

	return nil
}

func main() {
	var opts options
	flag.StringVar(&opts.file, "file", "", "JSON-файл с пользователями, группами и постами")
	flag.StringVar(&opts.deleteGroup, "delete-group", "", "slug группы для удаления (посты остаются без группы)")
	flag.StringVar(&opts.deleteUser, "delete-user", "", "имя пользователя для удаления вместе с его постами")
	flag.Parse()

	cfg := config.LoadConfig()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if opts == (options{}) {
		flag.Usage()
		os.Exit(2)
	}

	db, repo, services := app.Store(cfg)

	err := run(context.Background(), repo, services, opts)
	if closeErr := db.CloseDB(); closeErr != nil {
		logging.Error().Err(closeErr).Msg("ошибка при закрытии БД")
	}
	if err != nil {
		logging.Error().Err(err).Msg("loaddata завершилась с ошибкой")
		os.Exit(1)
	}
}
