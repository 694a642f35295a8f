package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type GroupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, groupID int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	List(ctx context.Context) ([]models.Group, error)
	Delete(ctx context.Context, groupID int64) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Import(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int, error)
	Update(ctx context.Context, post *models.Post) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (Stats, error)
}

// PostFilter narrows post reads. Nil fields do not filter.
type PostFilter struct {
	GroupID  *int64
	AuthorID *int64
}

func (f PostFilter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.GroupID != nil {
		b = b.Where(sq.Eq{"p.group_id": *f.GroupID})
	}
	if f.AuthorID != nil {
		b = b.Where(sq.Eq{"p.author_id": *f.AuthorID})
	}
	return b
}

type Repository struct {
	User  UserRepository
	Group GroupRepository
	Post  PostRepository
	Stats StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:  NewUserRepository(db),
		Group: NewGroupRepository(db),
		Post:  NewPostRepository(db),
		Stats: NewStatsRepository(db),
	}
}

// statementBuilder picks the placeholder style for the connected driver.
func statementBuilder(db *sqlx.DB) sq.StatementBuilderType {
	switch db.DriverName() {
	case "postgres", "pgx":
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	default:
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
}
