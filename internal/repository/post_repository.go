package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
	sb sq.StatementBuilderType
}

// postRow is the storage shape of a post joined with its author and group.
// author_id and group_id are nullable here; models.Post is not.
type postRow struct {
	ID               int64          `db:"id"`
	Text             string         `db:"text"`
	PubDate          time.Time      `db:"pub_date"`
	AuthorID         sql.NullInt64  `db:"author_id"`
	GroupID          sql.NullInt64  `db:"group_id"`
	AuthorUsername   sql.NullString `db:"author_username"`
	AuthorFirstName  sql.NullString `db:"author_first_name"`
	AuthorLastName   sql.NullString `db:"author_last_name"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupDescription sql.NullString `db:"group_description"`
}

func (r postRow) toModel() models.Post {
	post := models.Post{
		ID:      r.ID,
		Text:    r.Text,
		PubDate: r.PubDate,
	}

	if r.AuthorID.Valid {
		post.AuthorID = r.AuthorID.Int64
		post.Author = models.User{
			ID:        r.AuthorID.Int64,
			Username:  r.AuthorUsername.String,
			FirstName: r.AuthorFirstName.String,
			LastName:  r.AuthorLastName.String,
		}
	}

	if r.GroupID.Valid {
		groupID := r.GroupID.Int64
		post.GroupID = &groupID
		post.Group = &models.Group{
			ID:          groupID,
			Title:       r.GroupTitle.String,
			Slug:        r.GroupSlug.String,
			Description: r.GroupDescription.String,
		}
	}

	return post
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db, sb: statementBuilder(db)}
}

func (r *PostRepositoryImpl) selectPosts() sq.SelectBuilder {
	return r.sb.Select(
		"p.id AS id",
		"p.text AS text",
		"p.pub_date AS pub_date",
		"p.author_id AS author_id",
		"p.group_id AS group_id",
		"u.username AS author_username",
		"u.first_name AS author_first_name",
		"u.last_name AS author_last_name",
		"g.title AS group_title",
		"g.slug AS group_slug",
		"g.description AS group_description",
	).
		From("posts p").
		LeftJoin("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id")
}

// Create stores a post written through the site. The author is mandatory and
// pub_date is stamped here.
func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.AuthorID == 0 {
		return errors.New("у поста должен быть автор")
	}

	post.PubDate = time.Now().UTC()
	return r.insert(ctx, post)
}

// Import stores a post from an administrative bulk load. The author may be
// absent and a non-zero pub_date is kept as is.
func (r *PostRepositoryImpl) Import(ctx context.Context, post *models.Post) error {
	if post.PubDate.IsZero() {
		post.PubDate = time.Now().UTC()
	} else {
		post.PubDate = post.PubDate.UTC()
	}
	return r.insert(ctx, post)
}

func (r *PostRepositoryImpl) insert(ctx context.Context, post *models.Post) error {
	var authorID any
	if post.AuthorID != 0 {
		authorID = post.AuthorID
	}

	query, args, err := r.sb.Insert("posts").
		Columns("text", "pub_date", "author_id", "group_id").
		Values(post.Text, post.PubDate, authorID, post.GroupID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}

	if err := r.DB.QueryRowxContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query, args, err := r.selectPosts().Where(sq.Eq{"p.id": postID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var row postRow
	err = r.DB.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %d не найден: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	post := row.toModel()
	return &post, nil
}

// List returns posts newest first; id breaks pub_date ties.
func (r *PostRepositoryImpl) List(ctx context.Context, filter PostFilter, limit, offset int) ([]models.Post, error) {
	if limit < 0 || offset < 0 {
		return nil, fmt.Errorf("некорректные параметры выборки: limit=%d offset=%d", limit, offset)
	}

	query, args, err := filter.apply(r.selectPosts()).
		OrderBy("p.pub_date DESC", "p.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var rows []postRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts, nil
}

func (r *PostRepositoryImpl) Count(ctx context.Context, filter PostFilter) (int, error) {
	query, args, err := filter.apply(r.sb.Select("COUNT(*)").From("posts p")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var count int
	if err := r.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}
	return count, nil
}

// Update writes text and group only; id, author and pub_date never change.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := r.DB.Rebind(`UPDATE posts SET text = ?, group_id = ? WHERE id = ?`)

	result, err := r.DB.ExecContext(ctx, query, post.Text, post.GroupID, post.ID)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %d не найден: %w", post.ID, ErrNotFound)
	}

	return nil
}
