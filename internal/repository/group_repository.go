package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"yatube/internal/models"
)

type groupRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewGroupRepository(db *sqlx.DB) GroupRepository {
	return &groupRepository{db: db, sb: statementBuilder(db)}
}

func (r *groupRepository) Create(ctx context.Context, group *models.Group) error {
	query, args, err := r.sb.Insert("groups").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка построения запроса: %w", err)
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&group.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slug %q: %w", group.Slug, ErrSlugTaken)
		}
		return fmt.Errorf("ошибка при создании группы: %w", err)
	}

	return nil
}

func (r *groupRepository) get(ctx context.Context, where sq.Eq) (*models.Group, error) {
	query, args, err := r.sb.Select("id", "title", "slug", "description").
		From("groups").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	var group models.Group
	if err := r.db.GetContext(ctx, &group, query, args...); err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepository) GetByID(ctx context.Context, groupID int64) (*models.Group, error) {
	group, err := r.get(ctx, sq.Eq{"id": groupID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа с ID %d не найдена: %w", groupID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}
	return group, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	group, err := r.get(ctx, sq.Eq{"slug": slug})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("группа %q не найдена: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении группы: %w", err)
	}
	return group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.Group, error) {
	query, args, err := r.sb.Select("id", "title", "slug", "description").
		From("groups").
		OrderBy("title", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка построения запроса: %w", err)
	}

	groups := []models.Group{}
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, fmt.Errorf("ошибка при получении групп: %w", err)
	}
	return groups, nil
}

// Delete removes a group. Posts of the group survive with group_id set to
// NULL by the foreign key.
func (r *groupRepository) Delete(ctx context.Context, groupID int64) error {
	query := r.db.Rebind(`DELETE FROM groups WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, groupID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении группы: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("группа с ID %d не найдена: %w", groupID, ErrNotFound)
	}

	return nil
}
