package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Stats struct {
	Users  int `json:"users" db:"users"`
	Groups int `json:"groups" db:"groups"`
	Posts  int `json:"posts" db:"posts"`
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Counts returns row counts of the application tables.
func (r *statsRepository) Counts(ctx context.Context) (Stats, error) {
	var stats Stats

	err := r.db.GetContext(ctx, &stats, `
			SELECT
				(SELECT COUNT(*) FROM users)  AS users,
				(SELECT COUNT(*) FROM groups) AS groups,
				(SELECT COUNT(*) FROM posts)  AS posts
		`)
	if err != nil {
		return Stats{}, fmt.Errorf("ошибка при подсчёте записей базы данных: %w", err)
	}

	return stats, nil
}
