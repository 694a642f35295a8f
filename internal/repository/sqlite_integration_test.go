package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yatube/internal/database"
	"yatube/internal/models"
	"yatube/internal/repository"
)

func setupSQLite(t *testing.T) *repository.Repository {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.CloseDB() })

	return repository.NewRepository(db.DB)
}

func createUser(t *testing.T, repo *repository.Repository, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username}
	require.NoError(t, repo.User.CreateUser(context.Background(), user, "password123"))
	return user
}

func TestSQLite_PostLifecycle(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	author := createUser(t, repo, "leo")
	group := &models.Group{Title: "Классика", Slug: "classic"}
	require.NoError(t, repo.Group.Create(ctx, group))

	post := &models.Post{Text: "Война и мир", AuthorID: author.ID, GroupID: &group.ID}
	require.NoError(t, repo.Post.Create(ctx, post))

	stored, err := repo.Post.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Война и мир", stored.Text)
	assert.Equal(t, "leo", stored.Author.Username)
	require.NotNil(t, stored.Group)
	assert.Equal(t, "classic", stored.Group.Slug)

	t.Run("Обновление не меняет автора и дату", func(t *testing.T) {
		update := &models.Post{ID: post.ID, Text: "Анна Каренина"}
		require.NoError(t, repo.Post.Update(ctx, update))

		updated, err := repo.Post.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Анна Каренина", updated.Text)
		assert.Nil(t, updated.GroupID)
		assert.Equal(t, author.ID, updated.AuthorID)
		assert.True(t, stored.PubDate.Equal(updated.PubDate))
	})
}

func TestSQLite_ListOrderingAndFilters(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	leo := createUser(t, repo, "leo")
	anna := createUser(t, repo, "anna")
	group := &models.Group{Title: "Классика", Slug: "classic"}
	require.NoError(t, repo.Group.Create(ctx, group))

	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		post := &models.Post{Text: "post", AuthorID: leo.ID, PubDate: base.Add(time.Duration(i) * time.Hour)}
		if i%2 == 0 {
			post.GroupID = &group.ID
		}
		require.NoError(t, repo.Post.Import(ctx, post))
	}
	require.NoError(t, repo.Post.Import(ctx, &models.Post{Text: "anna", AuthorID: anna.ID, PubDate: base.Add(-time.Hour)}))

	all, err := repo.Post.List(ctx, repository.PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].PubDate.After(all[i-1].PubDate), "посты должны идти от новых к старым")
	}
	assert.Equal(t, "anna", all[5].Text)

	page, err := repo.Post.List(ctx, repository.PostFilter{}, 4, 4)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	groupCount, err := repo.Post.Count(ctx, repository.PostFilter{GroupID: &group.ID})
	require.NoError(t, err)
	assert.Equal(t, 3, groupCount)

	authorPosts, err := repo.Post.List(ctx, repository.PostFilter{AuthorID: &anna.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, authorPosts, 1)
	assert.Equal(t, "anna", authorPosts[0].Author.Username)
}

func TestSQLite_Constraints(t *testing.T) {
	repo := setupSQLite(t)
	ctx := context.Background()

	t.Run("Slug уникален", func(t *testing.T) {
		require.NoError(t, repo.Group.Create(ctx, &models.Group{Title: "A", Slug: "same"}))
		err := repo.Group.Create(ctx, &models.Group{Title: "B", Slug: "same"})
		assert.ErrorIs(t, err, repository.ErrSlugTaken)
	})

	t.Run("Имя пользователя уникально", func(t *testing.T) {
		createUser(t, repo, "twin")
		err := repo.User.CreateUser(ctx, &models.User{Username: "twin"}, "password123")
		assert.ErrorIs(t, err, repository.ErrUsernameTaken)
	})

	t.Run("Удаление группы оставляет посты без группы", func(t *testing.T) {
		author := createUser(t, repo, "grouped")
		group := &models.Group{Title: "Temp", Slug: "temp"}
		require.NoError(t, repo.Group.Create(ctx, group))

		post := &models.Post{Text: "in group", AuthorID: author.ID, GroupID: &group.ID}
		require.NoError(t, repo.Post.Create(ctx, post))

		require.NoError(t, repo.Group.Delete(ctx, group.ID))

		survived, err := repo.Post.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Nil(t, survived.GroupID)
		assert.Nil(t, survived.Group)
	})

	t.Run("Удаление пользователя удаляет его посты", func(t *testing.T) {
		author := createUser(t, repo, "leaving")
		post := &models.Post{Text: "bye", AuthorID: author.ID}
		require.NoError(t, repo.Post.Create(ctx, post))

		require.NoError(t, repo.User.DeleteUser(ctx, author.ID))

		_, err := repo.Post.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Статистика", func(t *testing.T) {
		stats, err := repo.Stats.Counts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Users)
		assert.Equal(t, 1, stats.Groups)
		assert.Equal(t, 1, stats.Posts)
	})
}
