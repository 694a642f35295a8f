package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"yatube/internal/models"
)

var userRowColumns = []string{"id", "username", "first_name", "last_name", "email", "password_hash", "date_joined"}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	// "postgres" makes squirrel and Rebind emit $N placeholders
	sqlxDB := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

func TestUserRepository_CreateUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	insertUser := regexp.QuoteMeta(`INSERT INTO users (username,first_name,last_name,email,password_hash,date_joined) VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`)

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{Username: "leo", Email: "leo@example.com"}

		mock.ExpectQuery(insertUser).
			WithArgs("leo", "", "", "leo@example.com", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := repo.CreateUser(ctx, user, "password123")

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.False(t, user.DateJoined.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка при дублировании имени", func(t *testing.T) {
		user := &models.User{Username: "leo"}

		mock.ExpectQuery(insertUser).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		err := repo.CreateUser(ctx, user, "password123")

		assert.ErrorIs(t, err, ErrUsernameTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(insertUser).
			WillReturnError(errors.New("connection failed"))

		err := repo.CreateUser(ctx, &models.User{Username: "leo"}, "password123")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUsernameTaken)
		assert.Contains(t, err.Error(), "ошибка при создании пользователя")
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	selectByID := regexp.QuoteMeta(`SELECT id, username, first_name, last_name, email, password_hash, date_joined FROM users WHERE id = $1`)

	t.Run("Успешное получение пользователя по ID", func(t *testing.T) {
		joined := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
		rows := sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "test_user", "Test", "User", "test@user.net", "hash", joined)

		mock.ExpectQuery(selectByID).WithArgs(int64(1)).WillReturnRows(rows)

		user, err := repo.GetUserByID(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, "test_user", user.Username)
		assert.Equal(t, "Test User", user.FullName())
		assert.Equal(t, joined, user.DateJoined)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(selectByID).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(ctx, 2)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Ошибка базы данных", func(t *testing.T) {
		mock.ExpectQuery(selectByID).WithArgs(int64(3)).WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, 3)

		assert.Nil(t, user)
		assert.NotErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "ошибка при получении пользователя")
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	selectByName := regexp.QuoteMeta(`SELECT id, username, first_name, last_name, email, password_hash, date_joined FROM users WHERE username = $1`)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userRowColumns).
			AddRow(int64(1), "leo", "", "", "", string(hashedPassword), time.Now())
	}

	t.Run("Успешная проверка пароля", func(t *testing.T) {
		mock.ExpectQuery(selectByName).WithArgs("leo").WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, "leo", "correct_password")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("Неверный пароль", func(t *testing.T) {
		mock.ExpectQuery(selectByName).WithArgs("leo").WillReturnRows(userRows())

		user, err := repo.VerifyPassword(ctx, "leo", "wrong_password")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(selectByName).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, "ghost", "whatever")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	deleteUser := regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)

	t.Run("Успешное удаление", func(t *testing.T) {
		mock.ExpectExec(deleteUser).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.DeleteUser(ctx, 1))
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectExec(deleteUser).WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.DeleteUser(ctx, 9), ErrNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
