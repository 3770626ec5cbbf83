package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appfab/internal/model"
)

func TestUserRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(&model.User{
		UserID:       "user_1",
		Email:        "a@x.com",
		Username:     "alice",
		PasswordHash: "digest",
		Credits:      10,
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'users.idx_users_email'"})

	err := repo.Create(&model.User{
		UserID:       "user_2",
		Email:        "a@x.com",
		Username:     "bob",
		PasswordHash: "digest",
		Credits:      10,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.GetByEmail("missing@x.com")

	require.NoError(t, err)
	assert.Nil(t, user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmailAndHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\? AND password_hash = \\?").
		WillReturnRows(userRow(sqlmock.NewRows(userColumns()), "user_1", 10, false))

	user, err := repo.GetByEmailAndHash("a@x.com", "digest")

	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user_1", user.UserID)
	assert.Equal(t, 10, user.Credits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDeductCredit(t *testing.T) {
	t.Run("credit available", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("UPDATE `users` SET `credits`=credits - \\? WHERE user_id = \\? AND credits > 0").
			WillReturnResult(sqlmock.NewResult(0, 1))

		deducted, err := repo.DeductCredit("user_1")

		require.NoError(t, err)
		assert.True(t, deducted)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no credit left", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("UPDATE `users` SET `credits`=credits - \\? WHERE user_id = \\? AND credits > 0").
			WillReturnResult(sqlmock.NewResult(0, 0))

		deducted, err := repo.DeductCredit("user_1")

		require.NoError(t, err)
		assert.False(t, deducted, "zero balance must not go negative")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositorySetPro(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("UPDATE `users` SET").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.SetPro("user_1")

		require.NoError(t, err)
		assert.True(t, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown user", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec("UPDATE `users` SET").
			WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.SetPro("user_missing")

		require.NoError(t, err)
		assert.False(t, updated)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
