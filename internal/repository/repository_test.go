package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB wires gorm to a sqlmock connection so repository SQL can be
// asserted without a running MySQL.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return db, mock
}

func userColumns() []string {
	return []string{"user_id", "email", "username", "password_hash", "credits", "is_pro", "created_at", "updated_at"}
}

func userRow(rows *sqlmock.Rows, userID string, credits int, isPro bool) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(userID, "a@x.com", "alice", "digest", credits, isPro, now, now)
}

func appColumns() []string {
	return []string{"app_id", "user_id", "name", "description", "prompt", "code", "is_public", "likes", "created_at"}
}
