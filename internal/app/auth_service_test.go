package app

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"appfab/internal/pkg/jwtutil"
	"appfab/internal/pkg/passhash"
	"appfab/internal/repository"
)

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

func newAuthService(db *gorm.DB, scheme string) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		passhash.New(scheme),
		10,
		"test-secret",
		time.Hour,
	)
}

func TestRegisterCreatesUserWithSignupCredits(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.Register(RegisterInput{Email: "a@x.com", Password: "pw", Username: "alice"})

	require.NoError(t, err)
	assert.Equal(t, 10, result.User.Credits)
	assert.False(t, result.User.IsPro)
	assert.True(t, len(result.User.UserID) > len("user_"))
	assert.Equal(t, "user_", result.User.UserID[:5])
	// plaintext never stored
	assert.NotEqual(t, "pw", result.User.PasswordHash)

	claims, err := jwtutil.ParseToken("test-secret", result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.UserID, claims.UserID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailPerformsNoInsert(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user_1", "a@x.com", "alice", "digest", 10, false, time.Now(), time.Now()))

	_, err := svc.Register(RegisterInput{Email: "a@x.com", Password: "pw", Username: "alice"})

	assert.ErrorIs(t, err, ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRacingDuplicateReportsEmailExists(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	// the pre-insert lookup sees nothing, then the unique index rejects the
	// insert, as when two registrations for the same email race
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()))
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'users.idx_users_email'"})

	_, err := svc.Register(RegisterInput{Email: "a@x.com", Password: "pw", Username: "alice"})

	assert.ErrorIs(t, err, ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	db, _ := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	_, err := svc.Register(RegisterInput{Email: "", Password: "pw", Username: "alice"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginSHA256MatchesByEmailAndDigest(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	digest, err := passhash.New(passhash.SchemeSHA256).Hash("pw")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\? AND password_hash = \\?").
		WithArgs("a@x.com", digest, 1).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user_1", "a@x.com", "alice", digest, 9, false, time.Now(), time.Now()))

	result, err := svc.Login(LoginInput{Email: "a@x.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "user_1", result.User.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPasswordFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\? AND password_hash = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := svc.Login(LoginInput{Email: "a@x.com", Password: "wrong"})

	assert.ErrorIs(t, err, ErrInvalidCredential)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginBcryptVerifiesAgainstStoredHash(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeBcrypt)

	hash, err := passhash.New(passhash.SchemeBcrypt).Hash("pw")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user_1", "a@x.com", "alice", hash, 9, false, time.Now(), time.Now()))

	result, err := svc.Login(LoginInput{Email: "a@x.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, "user_1", result.User.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpgradeToPro(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newAuthService(db, passhash.SchemeSHA256)

	mock.ExpectExec("UPDATE `users` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("user_1", "a@x.com", "alice", "digest", 9, true, time.Now(), time.Now()))

	user, err := svc.UpgradeToPro("user_1")

	require.NoError(t, err)
	assert.True(t, user.IsPro)
	require.NoError(t, mock.ExpectationsWereMet())
}
