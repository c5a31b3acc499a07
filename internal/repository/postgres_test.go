package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"brightevents-backend/internal/model"
)

// newPostgresMock returns a gorm handle speaking the postgres dialect to
// sqlmock, for driver error paths an embedded database cannot produce.
func newPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestPostgresUserRepository_FindByID_DriverError(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(errors.New("connection reset by peer"))

	_, err := repo.FindByID(context.Background(), 7)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection reset by peer")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_FindByID_NoRows(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := repo.FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewUserRepository(db)

	// Another registration won the race between the check and the insert.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &model.User{Username: "chrisevans", Email: "test@example.com", Password: "hash"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRevokedTokenRepository_Exists_DriverError(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewRevokedTokenRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "revoked_tokens"`).WillReturnError(errors.New("too many connections"))

	_, err := repo.Exists(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check revoked token")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRSVPRepository_Insert_ForeignKeyViolation(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewRSVPRepository(db)

	// The event row is visible but the user was removed concurrently.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "events" .* FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	mock.ExpectExec(`INSERT INTO "rsvps"`).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "insert or update on table \"rsvps\" violates foreign key constraint"})
	mock.ExpectRollback()

	created, err := repo.Insert(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRSVPRepository_Insert_MissingEvent(t *testing.T) {
	db, mock := newPostgresMock(t)
	repo := NewRSVPRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "events" .* FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	created, err := repo.Insert(context.Background(), 7, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
