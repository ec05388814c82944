package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalib-backend/internal/domains/user"
)

func newMockRepo(t *testing.T) (*PostgresUserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresUserRepository(mock), mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "barcode", "first_name", "last_name", "phone", "email",
		"department_id", "otp_hash", "otp_created_at", "created_at", "updated_at",
	})
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("LIB-001", "Ada", "Lovelace", "555-0100", "ada@example.com", (*int64)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	u := &user.User{
		Barcode:   "LIB-001",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Phone:     "555-0100",
		Email:     "ada@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateBarcode(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("LIB-001", "Ada", "", "", "ada@example.com", (*int64)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &user.User{
		Barcode: "LIB-001", FirstName: "Ada", Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, user.ErrBarcodeAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByBarcodeNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
		WithArgs("NOPE").
		WillReturnRows(userRows())

	_, err := repo.FindByBarcode(context.Background(), "NOPE")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveByBarcodeAndEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users u WHERE")).
		WithArgs("LIB-001", "ada@example.com").
		WillReturnRows(userRows().AddRow(
			int64(7), "LIB-001", "Ada", "Lovelace", "555-0100", "ada@example.com",
			nil, nil, nil, now, now))

	got, err := repo.Resolve(context.Background(), user.Identifiers{
		Barcode: "LIB-001",
		Email:   "ada@example.com",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", got[0].FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveEmptyIdentifiers(t *testing.T) {
	repo, mock := newMockRepo(t)

	got, err := repo.Resolve(context.Background(), user.Identifiers{})
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetAndClearOTP(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET otp_hash = $1")).
		WithArgs("hash", now, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET otp_hash = NULL")).
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.SetOTP(context.Background(), 7, "hash", now))
	require.NoError(t, repo.ClearOTP(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDepartmentInUse(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM departments")).
		WithArgs(int64(3)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.DeleteDepartment(context.Background(), 3)
	assert.ErrorIs(t, err, user.ErrDepartmentInUse)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDepartmentDuplicateName(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO departments")).
		WithArgs("Engineering").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.CreateDepartment(context.Background(), &user.Department{Name: "Engineering"})
	assert.ErrorIs(t, err, user.ErrDepartmentNameExists)
	require.NoError(t, mock.ExpectationsWereMet())
}
