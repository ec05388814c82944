package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"novalib-backend/internal/domains/returndesk"
)

func newMockRepo(t *testing.T) (*PostgresReturnDeskRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresReturnDeskRepository(mock), mock
}

func TestCreateEntry(t *testing.T) {
	repo, mock := newMockRepo(t)
	fine := decimal.RequireFromString("12.50")

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO return_desk")).
		WithArgs(int64(7), "Dune", fine, "123456", false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	e := &returndesk.Entry{StudentID: 7, Book: "Dune", Fine: fine, OTP: "123456"}
	require.NoError(t, repo.Create(context.Background(), e))
	assert.Equal(t, int64(1), e.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDueFineSums(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(fine), 0)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.RequireFromString("37.25")))

	total, err := repo.DueFine(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("37.25")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDueFineZeroWhenNoRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(fine), 0)")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"sum"}).AddRow(decimal.Zero))

	total, err := repo.DueFine(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}
