package profile

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

var accountCols = []string{"account_id", "account_email", "account_name", "account_picture", "created_at"}

func TestRepository_UpdateAccount(t *testing.T) {
	t.Run("only provided fields are set", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		name := "Nok"
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE register_account SET account_name = $1 WHERE account_id = $2")).
			WithArgs("Nok", int64(7)).
			WillReturnRows(pgxmock.NewRows(accountCols).AddRow(int64(7), "a@b.co", "Nok", "", time.Now()))

		account, err := NewRepositoryImpl(mock, slog.Default()).UpdateAccount(context.Background(), 7, types.UpdateProfileRequest{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "Nok", account.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update reads the account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM register_account")).WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(accountCols).AddRow(int64(7), "a@b.co", "", "", time.Now()))

		account, err := NewRepositoryImpl(mock, slog.Default()).UpdateAccount(context.Background(), 7, types.UpdateProfileRequest{})

		require.NoError(t, err)
		assert.Equal(t, int64(7), account.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		pic := "https://img/p.jpg"
		mock.ExpectQuery(regexp.QuoteMeta("UPDATE register_account SET account_picture = $1 WHERE account_id = $2")).
			WithArgs(pic, int64(7)).
			WillReturnError(pgx.ErrNoRows)

		_, err = NewRepositoryImpl(mock, slog.Default()).UpdateAccount(context.Background(), 7, types.UpdateProfileRequest{Picture: &pic})

		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpsertLocation(t *testing.T) {
	upsertRe := regexp.QuoteMeta("INSERT INTO profile_location")

	t.Run("insert then update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		cols := []string{"latitude", "longitude", "updated_at", "inserted"}
		mock.ExpectQuery(upsertRe).WithArgs(int64(7), 13.7, 100.5).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(13.7, 100.5, time.Now(), true))
		mock.ExpectQuery(upsertRe).WithArgs(int64(7), 18.8, 98.9).
			WillReturnRows(pgxmock.NewRows(cols).AddRow(18.8, 98.9, time.Now(), false))

		repo := NewRepositoryImpl(mock, slog.Default())
		_, first, err := repo.UpsertLocation(context.Background(), 7, 13.7, 100.5)
		require.NoError(t, err)
		loc, second, err := repo.UpsertLocation(context.Background(), 7, 18.8, 98.9)
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, 18.8, loc.Latitude)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account is a validation error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(upsertRe).WithArgs(int64(99), 1.0, 1.0).WillReturnError(&pgconn.PgError{Code: "23503"})

		_, _, err = NewRepositoryImpl(mock, slog.Default()).UpsertLocation(context.Background(), 99, 1, 1)

		assert.ErrorIs(t, err, types.ErrValidation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
