package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duynhne/weather-service/internal/core/domain"
)

var cityCols = []string{"id", "user_id", "name", "country", "lat", "lon", "is_favorite", "notes", "added_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func ptr[T any](v T) *T { return &v }

func TestUserRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "a@x.com", "Ann", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "a@x.com", "Ann", "hash")
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserRepository_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), "a@x.com", "Ann", "hash").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}).
			AddRow("u-1", "a@x.com", "Ann", "hash", now, now))

	row, err := repo.Create(context.Background(), "a@x.com", "Ann", "hash")
	require.NoError(t, err)
	assert.Equal(t, domain.User{ID: "u-1", Email: "a@x.com", Name: "Ann"}, row.User())
}

func TestUserRepository_GetByEmailMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("nobody@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "name", "password_hash", "created_at", "updated_at"}))

	row, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestCityRepository_ListByUser(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	mock.ExpectQuery(`FROM cities WHERE user_id = \$1 ORDER BY added_at ASC`).
		WithArgs("u-1").
		WillReturnRows(pgxmock.NewRows(cityCols).
			AddRow("c-1", "u-1", "London", "GB", ptr(51.5), ptr(-0.12), false, (*string)(nil), t1).
			AddRow("c-2", "u-1", "Paris", "FR", (*float64)(nil), (*float64)(nil), true, ptr("croissants"), t2))

	cities, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, "London", cities[0].Name)
	assert.InDelta(t, 51.5, *cities[0].Lat, 1e-9)
	assert.Nil(t, cities[0].Notes)
	assert.True(t, cities[1].IsFavorite)
	assert.Equal(t, "croissants", *cities[1].Notes)
}

func TestCityRepository_ListByUserEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)

	mock.ExpectQuery("FROM cities").WithArgs("u-1").WillReturnRows(pgxmock.NewRows(cityCols))

	cities, err := repo.ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	assert.NotNil(t, cities)
	assert.Empty(t, cities)
}

func TestCityRepository_CreateDuplicate(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)

	mock.ExpectQuery("INSERT INTO cities").
		WithArgs(pgxmock.AnyArg(), "u-1", "London", "GB", (*float64)(nil), (*float64)(nil)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), "u-1", "London", "GB", nil, nil)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCityRepository_DeleteScopedToOwner(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)

	mock.ExpectExec(`DELETE FROM cities WHERE id = \$1 AND user_id = \$2`).
		WithArgs("c-1", "u-2").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.Delete(context.Background(), "u-2", "c-1")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestCityRepository_ToggleFavorite(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)

	mock.ExpectQuery(`UPDATE cities SET is_favorite = NOT is_favorite`).
		WithArgs("c-1", "u-1").
		WillReturnRows(pgxmock.NewRows(cityCols).
			AddRow("c-1", "u-1", "London", "GB", (*float64)(nil), (*float64)(nil), true, (*string)(nil), time.Now()))

	city, err := repo.ToggleFavorite(context.Background(), "u-1", "c-1")
	require.NoError(t, err)
	require.NotNil(t, city)
	assert.True(t, city.IsFavorite)
}

func TestCityRepository_UpdateNotesNotOwned(t *testing.T) {
	mock := newMock(t)
	repo := NewCityRepository(mock)

	mock.ExpectQuery(`UPDATE cities SET notes = \$3`).
		WithArgs("c-1", "u-2", ptr("hi")).
		WillReturnRows(pgxmock.NewRows(cityCols))

	city, err := repo.UpdateNotes(context.Background(), "u-2", "c-1", ptr("hi"))
	require.NoError(t, err)
	assert.Nil(t, city)
}
