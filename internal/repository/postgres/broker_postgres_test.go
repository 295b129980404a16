package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conectaleads/internal/model"
	"conectaleads/internal/repository"
)

var brokerRowColumns = []string{"id", "nome", "email", "telefone", "cargo", "ativo", "avatar_url", "created_at"}

func TestBrokerPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBrokerPostgres(db)
	ctx := context.Background()
	in := model.BrokerInput{Name: "Bruno", Email: "bruno@example.com", Phone: strPtr("1198")}

	t.Run("defaults to active", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO corretores (.+) COALESCE\(\$5, true\)`).
			WithArgs("Bruno", "bruno@example.com", "1198", nil, nil).
			WillReturnRows(sqlmock.NewRows(brokerRowColumns).
				AddRow(1, "Bruno", "bruno@example.com", "1198", nil, true, nil, time.Now()))

		b, err := repo.Create(ctx, in)
		require.NoError(t, err)
		assert.True(t, b.Active)
		assert.Equal(t, "1198", *b.Phone)
		assert.Nil(t, b.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO corretores").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "corretores_email_key"})

		b, err := repo.Create(ctx, in)
		assert.Nil(t, b)
		assert.True(t, IsUniqueViolation(err))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrokerPostgres_List(t *testing.T) {
	ctx := context.Background()

	t.Run("search and active filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		active := true
		mock.ExpectQuery(`FROM corretores WHERE \(nome ILIKE \$1 OR email ILIKE \$1\) AND ativo = \$2 ORDER BY created_at DESC`).
			WithArgs("%bru%", true).
			WillReturnRows(sqlmock.NewRows(brokerRowColumns).
				AddRow(2, "Bruno", "bruno@example.com", nil, "gerente", true, "avatars/2/a.png", time.Now()))

		items, err := NewBrokerPostgres(db).List(ctx, repository.BrokerFilter{Search: "bru", Active: &active})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "gerente", *items[0].Role)
		assert.Equal(t, "avatars/2/a.png", *items[0].AvatarURL)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT (.+) FROM corretores ORDER BY created_at DESC, id DESC`).
			WillReturnRows(sqlmock.NewRows(brokerRowColumns))

		items, err := NewBrokerPostgres(db).List(ctx, repository.BrokerFilter{})
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestBrokerPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE corretores SET (.+) ativo = COALESCE\(\$6, ativo\)`).
		WithArgs(int64(3), "Caio", "caio@example.com", "1197", "corretor", nil).
		WillReturnRows(sqlmock.NewRows(brokerRowColumns).
			AddRow(3, "Caio", "caio@example.com", "1197", "corretor", false, nil, time.Now()))

	b, err := NewBrokerPostgres(db).Update(context.Background(), 3, model.BrokerInput{
		Name: "Caio", Email: "caio@example.com", Phone: strPtr("1197"), Role: strPtr("corretor"),
	})
	require.NoError(t, err)
	assert.False(t, b.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBrokerPostgres_SetActiveAndAvatar(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBrokerPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery(`UPDATE corretores SET ativo = \$2 WHERE id = \$1`).
		WithArgs(int64(4), false).
		WillReturnRows(sqlmock.NewRows(brokerRowColumns).
			AddRow(4, "Duda", "duda@example.com", nil, nil, false, nil, time.Now()))
	mock.ExpectQuery(`UPDATE corretores SET avatar_url = \$2 WHERE id = \$1`).
		WithArgs(int64(4), "avatars/4/x.jpg").
		WillReturnRows(sqlmock.NewRows(brokerRowColumns).
			AddRow(4, "Duda", "duda@example.com", nil, nil, false, "avatars/4/x.jpg", time.Now()))

	b, err := repo.SetActive(ctx, 4, false)
	require.NoError(t, err)
	assert.False(t, b.Active)

	b, err = repo.SetAvatar(ctx, 4, "avatars/4/x.jpg")
	require.NoError(t, err)
	assert.Equal(t, "avatars/4/x.jpg", *b.AvatarURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
