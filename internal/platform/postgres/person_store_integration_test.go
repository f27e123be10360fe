//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresh/familytree-api/internal/domain"
	"github.com/shoresh/familytree-api/internal/platform/postgres"
	"github.com/shoresh/familytree-api/internal/store"
	"github.com/shoresh/familytree-api/internal/testdb"
)

func TestPostgresPersonStore_Integration(t *testing.T) {
	db := testdb.Open(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		runStoreFlow(t, postgres.NewPostgresPersonStore(tx, nil))
	})
}

func runStoreFlow(t *testing.T, s *postgres.PostgresPersonStore) {
	ctx := context.Background()

	a := testPerson(t)
	b := testPerson(t)
	b.FirstName = "Yitzhak"
	c := testPerson(t)
	c.FirstName = "Yaakov"
	c.FatherID = a.ID

	for _, p := range []*domain.Person{a, b, c} {
		require.NoError(t, s.Create(ctx, p))
	}

	err := s.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		if err := tx.SetSpouse(ctx, a.ID, b.ID); err != nil {
			return err
		}
		return tx.SetSpouse(ctx, b.ID, a.ID)
	})
	require.NoError(t, err)

	people, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, people, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID},
		[]uuid.UUID{people[0].ID, people[1].ID, people[2].ID})
	assert.Equal(t, b.ID, people[0].SpouseID)

	err = s.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		n, err := tx.ClearReferences(ctx, a.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, 2, n)
		return tx.Delete(ctx, a.ID)
	})
	require.NoError(t, err)

	got, err := s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got.FatherID)

	got, err = s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got.SpouseID)

	_, err = s.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, store.ErrPersonNotFound)

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

// A unique violation aborts the surrounding transaction, so it gets its own.
func TestPostgresPersonStore_DuplicateID(t *testing.T) {
	db := testdb.Open(t)
	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		s := postgres.NewPostgresPersonStore(tx, nil)

		p := testPerson(t)
		require.NoError(t, s.Create(ctx, p))
		assert.ErrorIs(t, s.Create(ctx, p), store.ErrPersonExists)
	})
}

func TestPostgresPersonStore_WithinTxRollsBack(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	s := postgres.NewPostgresPersonStore(db, nil)

	p := testPerson(t)
	err := s.WithinTx(ctx, func(ctx context.Context, tx store.PersonStore) error {
		if err := tx.Create(ctx, p); err != nil {
			return err
		}
		return store.ErrTransactionFailed
	})
	require.ErrorIs(t, err, store.ErrTransactionFailed)

	_, err = s.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, store.ErrPersonNotFound)
}
