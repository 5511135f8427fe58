package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListAvailable(t *testing.T) {
	ctx := context.Background()

	t.Run("Plain read", func(t *testing.T) {
		store, mock, cleanup := newTestStore(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "brand", "price_cents", "id"}).
			AddRow(1, "Stratocaster", "guitar", "Fender", 4900, 1).
			AddRow(2, "TRX-100", "trumpet", "Yamaha", 2900, 2)
		mock.ExpectQuery(regexp.QuoteMeta(listAvailableSQL)).WillReturnRows(rows)

		instruments, err := store.ListAvailable(ctx, false)
		require.NoError(t, err)
		require.Len(t, instruments, 2)
		assert.Equal(t, "Stratocaster", instruments[0].Name)
		assert.Equal(t, int32(2900), instruments[1].PriceCents)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty result", func(t *testing.T) {
		store, mock, cleanup := newTestStore(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(listAvailableSQL)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "type", "brand", "price_cents", "id"}))

		instruments, err := store.ListAvailable(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, instruments)
	})

	t.Run("Exclusive read runs in a transaction", func(t *testing.T) {
		store, mock, cleanup := newTestStore(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "name", "type", "brand", "price_cents", "id"}).
			AddRow(1, "Stratocaster", "guitar", "Fender", 4900, 1)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(listAvailableLockedSQL)).WillReturnRows(rows)
		mock.ExpectCommit()

		instruments, err := store.ListAvailable(ctx, true)
		require.NoError(t, err)
		require.Len(t, instruments, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Exclusive read failure rolls back", func(t *testing.T) {
		store, mock, cleanup := newTestStore(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(listAvailableLockedSQL)).
			WillReturnError(errRelationMissing)
		mock.ExpectRollback()

		instruments, err := store.ListAvailable(ctx, true)
		assert.Nil(t, instruments)

		var se *StoreError
		require.ErrorAs(t, err, &se)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_ListTiers(t *testing.T) {
	store, mock, cleanup := newTestStore(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "name", "price_cents"}).
		AddRow(1, "standard", 4900).
		AddRow(2, "discounted", 2900)
	mock.ExpectQuery(regexp.QuoteMeta(listPricingSQL)).WillReturnRows(rows)

	tiers, err := store.ListTiers(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 2)
	assert.Equal(t, "discounted", tiers[1].Name)
}
