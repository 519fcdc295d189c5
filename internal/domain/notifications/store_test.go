package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadIdempotent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	// First mark flips the flag, second mark still matches the row and
	// succeeds without change.
	for i := 0; i < 2; i++ {
		mock.ExpectQuery("UPDATE notifications").
			WithArgs("notif-1", "acct-1").
			WillReturnRows(pgxmock.NewRows([]string{"is_read"}).AddRow(true))
	}

	store := NewStore(mock)
	assert.NoError(t, store.MarkRead(context.Background(), "acct-1", "notif-1"))
	assert.NoError(t, store.MarkRead(context.Background(), "acct-1", "notif-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadForeignNotification(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("UPDATE notifications").
		WithArgs("notif-1", "acct-2").
		WillReturnRows(pgxmock.NewRows([]string{"is_read"}))

	store := NewStore(mock)
	err = store.MarkRead(context.Background(), "acct-2", "notif-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListNewestFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery("SELECT id, account_id, type, text, is_read, created_at").
		WithArgs("acct-1", 20, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "type", "text", "is_read", "created_at"}).
			AddRow("n2", "acct-1", TypeMessage, "newer", false, now).
			AddRow("n1", "acct-1", TypeGeneral, "older", true, now.Add(-time.Hour)))

	store := NewStore(mock)
	items, err := store.List(context.Background(), "acct-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "n2", items[0].ID)
	assert.False(t, items[0].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}
