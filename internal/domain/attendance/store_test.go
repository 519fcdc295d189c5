package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCheckInOnlyOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(now, "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	// Second attempt matches zero rows because check_in is already set.
	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(now, "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	assert.NoError(t, store.SetCheckIn(context.Background(), "rec-1", now))
	assert.ErrorIs(t, store.SetCheckIn(context.Background(), "rec-1", now), ErrAlreadyCheckedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCheckOutGuard(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	hours := WorkedHours(now.Add(-8*time.Hour), now)

	mock.ExpectExec("UPDATE attendance_records").
		WithArgs(now, hours.StringFixed(2), "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewStore(mock)
	assert.ErrorIs(t, store.SetCheckOut(context.Background(), "rec-1", now, hours), ErrAlreadyCheckedOut)
	assert.NoError(t, mock.ExpectationsWereMet())
}
