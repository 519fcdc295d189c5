package payroll

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMapsUniqueViolation(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO payroll_records").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "payroll_records_profile_id_key"})

	store := NewStore(mock)
	_, err = store.Create(context.Background(), Record{ProfileID: "prof-1", Month: 3, Year: 2025})

	assert.ErrorIs(t, err, ErrExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO payroll_records").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("pay-1"))

	store := NewStore(mock)
	id, err := store.Create(context.Background(), Record{ProfileID: "prof-1", Month: 3, Year: 2025})

	require.NoError(t, err)
	assert.Equal(t, "pay-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
