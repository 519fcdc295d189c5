package attendancehandler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrdesk/internal/domain/attendance"
	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/middleware"
)

const testSecret = "test-secret"

func newRouter(mock pgxmock.PgxPoolIface) *chi.Mux {
	h := NewHandler(
		attendance.NewService(attendance.NewStore(mock)),
		profile.NewService(profile.NewStore(mock)),
	)
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(router)
	return router
}

func hrToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		AccountID: "acct-hr",
		Username:  "hboss",
		Role:      auth.RoleHRManager,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func recordRows(id, status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "profile_id", "username", "date", "check_in", "check_out",
		"worked_hours", "status",
	}).AddRow(id, "prof-1", "jdoe", time.Now(), nil, nil, nil, status)
}

func putAmend(t *testing.T, router http.Handler, recordID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/attendance/records/"+recordID, bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+hrToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAmendNormalizesStatusCasing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM attendance_records").
		WithArgs("rec-1").
		WillReturnRows(recordRows("rec-1", attendance.StatusPresent))
	// The canonical spelling reaches the database.
	mock.ExpectExec("UPDATE attendance_records").
		WithArgs((*time.Time)(nil), (*time.Time)(nil), (*string)(nil), attendance.StatusLate, "rec-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("FROM attendance_records").
		WithArgs("rec-1").
		WillReturnRows(recordRows("rec-1", attendance.StatusLate))

	rec := putAmend(t, newRouter(mock), "rec-1", `{"status":"late"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var envelope struct {
		Data attendance.Record `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, attendance.StatusLate, envelope.Data.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAmendRejectsUnknownStatus(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rec := putAmend(t, newRouter(mock), "rec-1", `{"status":"Sleeping"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
