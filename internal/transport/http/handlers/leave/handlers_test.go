package leavehandler

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

	"hrdesk/internal/domain/auth"
	"hrdesk/internal/domain/leave"
	"hrdesk/internal/domain/notifications"
	"hrdesk/internal/domain/profile"
	"hrdesk/internal/transport/http/api"
	"hrdesk/internal/transport/http/middleware"
)

const testSecret = "test-secret"

func newRouter(mock pgxmock.PgxPoolIface) *chi.Mux {
	h := NewHandler(
		leave.NewService(leave.NewStore(mock)),
		profile.NewService(profile.NewStore(mock)),
		notifications.NewService(notifications.NewStore(mock)),
	)
	router := chi.NewRouter()
	router.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(router)
	return router
}

func employeeToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		AccountID: "acct-1",
		Username:  "jdoe",
		Role:      auth.RoleEmployee,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func profileRows(profileID string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "account_id", "username", "email", "first_name", "last_name",
		"is_superuser", "role", "department", "join_date",
		"phone", "qualification", "address", "photo_path", "created_at",
	}).AddRow(profileID, "acct-1", "jdoe", "jdoe@example.com", "Jane", "Doe",
		false, auth.RoleEmployee, "IT", now, "", "", "", "", now)
}

func requestRows(id, profileID, leaveType string, start, end time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "profile_id", "username", "leave_type", "start_date", "end_date",
		"reason", "status", "approver_id", "approver", "created_at",
	}).AddRow(id, profileID, "jdoe", leaveType, start, end,
		"flu", leave.StatusPending, nil, "", time.Now())
}

func postSubmit(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/leave/requests", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+employeeToken(t))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitRejectsMissingType(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM profiles").
		WithArgs("acct-1").
		WillReturnRows(profileRows("prof-1"))

	rec := postSubmit(t, newRouter(mock),
		`{"type":"","startDate":"2025-03-10","endDate":"2025-03-11","reason":"flu"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope api.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "validation_error", envelope.Error.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitRejectsUnknownType(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("FROM profiles").
		WithArgs("acct-1").
		WillReturnRows(profileRows("prof-1"))

	rec := postSubmit(t, newRouter(mock),
		`{"type":"Sabbatical","startDate":"2025-03-10","endDate":"2025-03-11","reason":"flu"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitNormalizesTypeCasing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM profiles").
		WithArgs("acct-1").
		WillReturnRows(profileRows("prof-1"))
	// The stored type is the canonical spelling, whatever the client sent.
	mock.ExpectQuery("INSERT INTO leave_requests").
		WithArgs("prof-1", leave.TypeSick, start, end, "flu", leave.StatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("req-1"))
	mock.ExpectQuery("FROM leave_requests").
		WithArgs("req-1").
		WillReturnRows(requestRows("req-1", "prof-1", leave.TypeSick, start, end))

	rec := postSubmit(t, newRouter(mock),
		`{"type":"sick","startDate":"2025-03-10","endDate":"2025-03-11","reason":"flu"}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var envelope struct {
		Data leave.Request `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, leave.TypeSick, envelope.Data.Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
