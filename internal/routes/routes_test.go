package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/memstore"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

const secret = "routes-secret"

type api struct {
	t *testing.T
	h http.Handler
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memstore.New()
	store.AddUser(models.User{ID: 1, Name: "Admin", Email: "admin@clinic.test", Role: "admin"})
	store.AddUser(models.User{ID: 7, Name: "Dr. Prof", Email: "prof@clinic.test", Role: "professional"})
	store.AddUser(models.User{ID: 20, Name: "Client", Email: "client@clinic.test", Role: "client"})
	store.AddUser(models.User{ID: 21, Name: "Other", Email: "other@clinic.test", Role: "client"})

	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:       &config.Config{JWTSecret: secret, MergeSlotWindows: true},
		Log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		Appointments: store.Appointments(),
		Availability: store.Availability(),
		Users:        store.Users(),
		Audit:        audit.Discard,
		Limiter:      middleware.NewRateLimiter(1000, 1000),
	})
	return &api{t: t, h: r}
}

func (a *api) token(id uint, role any) string {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": id, "role": role}).SignedString([]byte(secret))
	require.NoError(a.t, err)
	return tok
}

func (a *api) do(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	a.t.Helper()

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.h.ServeHTTP(rec, req)

	out := map[string]any{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func TestSchedulingFlow(t *testing.T) {
	a := newAPI(t)
	prof := a.token(7, "Psicóloga")
	client := a.token(20, "paciente")
	other := a.token(21, "cliente")
	admin := a.token(1, 1)

	// availability 09:00-10:00
	rec, body := a.do(http.MethodPost, "/api/availability", prof, map[string]any{
		"start": "2025-09-01T09:00:00Z", "end": "2025-09-01T10:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	windowID := uint(body["id"].(float64))

	rec, _ = a.do(http.MethodPost, "/api/availability", client, map[string]any{
		"start": "2025-09-01T09:00:00Z", "end": "2025-09-01T10:00:00Z",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = a.do(http.MethodPost, "/api/availability", prof, map[string]any{
		"start": "2025-09-01T10:00:00Z", "end": "2025-09-01T09:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// booking
	rec, body = a.do(http.MethodPost, "/api/appointments", client, map[string]any{
		"userId": 21, "professionalId": 7, "startsAt": "2025-09-01T09:00:00Z", "endsAt": "2025-09-01T09:30:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.EqualValues(t, 20, body["userId"])
	appointmentID := uint(body["id"].(float64))

	rec, body = a.do(http.MethodPost, "/api/appointments", other, map[string]any{
		"professionalId": 7, "startsAt": "2025-09-01T09:15:00Z", "endsAt": "2025-09-01T09:45:00Z",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "time_conflict", body["error_code"])

	// slots
	rec, body = a.do(http.MethodGet, "/api/availability/professional/7/slots?date=2025-09-01&interval=30", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slots := body["slots"].([]any)
	require.Len(t, slots, 2)
	assert.Equal(t, false, slots[0].(map[string]any)["available"])
	assert.Equal(t, true, slots[1].(map[string]any)["available"])

	rec, _ = a.do(http.MethodGet, "/api/availability/professional/7/slots?date=tomorrow", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = a.do(http.MethodGet, "/api/availability/professional/7/slots?interval=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	for _, raw := range []string{"1441", "3749353613647811"} {
		rec, body = a.do(http.MethodGet, "/api/availability/professional/7/slots?date=2025-09-01&interval="+raw, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid_interval", body["error_code"])
	}

	// listings
	rec, body = a.do(http.MethodGet, "/api/appointments?date=2025-09-01", prof, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, body = a.do(http.MethodGet, "/api/appointments", prof, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_date", body["error_code"])

	rec, body = a.do(http.MethodGet, "/api/appointments", other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["total"])

	// authorization on mutations
	path := "/api/appointments/" + itoa(appointmentID)
	rec, _ = a.do(http.MethodDelete, path, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, body = a.do(http.MethodPatch, path, prof, map[string]any{
		"startsAt": "2025-09-01T09:30:00Z", "endsAt": "2025-09-01T10:00:00Z",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2025-09-01T09:30:00Z", body["startsAt"])

	rec, body = a.do(http.MethodDelete, path, client, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cancelled", body["status"])

	rec, _ = a.do(http.MethodGet, "/api/appointments/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// soft delete
	rec, _ = a.do(http.MethodDelete, "/api/availability/"+itoa(windowID), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = a.do(http.MethodGet, "/api/availability/professional/7/slots?date=2025-09-01", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["slots"])

	rec, body = a.do(http.MethodGet, "/api/availability", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["total"])
}

func TestMeAndAuth(t *testing.T) {
	a := newAPI(t)

	rec, _ := a.do(http.MethodGet, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := a.do(http.MethodGet, "/api/me", a.token(7, map[string]any{"slug": "PROFESSIONAL"}), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "professional", body["role"])

	rec, _ = a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func itoa(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
