package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appointmentHandler "github.com/medrec/hospital-api/internal/handler/appointment"
	authHandler "github.com/medrec/hospital-api/internal/handler/auth"
	departmentHandler "github.com/medrec/hospital-api/internal/handler/department"
	doctorHandler "github.com/medrec/hospital-api/internal/handler/doctor"
	healthHandler "github.com/medrec/hospital-api/internal/handler/health"
	patientHandler "github.com/medrec/hospital-api/internal/handler/patient"
	prescriptionHandler "github.com/medrec/hospital-api/internal/handler/prescription"
	"github.com/medrec/hospital-api/internal/middleware"
	"github.com/medrec/hospital-api/internal/repository/memory"
	"github.com/medrec/hospital-api/internal/router"
	appointmentService "github.com/medrec/hospital-api/internal/service/appointment"
	authService "github.com/medrec/hospital-api/internal/service/auth"
	departmentService "github.com/medrec/hospital-api/internal/service/department"
	doctorService "github.com/medrec/hospital-api/internal/service/doctor"
	patientService "github.com/medrec/hospital-api/internal/service/patient"
	prescriptionService "github.com/medrec/hospital-api/internal/service/prescription"
	"github.com/medrec/hospital-api/pkg/auth"
	"github.com/medrec/hospital-api/pkg/security"
)

type pingerFunc func(context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

type testApp struct {
	engine http.Handler
	token  string
}

func newTestApp(t *testing.T) *testApp {
	return newTestAppWithConfig(t, router.Config{RequestTimeout: 5 * time.Second})
}

func newTestAppWithConfig(t *testing.T, cfg router.Config) *testApp {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	departmentRepo := memory.NewDepartmentRepository(store)
	doctorRepo := memory.NewDoctorRepository(store)
	patientRepo := memory.NewPatientRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	prescriptionRepo := memory.NewPrescriptionRepository(store)

	tokenManager := auth.NewManager("test-secret", time.Hour, 24*time.Hour)
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	authSvc := authService.NewService(userRepo, tokenManager, hasher,
		cache.New(cache.NoExpiration, time.Minute))

	r := router.New(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(pingerFunc(func(context.Context) error { return nil })),
		cfg,
		departmentHandler.NewHandler(departmentService.NewService(departmentRepo)),
		doctorHandler.NewHandler(doctorService.NewService(doctorRepo, departmentRepo)),
		patientHandler.NewHandler(patientService.NewService(patientRepo)),
		appointmentHandler.NewHandler(appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo)),
		prescriptionHandler.NewHandler(prescriptionService.NewService(prescriptionRepo, patientRepo, doctorRepo)),
	)
	r.Setup()

	return &testApp{engine: r.Engine()}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "body: %s", w.Body.String())
	return body
}

// login registers a user if needed and stores the access token on the app.
func (a *testApp) login(t *testing.T) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/register", map[string]string{
		"username": "tester", "password": "testerpassword",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	w = a.do(t, http.MethodPost, "/login", map[string]string{
		"username": "tester", "password": "testerpassword",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	a.token = decode(t, w)["access_token"].(string)
}

func (a *testApp) seedDepartment(t *testing.T, name string) int64 {
	t.Helper()
	w := a.do(t, http.MethodPost, "/departments", map[string]interface{}{
		"name": name, "floor_number": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func (a *testApp) seedDoctor(t *testing.T, departmentID int64, email string) int64 {
	t.Helper()
	w := a.do(t, http.MethodPost, "/doctors", map[string]interface{}{
		"first_name":    "Meredith",
		"last_name":     "Grey",
		"specialty":     "Cardiologist",
		"phone_number":  "555-0101",
		"email":         email,
		"department_id": departmentID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func (a *testApp) seedPatient(t *testing.T, email string) int64 {
	t.Helper()
	w := a.do(t, http.MethodPost, "/patients", map[string]interface{}{
		"first_name":    "Jane",
		"last_name":     "Doe",
		"date_of_birth": "1990-05-15",
		"gender":        "Female",
		"phone_number":  "555-0102",
		"address":       "12 Main St",
		"email":         email,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return int64(decode(t, w)["id"].(float64))
}

func TestAuthLifecycle(t *testing.T) {
	app := newTestApp(t)

	// Register.
	w := app.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice", "password": "wonderland123",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "password_hash")

	// Duplicate username.
	w = app.do(t, http.MethodPost, "/register", map[string]string{
		"username": "alice", "password": "differentpass",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Short password.
	w = app.do(t, http.MethodPost, "/register", map[string]string{
		"username": "bob", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Wrong password.
	w = app.do(t, http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode(t, w), "error")

	// Login.
	w = app.do(t, http.MethodPost, "/login", map[string]string{
		"username": "alice", "password": "wonderland123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode(t, w)
	access := tokens["access_token"].(string)
	refresh := tokens["refresh_token"].(string)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	// Protected route without a token.
	w = app.do(t, http.MethodGet, "/patients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// With the token.
	app.token = access
	w = app.do(t, http.MethodGet, "/patients", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Refresh returns a fresh access token.
	app.token = refresh
	w = app.do(t, http.MethodPost, "/refresh", nil)
	require.Equal(t, http.StatusOK, w.Code)
	newAccess := decode(t, w)["access_token"].(string)
	require.NotEmpty(t, newAccess)

	// An access token cannot be used to refresh.
	app.token = access
	w = app.do(t, http.MethodPost, "/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Logout revokes the presented access token.
	w = app.do(t, http.MethodPost, "/logout", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "successfully logged out", decode(t, w)["message"])

	w = app.do(t, http.MethodGet, "/patients", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The refreshed token was not revoked.
	app.token = newAccess
	w = app.do(t, http.MethodGet, "/patients", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEntityRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	deptID := app.seedDepartment(t, "Cardiology")
	doctorID := app.seedDoctor(t, deptID, "grey@example.com")
	patientID := app.seedPatient(t, "jane.doe@example.com")

	// Stored values come back verbatim.
	w := app.do(t, http.MethodGet, fmt.Sprintf("/patients/%d", patientID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	patient := decode(t, w)
	assert.Equal(t, "1990-05-15", patient["date_of_birth"])
	assert.Equal(t, "Female", patient["gender"])
	assert.Equal(t, "Jane", patient["first_name"])

	// Appointment referencing both.
	w = app.do(t, http.MethodPost, "/appointments", map[string]interface{}{
		"patient_id":           patientID,
		"doctor_id":            doctorID,
		"appointment_datetime": "2025-06-01T09:30:00",
		"reason_for_visit":     "annual checkup",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	appt := decode(t, w)
	assert.Equal(t, "2025-06-01T09:30:00", appt["appointment_datetime"])

	// Child lookups.
	w = app.do(t, http.MethodGet, fmt.Sprintf("/departments/%d/doctors", deptID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/patients/%d/appointments", patientID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	w = app.do(t, http.MethodGet, fmt.Sprintf("/doctors/%d/appointments", doctorID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)

	// Child lookup on a missing parent.
	w = app.do(t, http.MethodGet, "/departments/9999/doctors", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPatchUpdatesOnlyNamedFields(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	patientID := app.seedPatient(t, "jane.doe@example.com")

	w := app.do(t, http.MethodPut, fmt.Sprintf("/patients/%d", patientID), map[string]interface{}{
		"phone_number": "555-9999",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	patient := decode(t, w)
	assert.Equal(t, "555-9999", patient["phone_number"])
	assert.Equal(t, "Jane", patient["first_name"])
	assert.Equal(t, "1990-05-15", patient["date_of_birth"])
	assert.Equal(t, "Female", patient["gender"])
	assert.Equal(t, "jane.doe@example.com", patient["email"])
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	deptID := app.seedDepartment(t, "Pediatrics")

	tests := []struct {
		name string
		path string
		body map[string]interface{}
	}{
		{
			name: "missing required field",
			path: "/departments",
			body: map[string]interface{}{"floor_number": 1},
		},
		{
			name: "unknown field",
			path: "/departments",
			body: map[string]interface{}{"name": "Surgery", "wing": "east"},
		},
		{
			name: "invalid gender",
			path: "/patients",
			body: map[string]interface{}{
				"first_name": "Sam", "last_name": "Low",
				"date_of_birth": "1990-05-15", "gender": "female",
				"email": "sam@example.com",
			},
		},
		{
			name: "invalid date format",
			path: "/patients",
			body: map[string]interface{}{
				"first_name": "Sam", "last_name": "Low",
				"date_of_birth": "15/05/1990", "gender": "Male",
				"email": "sam@example.com",
			},
		},
		{
			name: "invalid email",
			path: "/doctors",
			body: map[string]interface{}{
				"first_name": "No", "last_name": "Mail",
				"specialty": "Surgeon", "email": "not-an-email",
				"department_id": deptID,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
			assert.Contains(t, decode(t, w), "error")
		})
	}
}

func TestInvalidIDParam(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.do(t, http.MethodGet, "/patients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateWithUnknownReference(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	deptID := app.seedDepartment(t, "Neurology")
	doctorID := app.seedDoctor(t, deptID, "who@example.com")

	// Appointment pointing at a patient that does not exist.
	w := app.do(t, http.MethodPost, "/appointments", map[string]interface{}{
		"patient_id":           int64(9999),
		"doctor_id":            doctorID,
		"appointment_datetime": "2025-06-01T09:30:00",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "patient not found", decode(t, w)["error"])

	// Doctor pointing at a department that does not exist.
	w = app.do(t, http.MethodPost, "/doctors", map[string]interface{}{
		"first_name": "New", "last_name": "Hire",
		"specialty": "Surgeon", "email": "hire@example.com",
		"department_id": int64(9999),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "department not found", decode(t, w)["error"])
}

func TestDuplicateEmailConflicts(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.seedPatient(t, "same@example.com")

	w := app.do(t, http.MethodPost, "/patients", map[string]interface{}{
		"first_name":    "Other",
		"last_name":     "Person",
		"date_of_birth": "1980-01-01",
		"gender":        "Male",
		"email":         "same@example.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteRestrictedByReferences(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	deptID := app.seedDepartment(t, "Oncology")
	doctorID := app.seedDoctor(t, deptID, "onco@example.com")
	patientID := app.seedPatient(t, "pat@example.com")

	w := app.do(t, http.MethodPost, "/appointments", map[string]interface{}{
		"patient_id":           patientID,
		"doctor_id":            doctorID,
		"appointment_datetime": "2025-06-01T09:30:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	apptID := int64(decode(t, w)["id"].(float64))

	// Referenced rows refuse to go.
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/departments/%d", deptID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/doctors/%d", doctorID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Removing the appointment unblocks the chain.
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/appointments/%d", apptID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/doctors/%d", doctorID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = app.do(t, http.MethodDelete, fmt.Sprintf("/departments/%d", deptID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteThenGet(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	patientID := app.seedPatient(t, "gone@example.com")

	w := app.do(t, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = app.do(t, http.MethodGet, fmt.Sprintf("/patients/%d", patientID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.do(t, http.MethodDelete, fmt.Sprintf("/patients/%d", patientID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPrescriptionDateOrdering(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	deptID := app.seedDepartment(t, "Pharmacy")
	doctorID := app.seedDoctor(t, deptID, "rx@example.com")
	patientID := app.seedPatient(t, "rxpat@example.com")

	w := app.do(t, http.MethodPost, "/prescriptions", map[string]interface{}{
		"patient_id":      patientID,
		"doctor_id":       doctorID,
		"medication_name": "Ibuprofen",
		"dosage":          "200mg",
		"frequency":       "as needed",
		"start_date":      "2025-02-01",
		"end_date":        "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(t, http.MethodPost, "/prescriptions", map[string]interface{}{
		"patient_id":      patientID,
		"doctor_id":       doctorID,
		"medication_name": "Ibuprofen",
		"dosage":          "200mg",
		"frequency":       "as needed",
		"start_date":      "2025-01-01",
		"end_date":        "2025-02-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	w = app.do(t, http.MethodGet, fmt.Sprintf("/patients/%d/prescriptions", patientID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeList(t, w), 1)
}

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Metrics are exposed without authentication.
	app.do(t, http.MethodGet, "/health/live", nil)
	w = app.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hospital_api_requests_total")
}

func TestHealthReadyReportsDatastoreFailure(t *testing.T) {
	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)

	authSvc := authService.NewService(userRepo,
		auth.NewManager("test-secret", time.Hour, 24*time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
		cache.New(cache.NoExpiration, time.Minute))

	r := router.New(
		middleware.NewAuthMiddleware(authSvc),
		authHandler.NewHandler(authSvc),
		healthHandler.NewHandler(pingerFunc(func(context.Context) error {
			return context.DeadlineExceeded
		})),
		router.Config{RequestTimeout: 5 * time.Second},
	)
	r.Setup()

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRateLimiter(t *testing.T) {
	app := newTestAppWithConfig(t, router.Config{
		RequestTimeout: 5 * time.Second,
		RateLimitRPS:   1,
		RateLimitBurst: 2,
	})

	limited := false
	for i := 0; i < 10; i++ {
		w := app.do(t, http.MethodGet, "/health/live", nil)
		if w.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected at least one 429 from the rate limiter")
}
