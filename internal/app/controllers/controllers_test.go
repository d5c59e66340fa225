package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/atharvapawar/bustrack/internal/app/controllers"
	"github.com/atharvapawar/bustrack/internal/app/models"
	"github.com/atharvapawar/bustrack/internal/app/repositories/mock"
	"github.com/atharvapawar/bustrack/internal/app/routes"
	"github.com/atharvapawar/bustrack/internal/app/services"
	"github.com/atharvapawar/bustrack/internal/middleware"
	"github.com/atharvapawar/bustrack/internal/pkg/auth"
)

const testTrackerKey = "tracker-test-key"

type fixture struct {
	router      *gin.Engine
	jwtService  *auth.JWTService
	studentRepo *mock.StudentRepo
	busRepo     *mock.BusRepo
	driverRepo  *mock.DriverRepo
}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	studentRepo := mock.NewStudentRepo()
	busRepo := mock.NewBusRepo()
	driverRepo := mock.NewDriverRepo()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "testsecret",
		TokenExp:    24 * time.Hour,
		TokenIssuer: "bustrack.test",
	})

	log := zerolog.Nop()
	resolver := services.NewAssociationResolver(busRepo, driverRepo, log)
	authService := services.NewAuthService(studentRepo, resolver, jwtService, log)
	busService := services.NewBusService(studentRepo, busRepo, resolver, nil, log)

	router := gin.New()
	routes.SetupRouter(
		router,
		controllers.NewAuthController(authService, log),
		controllers.NewBusController(busService, log),
		middleware.NewAuthMiddleware(jwtService),
		testTrackerKey,
	)

	return &fixture{
		router:      router,
		jwtService:  jwtService,
		studentRepo: studentRepo,
		busRepo:     busRepo,
		driverRepo:  driverRepo,
	}
}

// seedWorld populates the fixture with one driver, the standard three buses
// and one student riding BUS-001.
func (f *fixture) seedWorld(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	if err := f.driverRepo.Create(ctx, &models.Driver{
		DriverNumber: "DRV-001",
		Name:         "Ramesh Kulkarni",
		Contact:      "+91-9000000001",
	}); err != nil {
		t.Fatalf("seed driver: %v", err)
	}

	buses := []*models.Bus{
		{BusNumber: "BUS-001", NumberPlate: "MH12AB1234", DriverNumber: strPtr("DRV-001")},
		{BusNumber: "BUS-002", NumberPlate: "MH12CD5678"},
	}
	for _, b := range buses {
		if err := f.busRepo.Create(ctx, b); err != nil {
			t.Fatalf("seed bus: %v", err)
		}
	}

	hash, err := auth.HashPassword("PRN001")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := f.studentRepo.Create(ctx, &models.Student{
		PRN:       "PRN001",
		Name:      "Atharva Pawar",
		Gender:    models.GenderMale,
		Email:     "atharva@campus.edu",
		Password:  hash,
		BusNumber: strPtr("BUS-001"),
		BusStop:   strPtr("Pune Station"),
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) login(t *testing.T, email, prn string) string {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": email, "prn": prn}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("login response missing token")
	}
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	if resp.Message != "Bus Tracking API is running!" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantError  string
	}{
		{
			name:       "success",
			body:       gin.H{"email": "atharva@campus.edu", "prn": "PRN001"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown email",
			body:       gin.H{"email": "nobody@campus.edu", "prn": "PRN001"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid email or PRN",
		},
		{
			name:       "wrong prn",
			body:       gin.H{"email": "atharva@campus.edu", "prn": "PRN999"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid email or PRN",
		},
		{
			name:       "missing fields",
			body:       gin.H{"email": "atharva@campus.edu"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Email and PRN are required",
		},
		{
			name:       "malformed json",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
			wantError:  "Email and PRN are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/auth/login", tt.body, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" {
				var resp struct {
					Error string `json:"error"`
				}
				decode(t, w, &resp)
				if resp.Error != tt.wantError {
					t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
				}
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	w := f.do(t, http.MethodPost, "/api/auth/login", gin.H{"email": "atharva@campus.edu", "prn": "PRN001"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	decode(t, w, &resp)
	if resp["message"] != "Login successful" {
		t.Errorf("message = %v", resp["message"])
	}

	student, ok := resp["student"].(map[string]any)
	if !ok {
		t.Fatalf("student field missing: %v", resp)
	}
	if _, leaked := student["password"]; leaked {
		t.Error("credential hash leaked into login response")
	}
	bus, ok := student["bus"].(map[string]any)
	if !ok {
		t.Fatalf("bus summary missing: %v", student)
	}
	if bus["busNumber"] != "BUS-001" {
		t.Errorf("busNumber = %v", bus["busNumber"])
	}
	driver, ok := student["driver"].(map[string]any)
	if !ok {
		t.Fatalf("driver summary missing: %v", student)
	}
	if driver["name"] != "Ramesh Kulkarni" {
		t.Errorf("driver name = %v", driver["name"])
	}
	if student["busStop"] != "Pune Station" {
		t.Errorf("busStop = %v", student["busStop"])
	}
}

func TestBusRoutesRequireToken(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	paths := []string{"/api/bus/details", "/api/bus/location", "/api/bus/eta"}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := f.do(t, http.MethodGet, path, nil, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("no header: status = %d", w.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			decode(t, w, &resp)
			if resp.Error != "Access token required" {
				t.Errorf("error = %q", resp.Error)
			}

			w = f.do(t, http.MethodGet, path, nil, bearer("garbage.token.here"))
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("bad token: status = %d", w.Code)
			}
			decode(t, w, &resp)
			if resp.Error != "Invalid or expired token" {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	expired := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "testsecret",
		TokenExp:    -time.Minute,
		TokenIssuer: "bustrack.test",
	})
	token, _, err := expired.GenerateToken("PRN001")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := f.do(t, http.MethodGet, "/api/bus/details", nil, bearer(token))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	if resp.Error != "Invalid or expired token" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestTokenForDeletedStudent(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	token, _, err := f.jwtService.GenerateToken("PRN-DELETED")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	w := f.do(t, http.MethodGet, "/api/bus/details", nil, bearer(token))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, w, &resp)
	if resp.Error != "Invalid or expired token" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestGetBusDetailsEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)
	token := f.login(t, "atharva@campus.edu", "PRN001")

	w := f.do(t, http.MethodGet, "/api/bus/details", nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	decode(t, w, &resp)
	if resp["busNumber"] != "BUS-001" || resp["numberPlate"] != "MH12AB1234" {
		t.Errorf("body = %v", resp)
	}
	if resp["driverName"] != "Ramesh Kulkarni" {
		t.Errorf("driverName = %v", resp["driverName"])
	}
}

func TestNoBusAssignedEndpoints(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)

	hash, err := auth.HashPassword("PRN004")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := f.studentRepo.Create(context.Background(), &models.Student{
		PRN:      "PRN004",
		Name:     "Unassigned Student",
		Gender:   models.GenderOther,
		Email:    "unassigned@campus.edu",
		Password: hash,
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	token := f.login(t, "unassigned@campus.edu", "PRN004")

	for _, path := range []string{"/api/bus/details", "/api/bus/location", "/api/bus/eta"} {
		t.Run(path, func(t *testing.T) {
			w := f.do(t, http.MethodGet, path, nil, bearer(token))
			if w.Code != http.StatusNotFound {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			var resp struct {
				Error string `json:"error"`
			}
			decode(t, w, &resp)
			if resp.Error != "No bus assigned to this student" {
				t.Errorf("error = %q", resp.Error)
			}
		})
	}
}

func TestUpdateLocationEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)
	trackerHeaders := map[string]string{"X-Tracker-Key": testTrackerKey}

	tests := []struct {
		name       string
		body       any
		headers    map[string]string
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing tracker key",
			body:       gin.H{"busNumber": "BUS-002", "latitude": 18.52, "longitude": 73.85},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid tracker key",
		},
		{
			name:       "wrong tracker key",
			body:       gin.H{"busNumber": "BUS-002", "latitude": 18.52, "longitude": 73.85},
			headers:    map[string]string{"X-Tracker-Key": "wrong"},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid tracker key",
		},
		{
			name:       "missing coordinates",
			body:       gin.H{"busNumber": "BUS-002"},
			headers:    trackerHeaders,
			wantStatus: http.StatusBadRequest,
			wantError:  "Bus number, latitude, and longitude are required",
		},
		{
			name:       "unknown bus",
			body:       gin.H{"busNumber": "BUS-404", "latitude": 18.52, "longitude": 73.85},
			headers:    trackerHeaders,
			wantStatus: http.StatusNotFound,
			wantError:  "Bus not found",
		},
		{
			name:       "success",
			body:       gin.H{"busNumber": "BUS-002", "latitude": 18.52, "longitude": 73.85},
			headers:    trackerHeaders,
			wantStatus: http.StatusOK,
		},
		{
			name:       "zero coordinates accepted",
			body:       gin.H{"busNumber": "BUS-002", "latitude": 0.0, "longitude": 0.0},
			headers:    trackerHeaders,
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodPost, "/api/bus/update-location", tt.body, tt.headers)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" {
				var resp struct {
					Error string `json:"error"`
				}
				decode(t, w, &resp)
				if resp.Error != tt.wantError {
					t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
				}
			}
		})
	}
}

func TestCreateBusEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)
	trackerHeaders := map[string]string{"X-Tracker-Key": testTrackerKey}

	w := f.do(t, http.MethodPost, "/api/bus", gin.H{"busNumber": "BUS-010", "numberPlate": "MH12ZZ9999"}, trackerHeaders)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPost, "/api/bus", gin.H{"busNumber": "BUS-010", "numberPlate": "MH12YY8888"}, trackerHeaders)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPost, "/api/bus", gin.H{"busNumber": "BUS-011", "numberPlate": "MH12XX7777"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no key: status = %d", w.Code)
	}
}

func TestChangePasswordEndpoint(t *testing.T) {
	f := newFixture(t)
	f.seedWorld(t)
	token := f.login(t, "atharva@campus.edu", "PRN001")

	w := f.do(t, http.MethodPost, "/api/auth/change-password",
		gin.H{"currentPassword": "wrong", "newPassword": "newsecret"}, bearer(token))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong current: status = %d, body = %s", w.Code, w.Body.String())
	}

	w = f.do(t, http.MethodPost, "/api/auth/change-password",
		gin.H{"currentPassword": "PRN001", "newPassword": "newsecret"}, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Message string `json:"message"`
	}
	decode(t, w, &resp)
	if resp.Message != "Password updated successfully" {
		t.Errorf("message = %q", resp.Message)
	}

	f.login(t, "atharva@campus.edu", "newsecret")
}

// A full day in the life of a tracked bus: the student logs in while the bus
// is parked, the tracker device comes online and reports a position, and the
// student sees live coordinates.
func TestBusComesOnline(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.busRepo.Create(ctx, &models.Bus{
		BusNumber:   "BUS-001",
		NumberPlate: "MH12AB1234",
	}); err != nil {
		t.Fatalf("seed bus: %v", err)
	}
	hash, err := auth.HashPassword("PRN001")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := f.studentRepo.Create(ctx, &models.Student{
		PRN:       "PRN001",
		Name:      "Atharva Pawar",
		Gender:    models.GenderMale,
		Email:     "atharva@campus.edu",
		Password:  hash,
		BusNumber: strPtr("BUS-001"),
		BusStop:   strPtr("Pune Station"),
	}); err != nil {
		t.Fatalf("seed student: %v", err)
	}

	token := f.login(t, "atharva@campus.edu", "PRN001")

	// Bus is parked: location reads back inactive
	w := f.do(t, http.MethodGet, "/api/bus/location", nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("location status = %d, body = %s", w.Code, w.Body.String())
	}
	var loc map[string]any
	decode(t, w, &loc)
	if loc["isActive"] != false {
		t.Fatalf("expected inactive bus, got %v", loc)
	}
	if loc["message"] != "Your Bus isn't active right now" {
		t.Errorf("message = %v", loc["message"])
	}

	// Tracker device reports a position
	w = f.do(t, http.MethodPost, "/api/bus/update-location",
		gin.H{"busNumber": "BUS-001", "latitude": 18.52, "longitude": 73.85},
		map[string]string{"X-Tracker-Key": testTrackerKey})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", w.Code, w.Body.String())
	}

	// Student now sees live coordinates
	w = f.do(t, http.MethodGet, "/api/bus/location", nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("location status = %d, body = %s", w.Code, w.Body.String())
	}
	loc = map[string]any{}
	decode(t, w, &loc)
	if loc["isActive"] != true || loc["hasLocation"] != true {
		t.Fatalf("expected live location, got %v", loc)
	}
	if loc["latitude"] != 18.52 || loc["longitude"] != 73.85 {
		t.Errorf("coordinates = %v, %v", loc["latitude"], loc["longitude"])
	}
	if _, ok := loc["lastUpdate"]; !ok {
		t.Error("lastUpdate missing")
	}

	// ETA is now available and within the advertised range
	w = f.do(t, http.MethodGet, "/api/bus/eta", nil, bearer(token))
	if w.Code != http.StatusOK {
		t.Fatalf("eta status = %d, body = %s", w.Code, w.Body.String())
	}
	var eta struct {
		IsActive bool   `json:"isActive"`
		ETA      *int   `json:"eta"`
		BusStop  string `json:"busStop"`
	}
	decode(t, w, &eta)
	if !eta.IsActive || eta.ETA == nil {
		t.Fatalf("eta response = %+v", eta)
	}
	if *eta.ETA < 5 || *eta.ETA > 35 {
		t.Errorf("eta = %d outside [5, 35]", *eta.ETA)
	}
	if eta.BusStop != "Pune Station" {
		t.Errorf("busStop = %q", eta.BusStop)
	}
}
