package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"physique-coach/internal/service"
	"physique-coach/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(t *testing.T) (*gin.Engine, *service.CoachService) {
	t.Helper()

	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewCoachService(db, logger)

	h := NewAthleteHandler(svc, logger)
	h.now = func() time.Time { return time.Date(2025, 4, 1, 9, 30, 0, 0, time.UTC) }

	router := gin.New()
	SetupRoutes(router, h)
	return router, svc
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

var profileBody = map[string]any{
	"name":               "Test Athlete",
	"birth_date":         "1995-03-10",
	"sex":                "male",
	"height_cm":          178,
	"training_age_years": 4,
	"category":           "classic_physique",
	"competition_date":   "2025-06-01",
}

func TestPing(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/ping", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestPutAndGetProfile(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(t, router, http.MethodPut, "/api/v1/athletes/a1", profileBody)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body %s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/athletes/a1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, body %s", w.Code, w.Body.String())
	}

	var got service.ProfileDoc
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "a1" || got.BirthDate != "1995-03-10" || got.CompetitionDate != "2025-06-01" {
		t.Errorf("profile = %+v", got)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/athletes/nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestPutProfile_Invalid(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"malformed json", "not an object", http.StatusBadRequest},
		{"missing name", map[string]any{"birth_date": "1995-03-10", "sex": "male", "height_cm": 178, "category": "bikini"}, http.StatusUnprocessableEntity},
		{"bad date", map[string]any{"name": "x", "birth_date": "10/03/1995"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodPut, "/api/v1/athletes/a1", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestMeasurementLifecycle(t *testing.T) {
	router, _ := setupRouter(t)

	if w := doRequest(t, router, http.MethodPut, "/api/v1/athletes/a1", profileBody); w.Code != http.StatusOK {
		t.Fatalf("PUT profile status = %d", w.Code)
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/athletes/a1/measurements", map[string]any{
		"date":           "2025-03-30",
		"weight":         80,
		"body_fat_scale": 12,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, body %s", w.Code, w.Body.String())
	}
	var created service.MeasurementDoc
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.FatMass == nil || math.Abs(*created.FatMass-9.6) > 1e-9 {
		t.Errorf("FatMass = %v, want 9.6", created.FatMass)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/athletes/a1/measurements", nil)
	var list []service.MeasurementDoc
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].Date != "2025-03-30" {
		t.Fatalf("list = %+v, want one record on 2025-03-30", list)
	}

	w = doRequest(t, router, http.MethodDelete, "/api/v1/athletes/a1/measurements/2025-03-30", nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", w.Code)
	}
	w = doRequest(t, router, http.MethodDelete, "/api/v1/athletes/a1/measurements/2025-03-30", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", w.Code)
	}
	w = doRequest(t, router, http.MethodDelete, "/api/v1/athletes/a1/measurements/yesterday", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date DELETE status = %d, want 400", w.Code)
	}
}

func TestLogMeasurement_InvalidInput(t *testing.T) {
	router, _ := setupRouter(t)

	if w := doRequest(t, router, http.MethodPut, "/api/v1/athletes/a1", profileBody); w.Code != http.StatusOK {
		t.Fatalf("PUT profile status = %d", w.Code)
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/athletes/a1/measurements", map[string]any{
		"date":                "2025-03-30",
		"intracellular_water": 28,
		"extracellular_water": 0,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422 (body %s)", w.Code, w.Body.String())
	}
}

func TestGetReport(t *testing.T) {
	router, svc := setupRouter(t)
	ctx := context.Background()

	if w := doRequest(t, router, http.MethodPut, "/api/v1/athletes/a1", profileBody); w.Code != http.StatusOK {
		t.Fatalf("PUT profile status = %d", w.Code)
	}
	for i := 0; i < 10; i++ {
		weight := 80 - 0.1*float64(i)
		bf := 12.0
		m := &store.Measurement{AthleteID: "a1", Date: time.Date(2025, 3, 22+i, 0, 0, 0, 0, time.UTC), Weight: &weight, BodyFatScale: &bf}
		if err := svc.LogMeasurement(ctx, m); err != nil {
			t.Fatalf("LogMeasurement failed: %v", err)
		}
	}

	w := doRequest(t, router, http.MethodGet, "/api/v1/athletes/a1/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got struct {
		Date  string `json:"date"`
		Phase struct {
			Phase string `json:"phase"`
		} `json:"phase"`
		Nutrition *struct {
			Calories float64 `json:"calories"`
		} `json:"nutrition"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Date != "2025-04-01" {
		t.Errorf("Date = %q, want today 2025-04-01", got.Date)
	}
	if got.Phase.Phase != "cutting" {
		t.Errorf("Phase = %q, want cutting", got.Phase.Phase)
	}
	if got.Nutrition == nil || got.Nutrition.Calories <= 0 {
		t.Errorf("Nutrition = %+v, want a plan", got.Nutrition)
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/athletes/a1/report?date=2025-13-01", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", w.Code)
	}
	w = doRequest(t, router, http.MethodGet, "/api/v1/athletes/nobody/report", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown athlete status = %d, want 404", w.Code)
	}
}

func TestNewRouter_CORS(t *testing.T) {
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	gin.DefaultWriter = io.Discard
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRouter(service.NewCoachService(db, logger), []string{"https://coach.example"}, logger)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/athletes/a1", nil)
	req.Header.Set("Origin", "https://coach.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://coach.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestGetReferences(t *testing.T) {
	router, _ := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/references?module=recovery", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var refs []struct {
		Module string `json:"module"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &refs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(refs) == 0 {
		t.Fatal("expected recovery references")
	}
	for _, r := range refs {
		if r.Module != "recovery" {
			t.Errorf("got module %q", r.Module)
		}
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/references?module=astrology", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown module status = %d, want 422", w.Code)
	}
}
