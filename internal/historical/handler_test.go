package historical_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"screener-backend/internal/bootstrap"
	"screener-backend/internal/historical"
	"screener-backend/internal/shared/config"
	"screener-backend/internal/shared/server/respond"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMProvider:     "none",
		LLMModel:        "gpt-4o",
		MaxUploadMB:     10,
		TopFraction:     15.0,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return app
}

func do(t *testing.T, app *bootstrap.App, method, path, body string, out any) int {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec.Code
}

func TestHistoricalLifecycle(t *testing.T) {
	app := newTestApp(t)

	var created historical.Hire
	code := do(t, app, http.MethodPost, "/api/v1/historical",
		`{"name": "Sam", "position": "analyst", "outcome": "positive", "tenure_months": 18, "performance_rating": 4.2}`,
		&created)
	if code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", code)
	}
	if created.ID != 1 || created.Outcome != historical.OutcomePositive {
		t.Fatalf("created = %+v", created)
	}

	code = do(t, app, http.MethodPost, "/api/v1/historical",
		`{"outcome": "negative"}`, nil)
	if code != http.StatusCreated {
		t.Fatalf("second create status = %d", code)
	}

	var all []historical.Hire
	if code := do(t, app, http.MethodGet, "/api/v1/historical", "", &all); code != http.StatusOK {
		t.Fatalf("list status = %d", code)
	}
	if len(all) != 2 {
		t.Fatalf("list len = %d, want 2", len(all))
	}

	var positive []historical.Hire
	if code := do(t, app, http.MethodGet, "/api/v1/historical?outcome=positive", "", &positive); code != http.StatusOK {
		t.Fatalf("filtered list status = %d", code)
	}
	if len(positive) != 1 || positive[0].Name != "Sam" {
		t.Fatalf("filtered = %+v", positive)
	}

	var stats historical.Stats
	if code := do(t, app, http.MethodGet, "/api/v1/historical/stats", "", &stats); code != http.StatusOK {
		t.Fatalf("stats status = %d", code)
	}
	if stats.TotalHires != 2 {
		t.Fatalf("total = %d", stats.TotalHires)
	}
	if stats.OutcomeBreakdown[historical.OutcomePositive] != 1 {
		t.Fatalf("breakdown = %v", stats.OutcomeBreakdown)
	}
	if stats.AverageTenureMonths == nil || *stats.AverageTenureMonths != 18 {
		t.Fatalf("avg tenure = %v", stats.AverageTenureMonths)
	}

	if code := do(t, app, http.MethodDelete, "/api/v1/historical/1", "", nil); code != http.StatusOK {
		t.Fatalf("delete status = %d", code)
	}
	var errResp respond.ErrorResponse
	if code := do(t, app, http.MethodDelete, "/api/v1/historical/1", "", &errResp); code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", code)
	}
}

func TestHistoricalRejectsUnknownOutcome(t *testing.T) {
	app := newTestApp(t)

	var resp respond.ErrorResponse
	code := do(t, app, http.MethodPost, "/api/v1/historical", `{"outcome": "meh"}`, &resp)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if resp.Error.Code != "validation_error" {
		t.Fatalf("code = %q", resp.Error.Code)
	}

	code = do(t, app, http.MethodGet, "/api/v1/historical?outcome=meh", "", &resp)
	if code != http.StatusBadRequest {
		t.Fatalf("filter status = %d, want 400", code)
	}
}
