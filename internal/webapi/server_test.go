package webapi_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/clarionvoice/clarion/internal/catalog"
	"github.com/clarionvoice/clarion/internal/history"
	"github.com/clarionvoice/clarion/internal/webapi"
)

func newTestServer(t *testing.T) (*webapi.Server, *history.FileStore) {
	t.Helper()
	store := history.NewFileStore(filepath.Join(t.TempDir(), "history.jsonl"), 10)
	srv, err := webapi.New(webapi.Config{
		Catalog: catalog.Builtin(),
		Store:   store,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, store
}

func scoreBody(sentenceIDs ...int) string {
	var parts []string
	for _, id := range sentenceIDs {
		parts = append(parts, fmt.Sprintf(`{
			"sentenceId": %d,
			"features": {
				"duration": 2.0,
				"rms": 0.1,
				"peak": 0.5,
				"zero_crossing_rate": 0.05,
				"spectral_centroid_hz": 900,
				"formants_hz": [700, 1200, 2500],
				"speech_rate": 3.5,
				"clarity": 85
			}
		}`, id))
	}
	return `{"utterances":[` + strings.Join(parts, ",") + `]}`
}

func TestScoreEndpoint(t *testing.T) {
	t.Parallel()
	srv, store := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest("POST", "/v1/score", strings.NewReader(scoreBody(1, 2, 3)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID     string `json:"id"`
		Result struct {
			OverallScore float64 `json:"overallScore"`
			Level        struct {
				Tier int `json:"tier"`
			} `json:"level"`
		} `json:"result"`
		Utterances []struct {
			SentenceID int     `json:"sentenceId"`
			Score      float64 `json:"score"`
		} `json:"utterances"`
		Feedback struct {
			Motivation string `json:"motivation"`
		} `json:"feedback"`
		Progress *json.RawMessage `json:"progress"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("response id is empty")
	}
	if len(resp.Utterances) != 3 {
		t.Errorf("utterances = %d, want 3", len(resp.Utterances))
	}
	if resp.Result.OverallScore < 0 || resp.Result.OverallScore > 100 {
		t.Errorf("overallScore = %v, out of range", resp.Result.OverallScore)
	}
	if resp.Result.Level.Tier < 1 || resp.Result.Level.Tier > 10 {
		t.Errorf("level tier = %d, out of range", resp.Result.Level.Tier)
	}
	if resp.Feedback.Motivation == "" {
		t.Error("feedback motivation is empty")
	}
	if resp.Progress != nil {
		t.Error("first session should have no progress")
	}

	// The session must have been persisted.
	records, err := store.Recent(req.Context(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("persisted records = %d, want 1", len(records))
	}
}

func TestScoreEndpointSecondSessionHasProgress(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/v1/score", strings.NewReader(scoreBody(1)))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, body %s", i, rec.Code, rec.Body.String())
		}
		var resp struct {
			Progress *struct {
				Overall int `json:"overall"`
			} `json:"progress"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if i == 0 && resp.Progress != nil {
			t.Error("first session has progress")
		}
		if i == 1 {
			if resp.Progress == nil {
				t.Fatal("second session has no progress")
			}
			if resp.Progress.Overall != 0 {
				t.Errorf("progress overall = %d, want 0 for identical input", resp.Progress.Overall)
			}
		}
	}
}

func TestScoreEndpointRejectsBadInput(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	cases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", "{", http.StatusBadRequest},
		{"unknown field", `{"sessions":[]}`, http.StatusBadRequest},
		{"empty utterances", `{"utterances":[]}`, http.StatusBadRequest},
		{"unknown sentence", scoreBody(999), http.StatusUnprocessableEntity},
		{
			"zero duration",
			`{"utterances":[{"sentenceId":1,"features":{"duration":0,"clarity":80}}]}`,
			http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("POST", "/v1/score", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error body is empty")
			}
		})
	}
}

func TestHistoryEndpoint(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest("GET", "/v1/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Records []json.RawMessage `json:"records"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Records == nil {
		t.Error("records is null, want empty array")
	}
	if len(resp.Records) != 0 {
		t.Errorf("records = %d, want 0", len(resp.Records))
	}

	// Score once, then the record shows up.
	post := httptest.NewRequest("POST", "/v1/score", strings.NewReader(scoreBody(1)))
	postRec := httptest.NewRecorder()
	handler.ServeHTTP(postRec, post)
	if postRec.Code != http.StatusOK {
		t.Fatalf("score status = %d", postRec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/history?limit=5", nil))
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Records) != 1 {
		t.Errorf("records = %d, want 1", len(resp.Records))
	}
}

func TestHistoryEndpointRejectsBadLimit(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	for _, limit := range []string{"0", "-3", "ten"} {
		req := httptest.NewRequest("GET", "/v1/history?limit="+limit, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", limit, rec.Code)
		}
	}
}

func TestCatalogEndpoint(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest("GET", "/v1/catalog", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Rounds []struct {
			Name      string            `json:"name"`
			Sentences []json.RawMessage `json:"sentences"`
		} `json:"rounds"`
		Levels []json.RawMessage `json:"levels"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Rounds) != 3 {
		t.Errorf("rounds = %d, want 3", len(resp.Rounds))
	}
	if len(resp.Levels) != 10 {
		t.Errorf("levels = %d, want 10", len(resp.Levels))
	}
	total := 0
	for _, r := range resp.Rounds {
		total += len(r.Sentences)
	}
	if total != 20 {
		t.Errorf("total sentences = %d, want 20", total)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", path, rec.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("/metrics: status = %d, want 200", rec.Code)
	}
}
