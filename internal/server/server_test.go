package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/erdlayout/pkg/buildinfo"
	"github.com/matzehuels/erdlayout/pkg/cache"
	"github.com/matzehuels/erdlayout/pkg/errors"
	"github.com/matzehuels/erdlayout/pkg/layout"
	"github.com/matzehuels/erdlayout/pkg/observability"
	"github.com/matzehuels/erdlayout/pkg/pipeline"
)

const shopBody = `{
  "schema": {
    "tables": [
      {"name": "users", "columns": [{"name": "id", "type": "integer"}, {"name": "email", "type": "text"}]},
      {"name": "orders", "columns": [{"name": "id", "type": "integer"}, {"name": "user_id", "type": "integer"}]},
      {"name": "audit_log", "columns": [{"name": "id", "type": "integer"}]}
    ],
    "relationships": [
      {"from": {"table": "orders", "column": "user_id"}, "to": {"table": "users", "column": "id"}}
    ]
  },
  "bounds": {"width": 1600, "height": 900}
}`

func newTestServer(t *testing.T) (*Server, *layout.Engine) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	engine := layout.New()
	runner := pipeline.NewRunner(engine, fc, nil, logger)
	t.Cleanup(func() { runner.Close() })
	return New(runner, logger), engine
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["version"] != buildinfo.Version {
		t.Errorf("body = %v", body)
	}
	if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID", rec.Header().Get(HeaderRequestID))
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"valid uuid kept", "6f1c1e0a-3b8e-4a53-9d77-2b7c0f3f1a10", true},
		{"garbage replaced", "not-an-id", false},
		{"missing assigned", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.incoming != "" {
				req.Header.Set(HeaderRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(HeaderRequestID)
			if tt.keep && got != tt.incoming {
				t.Errorf("request id = %q, want %q", got, tt.incoming)
			}
			if !tt.keep {
				if got == tt.incoming {
					t.Errorf("request id %q was not replaced", got)
				}
				if _, err := uuid.Parse(got); err != nil {
					t.Errorf("request id %q is not a UUID", got)
				}
			}
		})
	}
}

func TestLayout(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodPost, "/api/layout", shopBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	var res layout.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Tables) != 3 {
		t.Fatalf("tables = %d, want 3", len(res.Tables))
	}
	if res.Statistics == nil || res.Statistics.TotalClusters != 2 || res.Statistics.Overlaps != 0 {
		t.Errorf("statistics = %+v", res.Statistics)
	}
	if res.Bounds == nil || res.Bounds.Width != 1600 || res.Bounds.Height != 900 {
		t.Errorf("bounds = %+v", res.Bounds)
	}

	again := do(t, h, http.MethodPost, "/api/layout", shopBody)
	if got := again.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if !bytes.Equal(rec.Body.Bytes(), again.Body.Bytes()) {
		t.Error("cached response differs from computed response")
	}

	refresh := strings.Replace(shopBody, `"bounds"`, `"refresh": true, "bounds"`, 1)
	if got := do(t, h, http.MethodPost, "/api/layout", refresh).Header().Get("X-Cache"); got != "miss" {
		t.Errorf("refresh X-Cache = %q, want miss", got)
	}
}

func TestLayoutEmptySchema(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv.Handler(), http.MethodPost, "/api/layout", `{"schema": {"tables": [], "relationships": []}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res layout.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res.Tables) != 0 || res.Statistics != nil {
		t.Errorf("result = %+v, want empty", res)
	}
}

func TestLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"malformed json", `{"schema":`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"schema": {"tables": []}, "colour": "red"}`, errors.ErrCodeInvalidInput},
		{"trailing data", `{"schema": {"tables": []}} {}`, errors.ErrCodeInvalidInput},
		{"duplicate table", `{"schema": {"tables": [{"name": "a"}, {"name": "a"}]}}`, errors.ErrCodeInvalidSchema},
		{"empty table name", `{"schema": {"tables": [{"name": ""}]}}`, errors.ErrCodeInvalidSchema},
		{"negative bounds", `{"schema": {"tables": [{"name": "a"}]}, "bounds": {"width": -1, "height": 10}}`, errors.ErrCodeInvalidInput},
		{"bad damping", `{"schema": {"tables": [{"name": "a"}]}, "settings": {"damping_factor": 2}}`, errors.ErrCodeInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/layout", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 (body %s)", rec.Code, rec.Body.String())
			}
			resp := decodeError(t, rec)
			if resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.RequestID == "" || resp.RequestID != rec.Header().Get(HeaderRequestID) {
				t.Errorf("request_id = %q, header %q", resp.RequestID, rec.Header().Get(HeaderRequestID))
			}
			if resp.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

func TestSettings(t *testing.T) {
	srv, engine := newTestServer(t)
	h := srv.Handler()

	rec := do(t, h, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d", rec.Code)
	}
	var got layout.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != layout.DefaultSettings() {
		t.Errorf("GET settings = %+v, want defaults", got)
	}

	rec = do(t, h, http.MethodPatch, "/api/settings", `{"max_iterations": 40, "count_crossings": true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("PATCH status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.MaxIterations != 40 || !got.CountCrossings {
		t.Errorf("PATCH response = %+v", got)
	}
	if engine.Settings() != got {
		t.Errorf("engine settings = %+v, want %+v", engine.Settings(), got)
	}
	if got.RepulsionForce != layout.DefaultSettings().RepulsionForce {
		t.Error("PATCH changed an unspecified field")
	}
}

func TestPatchSettingsRejected(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"out of range", `{"damping_factor": 0}`, errors.ErrCodeInvalidSettings},
		{"negative", `{"min_table_distance": -5}`, errors.ErrCodeInvalidSettings},
		{"unknown key", `{"gravity": 1}`, errors.ErrCodeInvalidInput},
		{"wrong type", `{"max_iterations": "many"}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, engine := newTestServer(t)
			before := engine.Settings()

			rec := do(t, srv.Handler(), http.MethodPatch, "/api/settings", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if resp := decodeError(t, rec); resp.Code != tt.code {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if engine.Settings() != before {
				t.Error("rejected update changed the engine settings")
			}
		})
	}
}

func TestPatchSettingsChangesCacheKey(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	do(t, h, http.MethodPost, "/api/layout", shopBody)
	do(t, h, http.MethodPatch, "/api/settings", `{"cluster_separation": 120}`)

	rec := do(t, h, http.MethodPost, "/api/layout", shopBody)
	if got := rec.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache after settings change = %q, want miss", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidSchema, "dup"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidSettings, "bad"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "gone"), http.StatusNotFound},
		{errors.New(errors.ErrCodeFileNotFound, "gone"), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{errors.New(errors.ErrCodeInternal, "boom"), http.StatusInternalServerError},
		{context.Canceled, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestHTTPHooksUseRoutePattern(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv, _ := newTestServer(t)
	h := srv.Handler()
	do(t, h, http.MethodGet, "/healthz", "")
	do(t, h, http.MethodPost, "/api/layout", `{"schema":`)

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	wantRoutes := []string{"/healthz", "/api/layout"}
	wantStatus := []int{http.StatusOK, http.StatusBadRequest}
	if len(hooks.routes) != len(wantRoutes) {
		t.Fatalf("routes = %v, want %v", hooks.routes, wantRoutes)
	}
	for i := range wantRoutes {
		if hooks.routes[i] != wantRoutes[i] || hooks.status[i] != wantStatus[i] {
			t.Errorf("response %d = %s %d, want %s %d",
				i, hooks.routes[i], hooks.status[i], wantRoutes[i], wantStatus[i])
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	srv, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v, want nil after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
