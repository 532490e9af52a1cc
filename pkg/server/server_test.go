package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/zen-systems/tiergate/pkg/adapter"
	"github.com/zen-systems/tiergate/pkg/artifact"
	"github.com/zen-systems/tiergate/pkg/catalog"
	"github.com/zen-systems/tiergate/pkg/config"
	"github.com/zen-systems/tiergate/pkg/gateway"
	"github.com/zen-systems/tiergate/pkg/router"
)

type echoAdapter struct {
	name   string
	models []string
}

func (e *echoAdapter) Name() string     { return e.name }
func (e *echoAdapter) Models() []string { return e.models }

func (e *echoAdapter) Generate(_ context.Context, model, prompt string) (*artifact.Artifact, error) {
	return artifact.New("echo: "+prompt, e.name, model, prompt), nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "routing.yaml")
	store := config.NewStoreWithConfig(config.DefaultConfig(), path)
	adapters := map[string]adapter.Adapter{
		"google":   &echoAdapter{name: "google", models: []string{"gemini-2.0-flash", "gemini-2.0-pro"}},
		"deepseek": &echoAdapter{name: "deepseek", models: []string{"deepseek-chat", "deepseek-reasoner"}},
	}
	cat := catalog.FromAdapters(adapters)
	r := router.New(store, cat)
	gw := gateway.New(adapters, r, cat)
	return New(store, r, gw)
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, testServer(t), http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestGetConfig(t *testing.T) {
	w := do(t, testServer(t), http.MethodGet, "/v1/routing/config", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got struct {
		Scoring struct {
			DimensionWeights map[string]float64 `json:"dimensionWeights"`
		} `json:"scoring"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Scoring.DimensionWeights) != 14 {
		t.Errorf("dimension weights = %d, want 14", len(got.Scoring.DimensionWeights))
	}
}

func TestMergeConfig(t *testing.T) {
	s := testServer(t)

	patch := map[string]any{"overrides": map[string]any{"agenticMode": true}}
	w := do(t, s, http.MethodPost, "/v1/routing/config", patch)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var got struct {
		Overrides struct {
			AgenticMode bool `json:"agenticMode"`
		} `json:"overrides"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Overrides.AgenticMode {
		t.Errorf("agenticMode not flipped in merged config")
	}
}

func TestMergeConfigRejectsUnknownDimension(t *testing.T) {
	s := testServer(t)

	patch := map[string]any{
		"scoring": map[string]any{
			"dimensionWeights": map[string]float64{"notADimension": 0.5},
		},
	}
	w := do(t, s, http.MethodPost, "/v1/routing/config", patch)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400, body %s", w.Code, w.Body.String())
	}

	// The active config is unchanged.
	w = do(t, s, http.MethodGet, "/v1/routing/config", nil)
	if bytes.Contains(w.Body.Bytes(), []byte("notADimension")) {
		t.Errorf("rejected patch leaked into active config")
	}
}

func TestRouteEndpoint(t *testing.T) {
	w := do(t, testServer(t), http.MethodPost, "/v1/route", map[string]any{"prompt": "What is Python?"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var dec struct {
		Tier     string `json:"tier"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &dec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dec.Tier != "SIMPLE" {
		t.Errorf("tier = %s, want SIMPLE", dec.Tier)
	}
	if dec.Model != "gemini-2.0-flash" {
		t.Errorf("model = %s, want gemini-2.0-flash", dec.Model)
	}
}

func TestRouteEndpointRequiresPrompt(t *testing.T) {
	w := do(t, testServer(t), http.MethodPost, "/v1/route", map[string]any{"system": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestAskEndpoint(t *testing.T) {
	w := do(t, testServer(t), http.MethodPost, "/v1/ask", map[string]any{"prompt": "What is Python?"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var reply struct {
		Artifact struct {
			Content string `json:"content"`
		} `json:"artifact"`
		Decision struct {
			Tier string `json:"tier"`
		} `json:"decision"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if reply.Artifact.Content == "" {
		t.Errorf("empty artifact content")
	}
	if reply.Decision.Tier != "SIMPLE" {
		t.Errorf("tier = %s, want SIMPLE", reply.Decision.Tier)
	}
}

func TestStatsEndpoint(t *testing.T) {
	s := testServer(t)
	do(t, s, http.MethodPost, "/v1/route", map[string]any{"prompt": "What is Python?"})

	w := do(t, s, http.MethodGet, "/v1/routing/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var snap struct {
		TotalRouted uint64            `json:"total_routed"`
		Tiers       map[string]uint64 `json:"tiers"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.TotalRouted != 1 {
		t.Errorf("total_routed = %d, want 1", snap.TotalRouted)
	}
	if snap.Tiers["SIMPLE"] != 1 {
		t.Errorf("tiers = %v, want SIMPLE: 1", snap.Tiers)
	}
}

func TestRequestIDHeader(t *testing.T) {
	w := do(t, testServer(t), http.MethodGet, "/healthz", nil)
	if w.Header().Get("X-Request-ID") == "" {
		t.Errorf("missing X-Request-ID header")
	}
}
