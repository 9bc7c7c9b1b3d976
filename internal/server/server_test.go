package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/latt-dev/latt/pkg/cache"
	"github.com/latt-dev/latt/pkg/config"
	"github.com/latt-dev/latt/pkg/pipeline"
)

const sampleText = `id utt-443
start 0
end 3
numNodes 4
numEdges 4
node 0 0.00
node 1 0.28
node 2 0.28
node 3 1.50
edge 0 1 hello -64 -12
edge 0 2 -silence- -50 -3
edge 1 3 world -55 -9
edge 2 3 world -58 -9
`

// A two-node cycle plus an edge with fields shaped like a valid file.
const cyclicText = `id utt-cycle
start 0
end 2
numNodes 3
numEdges 3
node 0 0.00
node 1 0.50
node 2 1.00
edge 0 1 a -1 -1
edge 1 0 b -1 -1
edge 1 2 c -1 -1
`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(cache.NewNullCache(), logger)
	t.Cleanup(func() { _ = runner.Close() })

	srv := New(runner, config.Default(), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestAnalyze(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/analyze", "text/plain", strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("POST /v1/analyze error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status = %d, want 200, body: %s", resp.StatusCode, body)
	}

	var got analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if got.ID != "utt-443" {
		t.Errorf("id = %q, want utt-443", got.ID)
	}
	if got.Hypothesis != "hello world" {
		t.Errorf("hypothesis = %q, want %q", got.Hypothesis, "hello world")
	}
	if got.Total != -140.0 {
		t.Errorf("total = %v, want -140", got.Total)
	}
	if got.Paths != "2" {
		t.Errorf("paths = %q, want 2", got.Paths)
	}
	if got.NumNodes != 4 || got.NumEdges != 4 {
		t.Errorf("num_nodes/num_edges = %d/%d, want 4/4", got.NumNodes, got.NumEdges)
	}
}

func TestAnalyzeLMScaleQuery(t *testing.T) {
	ts := testServer(t)

	// With the language model off, the silence branch wins.
	resp, err := http.Post(ts.URL+"/v1/analyze?lm_scale=0", "text/plain", strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp.Body.Close()

	var got analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Total != -119.0 {
		t.Errorf("total = %v, want -119 with lm_scale=0", got.Total)
	}

	resp2, err := http.Post(ts.URL+"/v1/analyze?lm_scale=abc", "text/plain", strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("POST error = %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("bad lm_scale status = %d, want 400", resp2.StatusCode)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed lattice",
			body:       "garbage",
			wantStatus: http.StatusBadRequest,
			wantCode:   "PARSE_ERROR",
		},
		{
			name:       "empty body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
		{
			name:       "cyclic lattice",
			body:       cyclicText,
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "GRAPH_CYCLE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/analyze", "text/plain", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var got errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if got.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/render/dot", "text/plain", strings.NewReader(sampleText))
	if err != nil {
		t.Fatalf("POST /v1/render/dot error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/vnd.graphviz" {
		t.Errorf("content type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	dot := string(body)
	if !strings.Contains(dot, "digraph") || !strings.Contains(dot, `"hello"`) {
		t.Errorf("unexpected dot output:\n%s", dot)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	ts := testServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	if id := resp.Header.Get("X-Request-ID"); id != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", id)
	}
}
