package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringstack/pkg/inference"
	"github.com/matzehuels/ringstack/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := NewServer(pipeline.NewRunner(nil, nil, logger), logger)
	s.Model = inference.ModelFunc(func(_ context.Context, f inference.Features) ([]float64, error) {
		return []float64{60, 3, 8, 0, 40, 2, 5, 2}, nil
	})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var e errorBody
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || h.Status != "ok" {
		t.Errorf("status = %d %+v", resp.StatusCode, h)
	}
}

func TestStacks(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/stacks", `{"seed": 5, "count": 3, "max_size": 90}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Seed      uint64 `json:"seed"`
		Requested int    `json:"requested"`
		Stack     []struct {
			Size int    `json:"size"`
			Side string `json:"gap_side"`
		} `json:"stack"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Seed != 5 || out.Requested != 3 {
		t.Errorf("unexpected response %+v", out)
	}
	if len(out.Stack) == 0 || out.Stack[0].Size != 90 {
		t.Errorf("outermost resonator should have size 90: %+v", out.Stack)
	}
	if resp.Header.Get("X-Cache") != "MISS" {
		t.Errorf("X-Cache = %q", resp.Header.Get("X-Cache"))
	}
}

func TestStacksEmptyBodyUsesDefaults(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/stacks", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestRenderPNG(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/render/png", `{"seed": 1, "scale": 1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="ringstack-`) {
		t.Errorf("Content-Disposition = %q", cd)
	}

	data, _ := io.ReadAll(resp.Body)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != pipeline.DefaultCanvasSize {
		t.Errorf("width = %d, want %d", img.Bounds().Dx(), pipeline.DefaultCanvasSize)
	}
}

func TestRenderExplicitStackSVG(t *testing.T) {
	srv := newTestServer(t)
	body := `{"stack": [{"size": 50, "frame_width": 4, "gap_size": 6, "gap_side": "left"}]}`
	resp := post(t, srv, "/v1/render/svg", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(data, []byte("<svg")) {
		t.Errorf("not an svg: %.40s", data)
	}
}

func TestLayers(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/layers", `{"seed": 2, "layer": 5, "per_resonator_layers": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out struct {
		Layers []int `json:"layers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if len(out.Layers) == 0 || out.Layers[0] != 5 {
		t.Errorf("layers = %v", out.Layers)
	}
}

func TestDesign(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/design", `{"features": [0.1, 0.2]}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out stackResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Stack.Len() != 2 || out.Stack.At(0).Size != 60 {
		t.Errorf("stack = %v", out.Stack.Specs())
	}
}

func TestDesignWithoutModel(t *testing.T) {
	s := NewServer(nil, log.NewWithOptions(io.Discard, log.Options{}))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp := post(t, srv, "/v1/design", `{"features": [1]}`)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != "UNSUPPORTED" {
		t.Errorf("code = %s", e.Code)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown format", "/v1/render/gds", `{}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed body", "/v1/stacks", `{"seed":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/stacks", `{"colour": "red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"max size 5", "/v1/stacks", `{"max_size": 5, "count": 1}`, http.StatusBadRequest, "INVALID_CONFIGURATION"},
		{"canvas too small", "/v1/render/png", `{"max_size": 100, "canvas_size": 50}`, http.StatusUnprocessableEntity, "CANVAS_TOO_SMALL"},
		{"degenerate stack", "/v1/layers", `{"stack": [{"size": 50, "frame_width": 4, "gap_size": 50, "gap_side": "top"}]}`, http.StatusUnprocessableEntity, "DEGENERATE_GEOMETRY"},
		{"bad features", "/v1/design", `{"features": []}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); string(e.Code) != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	if statusFor("SOMETHING_ELSE") != http.StatusInternalServerError {
		t.Error("unknown codes should map to 500")
	}
	if statusFor("NOT_FOUND") != http.StatusNotFound {
		t.Error("NOT_FOUND should map to 404")
	}
}
