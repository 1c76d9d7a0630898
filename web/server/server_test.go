package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestHandleHealth(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()

	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestHandleScenes(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/scenes", nil)
	rr := httptest.NewRecorder()

	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var scenes []scene.SceneInfo
	if err := json.NewDecoder(rr.Body).Decode(&scenes); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(scenes) != len(scene.Names()) {
		t.Errorf("Expected %d scenes, got %d", len(scene.Names()), len(scenes))
	}
}

func TestParseRenderRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expectError bool
		expected    RenderRequest
	}{
		{"defaults", "", false, RenderRequest{Scene: "cornell", Width: 200, SPP: 16, Depth: 10, Seed: 42}},
		{"explicit", "scene=quads&width=64&spp=4&depth=3&seed=7", false, RenderRequest{Scene: "quads", Width: 64, SPP: 4, Depth: 3, Seed: 7}},
		{"unknown scene", "scene=nope", true, RenderRequest{}},
		{"width too small", "width=2", true, RenderRequest{}},
		{"spp not a number", "spp=many", true, RenderRequest{}},
		{"depth too large", "depth=1000", true, RenderRequest{}},
	}

	s := NewServer(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/render?"+tt.query, nil)
			got, err := s.parseRenderRequest(req.URL.Query())
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for query %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if *got != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, *got)
			}
		})
	}
}

// dialRender opens a render stream against a test server
func dialRender(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/render?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until one of the given type arrives, returning all read
func readUntil(t *testing.T, conn *websocket.Conn, msgType string) []Message {
	t.Helper()
	var msgs []Message
	for {
		conn.SetReadDeadline(time.Now().Add(30 * time.Second))
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("Failed reading messages (got %d so far): %v", len(msgs), err)
		}
		msgs = append(msgs, msg)
		if msg.Type == msgType {
			return msgs
		}
	}
}

func TestHandleRender_StreamsProgressAndImage(t *testing.T) {
	ts := httptest.NewServer(NewServer(0).Handler())
	defer ts.Close()

	conn := dialRender(t, ts, "scene=quads&width=8&spp=1&depth=2")
	msgs := readUntil(t, conn, "complete")

	rows := make(map[int]bool)
	consoleLines := 0
	var complete *Complete
	for _, msg := range msgs {
		switch msg.Type {
		case "progress":
			if msg.Progress.TotalRows != 8 {
				t.Errorf("Expected 8 total rows, got %d", msg.Progress.TotalRows)
			}
			rows[msg.Progress.Row] = true
		case "console":
			consoleLines++
		case "complete":
			complete = msg.Complete
		case "error":
			t.Fatalf("Unexpected error message: %s", msg.Error)
		}
	}

	if len(rows) != 8 {
		t.Errorf("Expected progress for 8 distinct rows, got %d", len(rows))
	}
	if consoleLines == 0 {
		t.Error("Expected console messages")
	}
	if complete.Width != 8 || complete.Height != 8 {
		t.Errorf("Expected 8x8 image, got %dx%d", complete.Width, complete.Height)
	}
	if complete.Stats.TotalPixels != 64 || complete.Stats.TotalSamples != 64 {
		t.Errorf("Unexpected stats: %+v", complete.Stats)
	}

	data, err := base64.StdEncoding.DecodeString(complete.ImageData)
	if err != nil {
		t.Fatalf("Invalid base64 image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("Expected 8x8 PNG, got %v", b)
	}

	// Server closes the stream after completion
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal closure, got %v", err)
	}
}

func TestHandleRender_BadRequest(t *testing.T) {
	ts := httptest.NewServer(NewServer(0).Handler())
	defer ts.Close()

	conn := dialRender(t, ts, "scene=nope")
	msgs := readUntil(t, conn, "error")

	last := msgs[len(msgs)-1]
	if !strings.Contains(last.Error, "nope") {
		t.Errorf("Expected error to name the scene, got %q", last.Error)
	}
}

func TestHandleRender_RequiresWebSocket(t *testing.T) {
	s := NewServer(0)
	req := httptest.NewRequest(http.MethodGet, "/api/render?scene=quads", nil)
	rr := httptest.NewRecorder()

	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for plain HTTP, got %d", rr.Code)
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0)

	t.Run("hit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/inspect?scene=quads&width=8&x=4&y=4", nil)
		rr := httptest.NewRecorder()
		s.Handler().ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp InspectResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		// The back quad is green and sits on z=0, nine units from the camera
		if !resp.Hit || resp.MaterialType != "lambertian" {
			t.Fatalf("Expected lambertian hit, got %+v", resp)
		}
		if math.Abs(resp.Point[2]) > 1e-9 {
			t.Errorf("Expected hit on z=0 plane, got %v", resp.Point)
		}
		if resp.Distance < 9 || resp.Distance > 9.5 {
			t.Errorf("Expected distance near 9, got %v", resp.Distance)
		}
		if resp.Properties["color"] != "#33ff33" {
			t.Errorf("Expected green quad, got %v", resp.Properties["color"])
		}
		if !resp.FrontFace {
			t.Error("Expected front face hit")
		}
	})

	errorCases := []struct {
		name  string
		query string
	}{
		{"unknown scene", "scene=nope&x=0&y=0"},
		{"missing x", "scene=quads&y=0"},
		{"bad y", "scene=quads&x=0&y=top"},
		{"out of bounds", "scene=quads&width=8&x=8&y=0"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/inspect?"+tt.query, nil)
			rr := httptest.NewRecorder()
			s.Handler().ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rr.Code)
			}
		})
	}
}
