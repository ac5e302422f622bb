package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sand-ca/internal/sims/sand"

	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := sand.DefaultConfig()
	cfg.Width, cfg.Height = 8, 6
	srv := NewServer(sand.NewWithConfig(cfg), 120)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	kind, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if kind != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", kind)
	}
	f, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func TestViewerGetsLatestFrameOnConnect(t *testing.T) {
	_, ts := newTestServer(t)
	conn := dial(t, ts)

	f := readFrame(t, conn)
	if f.Width != 8 || f.Height != 6 || f.Tick != 0 {
		t.Fatalf("first frame = %dx%d tick %d, want 8x6 tick 0", f.Width, f.Height, f.Tick)
	}
	if len(f.Pixels) != 8*6*4 {
		t.Fatalf("pixel payload = %d bytes", len(f.Pixels))
	}
}

func TestRunBroadcastsAdvancingFrames(t *testing.T) {
	srv, ts := newTestServer(t)
	conn := dial(t, ts)
	readFrame(t, conn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var last uint64
	for i := 0; i < 3; i++ {
		f := readFrame(t, conn)
		if f.Tick <= last {
			t.Fatalf("frame %d tick %d did not advance past %d", i, f.Tick, last)
		}
		last = f.Tick
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	if n := srv.Viewers(); n != 0 {
		t.Fatalf("%d viewers still registered after shutdown", n)
	}
}

func TestPageAndHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "<canvas") {
		t.Fatal("viewer page has no canvas")
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	defer resp.Body.Close()
	var status struct {
		Status string `json:"status"`
		Sim    string `json:"sim"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if status.Status != "healthy" || status.Sim != "sand" {
		t.Fatalf("health = %+v", status)
	}

	resp, err = http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing page status = %d", resp.StatusCode)
	}
}
