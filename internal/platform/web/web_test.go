package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/nightskate/internal/skate"
	"github.com/vovakirdan/nightskate/internal/storage"
)

type fakeRuns struct {
	runs  []storage.Run
	err   error
	limit int
}

func (f *fakeRuns) TopRuns(gameID string, limit int) ([]storage.Run, error) {
	f.limit = limit
	return f.runs, f.err
}

func (f *fakeRuns) RecentRuns(gameID string, limit int) ([]storage.Run, error) {
	f.limit = limit
	return f.runs, f.err
}

func (f *fakeRuns) RunByID(id string) (*storage.Run, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.runs {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRuns) Stats(gameID string) (*storage.GameStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &storage.GameStats{GameID: gameID, Runs: len(f.runs)}, nil
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func newTestServer(t *testing.T, runs RunSource) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(Config{GameID: skate.GameID}, NewHub(quietLogger()), runs)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Hub().Close()
		ts.Close()
	})
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitSpectators(t *testing.T, h *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Spectators() != n {
		if time.Now().After(deadline) {
			t.Fatalf("spectators = %d, want %d", h.Spectators(), n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) skate.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var f skate.Frame
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	return f
}

func TestHubFanOut(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	a := dial(t, ts)
	b := dial(t, ts)
	waitSpectators(t, srv.Hub(), 2)

	for tick := uint64(1); tick <= 3; tick++ {
		srv.Hub().Publish(skate.Frame{Tick: tick, Score: int(tick) * 10, Phase: "rolling"})
	}

	for name, conn := range map[string]*websocket.Conn{"a": a, "b": b} {
		for want := uint64(1); want <= 3; want++ {
			f := readFrame(t, conn)
			if f.Tick != want {
				t.Errorf("client %s: tick = %d, want %d", name, f.Tick, want)
			}
			if f.Score != int(want)*10 {
				t.Errorf("client %s: score = %d, want %d", name, f.Score, want*10)
			}
		}
	}
	if got := srv.Hub().LastTick(); got != 3 {
		t.Errorf("LastTick() = %d, want 3", got)
	}
}

func TestHubReplaysLastFrame(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	srv.Hub().Publish(skate.Frame{Tick: 41, GameOver: true, Cause: skate.CauseBarrier})

	conn := dial(t, ts)
	f := readFrame(t, conn)
	if f.Tick != 41 || !f.GameOver || f.Cause != skate.CauseBarrier {
		t.Errorf("replayed frame = %+v", f)
	}
}

func TestHubUnregistersOnDisconnect(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	conn := dial(t, ts)
	waitSpectators(t, srv.Hub(), 1)

	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()
	waitSpectators(t, srv.Hub(), 0)
}

func TestHubDropsForSlowClient(t *testing.T) {
	h := NewHub(quietLogger())
	slow := &client{id: "slow", send: make(chan []byte, 1), done: make(chan struct{})}
	h.clients[slow.id] = slow

	h.Publish(skate.Frame{Tick: 1})
	h.Publish(skate.Frame{Tick: 2})
	h.Publish(skate.Frame{Tick: 3})

	if got := h.Dropped(); got != 2 {
		t.Errorf("Dropped() = %d, want 2", got)
	}
	var f skate.Frame
	if err := json.Unmarshal(<-slow.send, &f); err != nil {
		t.Fatal(err)
	}
	if f.Tick != 1 {
		t.Errorf("queued tick = %d, want 1", f.Tick)
	}
}

func TestRunEndpoints(t *testing.T) {
	runs := &fakeRuns{runs: []storage.Run{
		{ID: "a1", GameID: skate.GameID, Score: 900, Cause: skate.CauseTraffic},
		{ID: "b2", GameID: skate.GameID, Score: 300, Cause: skate.CauseBarrier},
	}}
	srv := NewServer(Config{GameID: skate.GameID}, NewHub(quietLogger()), runs)

	tests := []struct {
		name     string
		path     string
		wantCode int
		wantBody string
	}{
		{"status", "/", http.StatusOK, `"game":"skate"`},
		{"top", "/runs/top", http.StatusOK, `"score":900`},
		{"recent", "/runs/recent?limit=5", http.StatusOK, `"id":"b2"`},
		{"bad limit", "/runs/top?limit=0", http.StatusBadRequest, "limit must be"},
		{"huge limit", "/runs/top?limit=1000", http.StatusBadRequest, "limit must be"},
		{"by id", "/runs/b2", http.StatusOK, `"cause":"barrier collision"`},
		{"missing", "/runs/zz", http.StatusNotFound, "not found"},
		{"stats", "/stats", http.StatusOK, `"runs":2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/recent?limit=7", nil))
	if runs.limit != 7 {
		t.Errorf("limit passed to store = %d, want 7", runs.limit)
	}
}

func TestRunEndpointsWithoutStore(t *testing.T) {
	srv := NewServer(Config{GameID: skate.GameID}, NewHub(quietLogger()), nil)
	for _, path := range []string{"/runs/top", "/runs/recent", "/runs/x", "/stats"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: code = %d, want 503", path, rec.Code)
		}
	}
}

func TestRunEndpointsStoreError(t *testing.T) {
	srv := NewServer(Config{GameID: skate.GameID}, NewHub(quietLogger()), &fakeRuns{err: errors.New("disk on fire")})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/top", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "disk on fire") {
		t.Error("internal error leaked to client")
	}
}

func TestListenAndServe(t *testing.T) {
	srv := NewServer(Config{Address: "127.0.0.1:0", GameID: skate.GameID}, NewHub(quietLogger()), nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx) }()

	addr := srv.Addr()
	if addr == "" {
		t.Fatal("server did not bind")
	}
	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
