package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/nightskate/internal/storage"
)

// RunSource is the read side of run storage. *storage.Store implements it.
type RunSource interface {
	TopRuns(gameID string, limit int) ([]storage.Run, error)
	RecentRuns(gameID string, limit int) ([]storage.Run, error)
	RunByID(id string) (*storage.Run, error)
	Stats(gameID string) (*storage.GameStats, error)
}

var _ RunSource = (*storage.Store)(nil)

const maxListLimit = 100

// Config holds the spectator server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID scopes run queries.
	GameID string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Server exposes the hub and finished runs over HTTP.
type Server struct {
	config   Config
	hub      *Hub
	runs     RunSource
	logger   *log.Logger
	upgrader websocket.Upgrader
	router   chi.Router
	http     *http.Server
	addr     net.Addr
	ready    chan struct{}
}

// NewServer builds the router. runs may be nil, in which case the run
// endpoints answer 503.
func NewServer(cfg Config, hub *Hub, runs RunSource) *Server {
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "nightskate-web",
	})
	if hub == nil {
		hub = NewHub(logger)
	}

	s := &Server{
		config: cfg,
		hub:    hub,
		runs:   runs,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		ready: make(chan struct{}),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  logger.StandardLog(),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleStatus)
	r.Get("/ws", s.handleWebSocket)
	r.Route("/runs", func(r chi.Router) {
		r.Get("/top", s.handleTopRuns)
		r.Get("/recent", s.handleRecentRuns)
		r.Get("/{id}", s.handleRun)
	})
	r.Get("/stats", s.handleStats)

	s.router = r
	return s
}

// Hub returns the hub frames should be published to.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

type status struct {
	Game       string `json:"game"`
	Spectators int    `json:"spectators"`
	LastTick   uint64 `json:"last_tick"`
	Dropped    uint64 `json:"dropped"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, status{
		Game:       s.config.GameID,
		Spectators: s.hub.Spectators(),
		LastTick:   s.hub.LastTick(),
		Dropped:    s.hub.Dropped(),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := newClient(conn)
	s.hub.register(c)
	go s.hub.writePump(c)
	go s.hub.readPump(c)
}

func (s *Server) handleTopRuns(w http.ResponseWriter, r *http.Request) {
	s.listRuns(w, r, s.runsOrNil().TopRuns)
}

func (s *Server) handleRecentRuns(w http.ResponseWriter, r *http.Request) {
	s.listRuns(w, r, s.runsOrNil().RecentRuns)
}

func (s *Server) runsOrNil() RunSource {
	if s.runs == nil {
		return unavailable{}
	}
	return s.runs
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request, list func(string, int) ([]storage.Run, error)) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	runs, err := list(s.config.GameID, limit)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := s.runsOrNil().RunByID(id)
	if err != nil {
		s.storageError(w, err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("run %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runsOrNil().Stats(s.config.GameID)
	if err != nil {
		s.storageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) storageError(w http.ResponseWriter, err error) {
	if errors.Is(err, errNoStorage) {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	s.logger.Error("run query failed", "error", err)
	writeError(w, http.StatusInternalServerError, errors.New("run query failed"))
}

// parseLimit accepts an empty value (store default) or 1..maxListLimit.
func parseLimit(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxListLimit {
		return 0, fmt.Errorf("limit must be between 1 and %d", maxListLimit)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

var errNoStorage = errors.New("run storage is not available")

// unavailable stands in for a missing store.
type unavailable struct{}

func (unavailable) TopRuns(string, int) ([]storage.Run, error)    { return nil, errNoStorage }
func (unavailable) RecentRuns(string, int) ([]storage.Run, error) { return nil, errNoStorage }
func (unavailable) RunByID(string) (*storage.Run, error)          { return nil, errNoStorage }
func (unavailable) Stats(string) (*storage.GameStats, error)      { return nil, errNoStorage }

// ListenAndServe serves until ctx is cancelled or the listener fails.
// Spectators are disconnected on the way out.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		close(s.ready)
		return fmt.Errorf("web: cannot listen on %s: %w", s.config.Address, err)
	}
	s.addr = ln.Addr()
	s.http = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	close(s.ready)
	s.logger.Info("starting spectator server", "address", s.addr.String())

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.hub.Close()
		if ok {
			return fmt.Errorf("web: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.shutdown()
	}
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	// Hijacked websocket connections are not tracked by http.Server.
	s.hub.Close()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

// Addr blocks until ListenAndServe has tried to bind and returns the bound
// address, or "" if binding failed.
func (s *Server) Addr() string {
	<-s.ready
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}
