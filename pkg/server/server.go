package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	lru "github.com/hashicorp/golang-lru/v2"

	"pyscan/pkg/pipeline"
)

// DefaultMemoSize bounds how many responses the in-process LRU keeps.
const DefaultMemoSize = 128

// Config holds server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Root is the project directory all endpoints serve.
	Root string

	// Exclude lists packages removed from frequency results.
	Exclude []string

	// ProcessOwnModules substitutes locally authored modules with
	// their own imports before counting.
	ProcessOwnModules bool

	// Watch enables filesystem watching. Changes to Python sources
	// under Root invalidate memoized responses.
	Watch bool

	// MemoSize caps the response LRU. Zero means DefaultMemoSize.
	MemoSize int
}

// Server serves scan results and plots for a single project root.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	logger *log.Logger

	httpServer *http.Server
	watcher    *watcher

	// scanMu serializes pipeline runs so concurrent requests for a
	// cold memo do not scan the tree in parallel.
	scanMu sync.Mutex

	// memo caches full response bodies keyed by path, query, and
	// generation. The watcher bumps gen to invalidate everything.
	memo *lru.Cache[string, memoEntry]
	gen  atomic.Uint64
}

type memoEntry struct {
	contentType string
	body        []byte
}

// New builds a server from the config. The runner must not be nil.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner is required")
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	size := cfg.MemoSize
	if size <= 0 {
		size = DefaultMemoSize
	}
	memo, err := lru.New[string, memoEntry](size)
	if err != nil {
		return nil, fmt.Errorf("create memo cache: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		memo:   memo,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/frequencies", s.handleFrequencies)
		r.Get("/table", s.handleTable)
	})
	r.Get("/plot/{kind}.svg", s.handlePlot)
	return r
}

// Start runs the server until ctx is canceled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.Watch {
		w, err := newWatcher(s.cfg.Root, s.invalidate, s.logger)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		s.watcher = w
		go w.run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Serving %s on %s", s.cfg.Root, s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Shutdown drains connections and stops the watcher.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.close()
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

// invalidate drops all memoized responses. Called by the watcher after
// Python sources change.
func (s *Server) invalidate() {
	s.gen.Add(1)
	s.memo.Purge()
	s.logger.Debug("Memo invalidated after filesystem change")
}

// memoKey namespaces a request URL with the current generation.
func (s *Server) memoKey(r *http.Request) string {
	return fmt.Sprintf("%d:%s?%s", s.gen.Load(), r.URL.Path, r.URL.RawQuery)
}
