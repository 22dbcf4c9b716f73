package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vadiminshakov/predictor/internal/domain"
	"github.com/vadiminshakov/predictor/internal/events"
	"go.uber.org/zap"
)

const (
	lookupPollInterval = 2 * time.Second
	heartbeatInterval  = 30 * time.Second
)

type controller interface {
	SelectSymbol(symbol domain.Symbol) <-chan domain.DisplayState
	Retry() <-chan domain.DisplayState
	ToggleMode() <-chan domain.DisplayState
	Snapshot() events.Snapshot
}

type symbolCatalog interface {
	Symbols(ctx context.Context) ([]domain.Symbol, error)
}

type snapshotSource interface {
	Subscribe() chan events.Snapshot
	Unsubscribe(ch chan events.Snapshot)
}

type lookupReader interface {
	EventsAfter(index uint64) ([]domain.LookupEventRecord, error)
}

// Server exposes the controller over HTTP: JSON actions, SSE streams and a small HTML page.
type Server struct {
	Addr      string
	l         *zap.Logger
	ctrl      controller
	catalog   symbolCatalog
	snapshots snapshotSource
	lookups   lookupReader
	metrics   http.Handler
}

// NewServer creates a new web server instance. lookups and metrics may be nil.
func NewServer(addr string, l *zap.Logger, ctrl controller, catalog symbolCatalog,
	snapshots snapshotSource, lookups lookupReader, metrics http.Handler) *Server {
	return &Server{
		Addr:      addr,
		l:         l,
		ctrl:      ctrl,
		catalog:   catalog,
		snapshots: snapshots,
		lookups:   lookups,
		metrics:   metrics,
	}
}

// Handler returns the routes served by the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/symbols", s.handleSymbols)
	mux.HandleFunc("POST /api/symbol", s.handleSelectSymbol)
	mux.HandleFunc("POST /api/retry", s.handleRetry)
	mux.HandleFunc("POST /api/mode/toggle", s.handleToggleMode)
	mux.HandleFunc("GET /state/stream", s.handleStateStream)
	mux.HandleFunc("GET /lookups/stream", s.handleLookupStream)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics)
	}
	return mux
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.l.Info("web dashboard listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.catalog.Symbols(r.Context())
	if err != nil {
		s.l.Error("failed to list symbols", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list symbols")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": symbols})
}

func (s *Server) handleSelectSymbol(w http.ResponseWriter, r *http.Request) {
	symbol := r.FormValue("symbol")
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol is required")
		return
	}
	s.respond(w, r, s.ctrl.SelectSymbol(domain.Symbol(symbol)))
}

func (s *Server) handleRetry(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.ctrl.Retry())
}

func (s *Server) handleToggleMode(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.ctrl.ToggleMode())
}

// respond answers an action with the Loading snapshot, or with the applied
// result when the request carries wait=true.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, done <-chan domain.DisplayState) {
	if r.FormValue("wait") != "true" {
		writeJSON(w, http.StatusAccepted, s.ctrl.Snapshot())
		return
	}

	select {
	case _, ok := <-done:
		if !ok {
			writeError(w, http.StatusConflict, "superseded by a newer action")
			return
		}
		writeJSON(w, http.StatusOK, s.ctrl.Snapshot())
	case <-r.Context().Done():
	}
}

func (s *Server) handleStateStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub := s.snapshots.Subscribe()
	defer s.snapshots.Unsubscribe(sub)

	setStreamHeaders(w)

	// send a comment heartbeat so proxies keep connection
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	send := func(snap events.Snapshot) bool {
		payload, err := json.Marshal(snap)
		if err != nil {
			s.l.Error("failed to encode snapshot", zap.Error(err))
			return false
		}
		fmt.Fprintf(w, "event: state\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		flusher.Flush()
		return true
	}

	if !send(s.ctrl.Snapshot()) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case snap, ok := <-sub:
			if !ok || !send(snap) {
				return
			}
		}
	}
}

func (s *Server) handleLookupStream(w http.ResponseWriter, r *http.Request) {
	if s.lookups == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "lookup journal not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	setStreamHeaders(w)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(lookupPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendLookups := func() error {
		records, err := s.lookups.EventsAfter(lastIndex)
		if err != nil {
			return err
		}
		for _, record := range records {
			payload, err := json.Marshal(record.Event)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "id: %d\n", record.Index)
			fmt.Fprintf(w, "event: lookup\n")
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
			lastIndex = record.Index
		}
		return nil
	}

	if err := sendLookups(); err != nil {
		http.Error(w, "failed to load lookups", http.StatusInternalServerError)
		s.l.Error("lookup stream initial load", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendLookups(); err != nil {
				s.l.Warn("lookup stream poll", zap.Error(err))
			}
		}
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
