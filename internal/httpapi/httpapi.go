// Package httpapi is the JSON/SSE observation surface named in spec.md
// §6 ("Update channel (broadcast, consumed by UI)") and out-of-scope
// §1 ("the HTTP/SSE browser interface; the rendering of progress into
// HTML"). It emits JSON and SSE data only — no HTML — grounded on
// project-tachyon/internal/api/server.go's chi.Mux + bearer-token
// middleware shape, with the router itself (`go-chi/chi`) matching
// SPEC_FULL.md §3.6's domain-stack wiring.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/catnapper321/downd/internal/broadcast"
	"github.com/catnapper321/downd/internal/command"
	"github.com/catnapper321/downd/internal/tracker"
	"github.com/catnapper321/downd/internal/utils"
)

// Server is the HTTP/SSE control-observation surface. It never mutates
// the queue directly: POST /control parses a line with the same
// command.Parse grammar the Unix socket uses and hands it to commands,
// matching spec.md §4.4's "one command per line" contract.
type Server struct {
	snapshots *broadcast.Bus[tracker.Snapshot]
	commands  chan<- command.Command
	token     string
	router    *chi.Mux
}

// New builds a Server. snapshots is the Tracker's rendered-snapshot
// broadcast (spec.md §4.8's "separate broadcast consumed by SSE
// clients"); commands is the same channel the control socket feeds.
// token, if non-empty, is required as a Bearer token on every request.
func New(snapshots *broadcast.Bus[tracker.Snapshot], commands chan<- command.Command, token string) *Server {
	s := &Server{snapshots: snapshots, commands: commands, token: token}
	s.router = chi.NewRouter()
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.authMiddleware)
	s.router.Get("/events", s.handleEvents)
	s.router.Get("/queue", s.handleQueue)
	s.router.Post("/control", s.handleControl)
	return s
}

// ServeHTTP lets Server itself be passed to http.Serve/http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token == "" {
			next.ServeHTTP(w, r)
			return
		}
		got := r.Header.Get("Authorization")
		if got != "Bearer "+s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleEvents streams rendered tracker.Snapshot values as
// "data: <json>\n\n" SSE frames, one per broadcast publish, until the
// client disconnects. A slow client loses the oldest frames per
// spec.md §4.8 rather than blocking the supervisor.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := s.snapshots.Subscribe()
	defer s.snapshots.Unsubscribe(sub)

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-sub.C():
			if !ok {
				return
			}
			body, err := json.Marshal(snap)
			if err != nil {
				utils.Debug("httpapi: failed to marshal snapshot: %v", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", body)
			flusher.Flush()
		}
	}
}

// handleQueue serves a one-shot JSON array: the Queue field of the next
// snapshot the tracker publishes after the request arrives, since the
// tracker is the only task that knows the queue contents. If no
// snapshot is published within 2 seconds, it serves an empty array,
// whatever the queue holds.
func (s *Server) handleQueue(w http.ResponseWriter, r *http.Request) {
	sub := s.snapshots.Subscribe()
	defer s.snapshots.Unsubscribe(sub)

	select {
	case snap, ok := <-sub.C():
		if !ok {
			w.Write([]byte("[]"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snap.Queue)
	case <-time.After(2 * time.Second):
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}
}

// handleControl accepts a request body containing exactly one
// control-socket line (spec.md §4.4's grammar) and forwards the parsed
// command to the supervisor. An unparseable body is silently accepted
// and discarded, matching the transport's "unparseable lines are
// silently ignored" contract rather than returning 400.
func (s *Server) handleControl(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil && len(body) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}
	cmd, perr := command.Parse(string(body))
	if perr != nil {
		utils.Debug("httpapi: %v", perr)
		w.WriteHeader(http.StatusOK)
		return
	}
	select {
	case s.commands <- cmd:
	default:
		utils.Debug("httpapi: command channel full, dropping %q", string(body))
	}
	w.WriteHeader(http.StatusOK)
}
