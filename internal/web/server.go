// Package web serves a small operator status page and a JSON status endpoint.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vadiminshakov/mentio/internal/services/cycle"
)

type statusReader interface {
	Status() cycle.Status
}

// Server exposes the current trade cycle state over HTTP.
type Server struct {
	Addr string
	Bot  statusReader
}

// NewServer creates a new status server instance.
func NewServer(addr string, bot statusReader) *Server {
	return &Server{Addr: addr, Bot: bot}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if s.Bot == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "bot not available")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Bot.Status()); err != nil {
		http.Error(w, "failed to encode status", http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>mentio</title>
<style>
body { font-family: monospace; background: #111; color: #ddd; margin: 2rem; }
h1 { font-size: 1.2rem; }
pre { background: #1b1b1b; padding: 1rem; border-radius: 6px; }
</style>
</head>
<body>
<h1>mentio status</h1>
<pre id="status">loading...</pre>
<script>
async function refresh() {
  try {
    const res = await fetch('/status');
    const data = await res.json();
    document.getElementById('status').textContent = JSON.stringify(data, null, 2);
  } catch (e) {
    document.getElementById('status').textContent = 'status unavailable: ' + e;
  }
}
refresh();
setInterval(refresh, 5000);
</script>
</body>
</html>`
