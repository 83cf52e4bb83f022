// Package server hosts the single-page exploration UI over net/http.
//
// All domain logic lives in dataset, clean, chart, and export; this package
// only wires form submissions to those pure functions and renders the
// results back. The working table is explicit session state — every
// operation takes the current table and stores the returned one.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/huzzy12/data-analysis-tool/dataset"
)

const (
	// MaxUploadSize caps multipart uploads at 10MB.
	MaxUploadSize = 10 << 20
)

// Session is the state of one exploration session: the uploaded file's
// identity and the working table the cleaning pipeline mutates.
type Session struct {
	Filename string
	Uploaded time.Time
	Working  *dataset.Table

	// Flash holds the outcome of the most recent operation, shown once.
	Flash   string
	IsError bool
}

// Server serves the exploration UI for a single session.
type Server struct {
	mu      sync.Mutex
	cache   *dataset.Cache
	session *Session

	// chartPNG is the most recently rendered chart, served at /chart.png.
	chartPNG []byte
}

// New creates a Server with an empty session.
func New() *Server {
	return &Server{cache: dataset.NewCache()}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/clean", s.handleClean)
	mux.HandleFunc("/chart", s.handleChart)
	mux.HandleFunc("/chart.png", s.handleChartPNG)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

// ListenAndServe runs the server until it fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("server: listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// flash records an operation outcome for the next page render.
func (s *Server) flash(msg string, isError bool) {
	if s.session != nil {
		s.session.Flash = msg
		s.session.IsError = isError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
