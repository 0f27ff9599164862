package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/wricardo/puzzler/config"
	"github.com/wricardo/puzzler/puzzler"
	"github.com/wricardo/puzzler/puzzles"
	"github.com/wricardo/puzzler/transport/websocket"
	"github.com/wricardo/puzzler/validate"
)

// Catalog looks puzzles up by name
type Catalog interface {
	Names() []string
	New(name string) (puzzler.Puzzle, error)
}

// Registry is the Catalog of the puzzles package
type Registry struct{}

func (Registry) Names() []string                         { return puzzles.Names() }
func (Registry) New(name string) (puzzler.Puzzle, error) { return puzzles.New(name) }

// Server represents the REST API server
type Server struct {
	catalog Catalog
	hub     *websocket.Hub
	config  *config.Config
	logger  hclog.Logger
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil, in which case frames
// are not streamed and /ws answers 503.
func NewServer(catalog Catalog, hub *websocket.Hub, cfg *config.Config, logger hclog.Logger) *Server {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	s := &Server{
		catalog: catalog,
		hub:     hub,
		config:  cfg,
		logger:  logger.Named("api"),
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(s.logRequests)

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Puzzles
	api.HandleFunc("/puzzles", s.handleListPuzzles).Methods("GET")
	api.HandleFunc("/puzzles/{name}/run", s.handleRunPuzzle).Methods("POST")

	// Map validation
	api.HandleFunc("/validate", s.handleValidate).Methods("POST")

	// WebSocket
	s.router.HandleFunc("/ws/{name}", s.handleWebSocket).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// PuzzleInfo describes a registered puzzle
type PuzzleInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	InputFile string `json:"input_file,omitempty"`
	Display   bool   `json:"display"`
}

func (s *Server) handleListPuzzles(w http.ResponseWriter, r *http.Request) {
	names := s.catalog.Names()
	infos := make([]PuzzleInfo, 0, len(names))
	for _, id := range names {
		p, err := s.catalog.New(id)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		_, display := p.(puzzler.Displayer)
		infos = append(infos, PuzzleInfo{
			ID:        id,
			Name:      p.Name(),
			InputFile: p.InputFile(),
			Display:   display,
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"puzzles": infos,
		"count":   len(infos),
	})
}

// RunRequest is the body of a run request. Without lines the puzzle input
// file is read from the configured root.
type RunRequest struct {
	Lines []string `json:"lines,omitempty"`
	Parts int      `json:"parts,omitempty"`
}

// RunResponse carries the answers and the printed solver output
type RunResponse struct {
	Puzzle  string           `json:"puzzle"`
	Results []puzzler.Result `json:"results"`
	Output  string           `json:"output"`
}

func (s *Server) handleRunPuzzle(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req RunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}
	if req.Parts == 0 {
		req.Parts = s.config.Parts
	}

	p, err := s.catalog.New(name)
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}

	var output strings.Builder
	opts := []puzzler.Option{
		puzzler.WithRoot(s.config.Root),
		puzzler.WithOutput(&output),
		puzzler.WithLogger(s.logger),
	}
	if s.hub != nil {
		opts = append(opts, puzzler.WithObserver(s.hub))
	}

	solver, err := puzzler.NewSolver(p, req.Parts, opts...)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var results []puzzler.Result
	if req.Lines != nil {
		results, err = solver.RunLines(r.Context(), req.Lines)
	} else {
		results, err = solver.Run(r.Context())
	}
	if err != nil {
		status := http.StatusUnprocessableEntity
		if r.Context().Err() != nil {
			status = http.StatusRequestTimeout
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, RunResponse{
		Puzzle:  p.Name(),
		Results: results,
		Output:  output.String(),
	})
}

// ValidateRequest is the body of a validation request
type ValidateRequest struct {
	Name   string   `json:"name,omitempty"`
	Lines  []string `json:"lines"`
	Glyphs string   `json:"glyphs,omitempty"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		req.Name = "request"
	}

	respondJSON(w, http.StatusOK, validate.ValidateLines(req.Name, req.Lines, req.Glyphs))
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "frame streaming disabled", http.StatusServiceUnavailable)
		return
	}

	id := mux.Vars(r)["name"]
	p, err := s.catalog.New(id)
	if err != nil {
		http.Error(w, "Unknown puzzle", http.StatusNotFound)
		return
	}

	// Frames are published under the puzzle's display name
	s.hub.ServeWS(w, r, p.Name())
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
