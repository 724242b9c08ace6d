// Package api exposes registered distributions over HTTP: construction
// from explicit vectors or odds, and read-only snapshot, summary and
// report views. It is a thin external collaborator; all probability
// semantics live in the domain packages.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"godrv/adapters/report"
	"godrv/domain/core"
	"godrv/domain/randvar"
	"godrv/internal"
	"godrv/internal/family"
)

// Service registers distributions and serves snapshot queries.
type Service struct {
	log      *internal.Logger
	families *family.Registry

	mu    sync.RWMutex
	byID  map[core.DistributionID]*randvar.Variable
	names map[core.DistributionID]string
}

// NewService creates a service with the builtin family registry.
func NewService(log *internal.Logger) *Service {
	return &Service{
		log:      log,
		families: family.NewRegistry(),
		byID:     make(map[core.DistributionID]*randvar.Variable),
		names:    make(map[core.DistributionID]string),
	}
}

// Register adds a distribution under a display name and returns its ID.
func (s *Service) Register(name string, v *randvar.Variable) core.DistributionID {
	id := core.DistributionID(core.NewID())
	s.mu.Lock()
	s.byID[id] = v
	s.names[id] = name
	s.mu.Unlock()
	return id
}

// Lookup returns a registered distribution by ID.
func (s *Service) Lookup(id core.DistributionID) (*randvar.Variable, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.byID[id]
	return v, s.names[id], ok
}

// Router builds the HTTP surface.
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/distributions", s.handleList)
	r.Post("/distributions", s.handleCreate)
	r.Get("/distributions/{id}", s.handleSnapshot)
	r.Get("/distributions/{id}/summary", s.handleSummary)
	r.Get("/distributions/{id}/report", s.handleReport)
	return r
}

type createRequest struct {
	Name          string             `json:"name"`
	Outcomes      []float64          `json:"outcomes,omitempty"`
	Probabilities []float64          `json:"probabilities,omitempty"`
	Odds          []float64          `json:"odds,omitempty"`
	Family        string             `json:"family,omitempty"`
	Params        map[string]float64 `json:"params,omitempty"`
}

type listEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *Service) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	entries := make([]listEntry, 0, len(s.byID))
	for id := range s.byID {
		entries = append(entries, listEntry{ID: id.String(), Name: s.names[id]})
	}
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, entries)
}

func (s *Service) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	var v *randvar.Variable
	var err error
	switch {
	case req.Family != "":
		v, err = s.families.Build(req.Family, family.Params(req.Params))
	case len(req.Odds) > 0:
		v, err = randvar.FromOdds(req.Outcomes, req.Odds)
	default:
		v, err = randvar.New(req.Outcomes, req.Probabilities)
	}
	if err != nil {
		s.log.Warn("distribution construction rejected: %v", err)
		status := http.StatusBadRequest
		if !core.IsConstructionError(err) {
			status = http.StatusInternalServerError
		}
		http.Error(w, err.Error(), status)
		return
	}

	id := s.Register(req.Name, v)
	s.log.Info("registered distribution %s (%s, %d outcomes)", id, req.Name, v.Len())
	writeJSON(w, http.StatusCreated, listEntry{ID: id.String(), Name: req.Name})
}

func (s *Service) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	v, _, ok := s.lookupParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v.Snapshot())
}

type summaryResponse struct {
	Name     string  `json:"name"`
	Outcomes int     `json:"outcomes"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

func (s *Service) handleSummary(w http.ResponseWriter, r *http.Request) {
	v, name, ok := s.lookupParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Name:     name,
		Outcomes: v.Len(),
		Mean:     v.ExpectedValue(nil),
		Variance: v.Variance(),
	})
}

func (s *Service) handleReport(w http.ResponseWriter, r *http.Request) {
	v, name, ok := s.lookupParam(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(name, v))
}

func (s *Service) lookupParam(w http.ResponseWriter, r *http.Request) (*randvar.Variable, string, bool) {
	id := core.DistributionID(chi.URLParam(r, "id"))
	v, name, ok := s.Lookup(id)
	if !ok {
		http.Error(w, "distribution not found", http.StatusNotFound)
		return nil, "", false
	}
	return v, name, true
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
