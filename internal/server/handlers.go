package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/nichejobs/internal/store"
	"github.com/jonathan/nichejobs/internal/types"
)

// jobsResponse is one page of jobs plus pagination metadata.
type jobsResponse struct {
	Jobs  []types.Job `json:"jobs"`
	Total int         `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

// handleListJobs serves GET /jobs with the query parameters:
// niche, status (default active), q (full-text), tags (comma-separated,
// all must match), remote (true/false), page (1-based), limit.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := store.Filters{
		Niche:  q.Get("niche"),
		Status: types.StatusActive,
		Query:  q.Get("q"),
	}
	if status := q.Get("status"); status != "" {
		f.Status = types.JobStatus(status)
	}
	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	if remote := q.Get("remote"); remote != "" {
		v, err := strconv.ParseBool(remote)
		if err != nil {
			respondError(w, http.StatusBadRequest, "remote must be true or false")
			return
		}
		f.Remote = &v
	}

	page := 1
	if p := q.Get("page"); p != "" {
		v, err := strconv.Atoi(p)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = v
	}
	f.Limit = store.DefaultLimit
	if l := q.Get("limit"); l != "" {
		v, err := strconv.Atoi(l)
		if err != nil || v < 1 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		f.Limit = v
	}
	if f.Limit > store.MaxLimit {
		f.Limit = store.MaxLimit
	}
	f.Offset = (page - 1) * f.Limit

	jobs, total, err := s.jobs.ListJobs(r.Context(), f)
	if err != nil {
		log.Printf("[server] list jobs: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []types.Job{}
	}

	respondJSON(w, http.StatusOK, jobsResponse{Jobs: jobs, Total: total, Page: page, Limit: f.Limit})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	// Job ids are UUIDs; reject anything else before it reaches the store.
	if _, err := uuid.Parse(id); err != nil {
		respondError(w, http.StatusNotFound, "job not found")
		return
	}
	job, err := s.jobs.GetJob(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "job not found")
			return
		}
		log.Printf("[server] get job: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to get job")
		return
	}
	respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleListNiches(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"niches": s.niches.All()})
}

func (s *Server) handleGetNiche(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.niches.Get(r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusNotFound, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
