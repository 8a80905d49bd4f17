package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/hyperjump/aimai/internal/fuzzy"
	"github.com/hyperjump/aimai/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Validate(s.config.Search.MaxLimit)
	s.logger.Debug("search request", zap.String("query", req.Query), zap.Int("limit", req.Limit))

	opts, err := s.resolveSearchOptions(&req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	searcher := s.searcher()
	if searcher == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	start := time.Now()
	hits := searcher.Search(req.Query, opts)
	elapsed := time.Since(start)

	if s.metrics != nil {
		outcome := "hit"
		if len(hits) == 0 {
			outcome = "zero_result"
		}
		s.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
		s.metrics.SearchLatency.Observe(elapsed.Seconds())
		s.metrics.SearchResultsCount.Observe(float64(len(hits)))
		s.metrics.CandidatesFiltered.Observe(float64(searcher.CandidateCount(req.Query)))
	}

	s.respondJSON(w, http.StatusOK, searchResponse(req.Query, hits, elapsed))
}

type batchSearchRequest struct {
	Queries    []string `json:"queries"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Limit      int      `json:"limit,omitempty"`
	Algorithms []string `json:"algorithms,omitempty"`
	Strategy   string   `json:"strategy,omitempty"`
	Preset     string   `json:"preset,omitempty"`
}

func (s *Server) handleBatchSearch(w http.ResponseWriter, r *http.Request) {
	var req batchSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Queries) == 0 {
		s.respondError(w, http.StatusBadRequest, "queries is required")
		return
	}
	single := models.SearchRequest{
		Threshold:  req.Threshold,
		Limit:      req.Limit,
		Algorithms: req.Algorithms,
		Strategy:   req.Strategy,
		Preset:     req.Preset,
	}
	single.Validate(s.config.Search.MaxLimit)
	opts, err := s.resolveSearchOptions(&single)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	if engine == nil {
		s.respondError(w, http.StatusServiceUnavailable, "no dataset loaded")
		return
	}

	start := time.Now()
	batches, err := engine.BatchSearch(r.Context(), req.Queries, opts, runtime.GOMAXPROCS(0))
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("batch search failed", zap.Error(err))
		if s.metrics != nil {
			s.metrics.SearchesTotal.WithLabelValues("error").Inc()
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	responses := make([]*models.SearchResponse, len(batches))
	for i, hits := range batches {
		responses[i] = searchResponse(req.Queries[i], hits, elapsed)
		if s.metrics != nil {
			outcome := "hit"
			if len(hits) == 0 {
				outcome = "zero_result"
			}
			s.metrics.SearchesTotal.WithLabelValues(outcome).Inc()
			s.metrics.SearchResultsCount.Observe(float64(len(hits)))
		}
	}
	if s.metrics != nil {
		s.metrics.SearchLatency.Observe(elapsed.Seconds())
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"responses": responses})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	count := s.recordCount
	loaded := s.engine != nil
	s.mu.RUnlock()

	resp := map[string]any{
		"records": count,
		"loaded":  loaded,
		"config": map[string]any{
			"dataset_path":      s.config.Dataset.Path,
			"keys":              s.config.Dataset.Keys,
			"default_threshold": s.config.Search.DefaultThreshold,
			"default_limit":     s.config.Search.DefaultLimit,
			"max_limit":         s.config.Search.MaxLimit,
		},
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// resolveSearchOptions layers the request's overrides on top of the
// configured defaults. A preset in the request wins over its algorithm
// list, mirroring the config semantics.
func (s *Server) resolveSearchOptions(req *models.SearchRequest) (*fuzzy.SearchOptions, error) {
	opts, err := s.config.Search.SearchOptions()
	if err != nil {
		return nil, err
	}
	if req.Threshold != nil {
		opts.Threshold = *req.Threshold
	}
	if req.Limit > 0 {
		opts.Limit = req.Limit
	}
	switch {
	case req.Preset != "":
		p, err := fuzzy.ParsePreset(req.Preset)
		if err != nil {
			return nil, err
		}
		opts.Algorithms = p.Algorithms
		opts.Strategy = p.Strategy
	case len(req.Algorithms) > 0:
		// Never truncate-and-append into the configured slice; it may be
		// shared with other requests.
		algs := make([]fuzzy.Algorithm, 0, len(req.Algorithms))
		for _, name := range req.Algorithms {
			alg, err := fuzzy.ParseAlgorithm(name)
			if err != nil {
				return nil, err
			}
			algs = append(algs, alg)
		}
		opts.Algorithms = algs
	}
	if req.Strategy != "" {
		strategy, err := fuzzy.ParseStrategy(req.Strategy)
		if err != nil {
			return nil, err
		}
		opts.Strategy = strategy
	}
	return opts, nil
}

func searchResponse(query string, hits []fuzzy.Result[models.Record], elapsed time.Duration) *models.SearchResponse {
	results := make([]*models.SearchResult, len(hits))
	for i, hit := range hits {
		results[i] = &models.SearchResult{
			Record: hit.Item,
			Score:  hit.Score,
			Rank:   i + 1,
		}
	}
	return &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		QueryTime: elapsed.Milliseconds(),
		Query:     query,
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
