package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/latt-dev/latt/pkg/errors"
	"github.com/latt-dev/latt/pkg/lattice"
	"github.com/latt-dev/latt/pkg/pipeline"
	"github.com/latt-dev/latt/pkg/render"
)

// analyzeResponse is the JSON body returned by POST /v1/analyze.
type analyzeResponse struct {
	ID         string               `json:"id"`
	Hypothesis string               `json:"hypothesis"`
	Words      []lattice.ScoredWord `json:"words"`
	Total      float64              `json:"total"`

	// Paths is a decimal string because the count may exceed int64.
	Paths string `json:"paths,omitempty"`

	Density  *float64 `json:"density,omitempty"`
	NumNodes int      `json:"num_nodes"`
	NumEdges int      `json:"num_edges"`
	Cached   bool     `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readBody(w, r)
	if !ok {
		return
	}

	lmScale := s.cfg.LMScale
	if raw := r.URL.Query().Get("lm_scale"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid lm_scale: %q", raw))
			return
		}
		lmScale = parsed
	}

	opts := pipeline.Options{
		Text:         string(text),
		LMScale:      lmScale,
		SilenceToken: s.cfg.SilenceToken,
		Logger:       s.logger,
	}

	lat, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	analysis, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), lat, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		ID:         analysis.UtteranceID,
		Hypothesis: analysis.Best.Text(),
		Words:      analysis.Best.Words,
		Total:      analysis.Best.Total,
		Paths:      analysis.PathCount,
		Density:    analysis.Density,
		NumNodes:   analysis.NumNodes,
		NumEdges:   analysis.NumEdges,
		Cached:     hit,
	})
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	text, ok := s.readBody(w, r)
	if !ok {
		return
	}

	lat, err := s.runner.Load(r.Context(), pipeline.Options{Text: string(text), Logger: s.logger})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, render.ToDOT(lat))
}

// readBody reads the request body up to the size limit. On failure it
// writes the error response and returns ok=false.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	text, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body"))
		return nil, false
	}
	if len(text) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "empty request body"))
		return nil, false
	}
	return text, true
}

// writeError maps pipeline errors to HTTP statuses: malformed input is
// the client's fault (400), a cyclic lattice is well-formed but
// unprocessable (422), anything else is a server error (500).
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)

	switch {
	case stderrors.Is(err, lattice.ErrCycle) || code == errors.ErrCodeCycle:
		status = http.StatusUnprocessableEntity
		code = errors.ErrCodeCycle
	case code == errors.ErrCodeParse || code == errors.ErrCodeInvalidInput || code == errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	s.logger.Warn("request failed",
		"status", status,
		"code", code,
		"error", err,
		"request_id", RequestID(r.Context()))

	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
