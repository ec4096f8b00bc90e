package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pyscan/pkg/errors"
	pyio "pyscan/pkg/io"
	"pyscan/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "root": s.cfg.Root})
}

// handleFrequencies returns the frequency table as JSON.
//
// Query parameters:
//   - own: process own modules (default from config)
//   - top: limit to the N most frequent packages
func (s *Server) handleFrequencies(w http.ResponseWriter, r *http.Request) {
	s.serveMemoized(w, r, "application/json", func() ([]byte, error) {
		result, err := s.analyze(r)
		if err != nil {
			return nil, err
		}
		freqs := result.Frequencies
		if top := queryInt(r, "top", 0); top > 0 && top < len(freqs) {
			freqs = freqs[:top]
		}
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(freqs); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// handleTable returns the full import record table as JSON.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	s.serveMemoized(w, r, "application/json", func() ([]byte, error) {
		result, err := s.analyze(r)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := pyio.WriteJSON(result.Table, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
}

// handlePlot renders a plot as SVG.
//
// Query parameters: colormap, width, height, seed, max_words, top,
// zero_at, counts.
func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if !pipeline.ValidPlots[kind] {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "unknown plot kind %q", kind))
		return
	}

	s.serveMemoized(w, r, "image/svg+xml", func() ([]byte, error) {
		result, err := s.run(r, pipeline.Options{
			Plot:       kind,
			Formats:    []string{pipeline.FormatSVG},
			Colormap:   r.URL.Query().Get("colormap"),
			Width:      queryFloat(r, "width", 0),
			Height:     queryFloat(r, "height", 0),
			Seed:       uint64(queryInt(r, "seed", 0)),
			MaxWords:   queryInt(r, "max_words", 0),
			Top:        queryInt(r, "top", 0),
			ZeroAt:     r.URL.Query().Get("zero_at"),
			ShowCounts: queryBool(r, "counts", false),
		})
		if err != nil {
			return nil, err
		}
		return result.Artifacts[pipeline.FormatSVG], nil
	})
}

// run fills the config-bound fields of opts and executes the pipeline.
func (s *Server) run(r *http.Request, opts pipeline.Options) (*pipeline.Result, error) {
	s.fillConfig(r, &opts)

	s.scanMu.Lock()
	defer s.scanMu.Unlock()
	return s.runner.Execute(r.Context(), opts)
}

// analyze runs only the scan and frequency stages. The JSON endpoints
// use this so a tree without imports still serves an empty table
// instead of tripping over plot validation.
func (s *Server) analyze(r *http.Request) (*pipeline.Result, error) {
	var opts pipeline.Options
	s.fillConfig(r, &opts)

	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	result := &pipeline.Result{}
	if _, err := s.runner.Analyze(r.Context(), opts, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Server) fillConfig(r *http.Request, opts *pipeline.Options) {
	opts.Root = s.cfg.Root
	opts.Exclude = s.cfg.Exclude
	opts.ProcessOwnModules = queryBool(r, "own", s.cfg.ProcessOwnModules)
}

// serveMemoized answers from the memo when possible and stores the
// produced body otherwise.
func (s *Server) serveMemoized(w http.ResponseWriter, r *http.Request, contentType string, produce func() ([]byte, error)) {
	key := s.memoKey(r)
	if entry, ok := s.memo.Get(key); ok {
		w.Header().Set("Content-Type", entry.contentType)
		w.Write(entry.body)
		return
	}

	body, err := produce()
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.memo.Add(key, memoEntry{contentType: contentType, body: body})
	w.Header().Set("Content-Type", contentType)
	w.Write(body)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidPath, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidColormap, errors.ErrCodeInvalidOption:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	s.logger.Errorf("Request failed: %v", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(code),
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func queryFloat(r *http.Request, name string, fallback float64) float64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func queryBool(r *http.Request, name string, fallback bool) bool {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
