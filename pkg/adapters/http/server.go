package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/quotient"
	"github.com/aretw0/quotient/internal/presentation/graph"
	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
	"github.com/aretw0/quotient/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBodyBytes bounds request bodies unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes = 1 << 20

// ConversionIDHeader carries the ID of the conversion recorded by POST /minimize.
const ConversionIDHeader = "X-Conversion-Id"

// Server implements ServerInterface on top of a Converter.
type Server struct {
	Engine ports.Converter

	logger       *slog.Logger
	corsOrigin   string
	maxBodyBytes int64
	staticDir    string
	gatherer     prometheus.Gatherer
}

// Ensure Server implements ServerInterface
var _ ServerInterface = (*Server)(nil)

// Option configures the handler.
type Option func(*Server)

// WithLogger sets the logger for request and error logs.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCORSOrigin sets the Access-Control-Allow-Origin value. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithMaxBodyBytes bounds the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithStaticDir serves files from dir for paths no API route matches.
func WithStaticDir(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithMetrics exposes g on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.Converter, opts ...Option) http.Handler {
	server := &Server{
		Engine:       engine,
		logger:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		corsOrigin:   "*",
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(server.logRequests)
	r.Use(server.enableCORS)
	r.Use(server.limitBody)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	if server.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))
	}
	if server.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(server.staticDir)))
	}

	return handlerFromMux(server, r, server.writeError)
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Access-Control-Expose-Headers", ConversionIDHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && s.maxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.InfoContext(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// ValidationResult is the body of a successful POST /validate.
type ValidationResult struct {
	Valid       bool `json:"valid"`
	States      int  `json:"states"`
	Symbols     int  `json:"symbols"`
	FinalStates int  `json:"final_states"`
}

// BatchItem is one entry of the POST /minimize/batch response.
type BatchItem struct {
	ID      string          `json:"id"`
	Minimal automata.RawDfa `json:"minimal"`
	Stats   domain.Stats    `json:"stats"`
}

// ValidateNfa handles the POST /validate request.
func (s *Server) ValidateNfa(w http.ResponseWriter, r *http.Request) {
	var raw automata.RawNfa
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	nfa, err := s.Engine.Validate(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ValidationResult{
		Valid:       true,
		States:      len(nfa.States()),
		Symbols:     len(nfa.Alphabet()),
		FinalStates: len(nfa.FinalStates()),
	})
}

// DeterminizeNfa handles the POST /determinize request.
func (s *Server) DeterminizeNfa(w http.ResponseWriter, r *http.Request, params MinimizeParams) {
	var raw automata.RawNfa
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	dfa, err := s.Engine.Determinize(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDfa(w, r, dfa, params)
}

// MinimizeNfa handles the POST /minimize request. The conversion is recorded and
// its ID returned in the X-Conversion-Id header.
func (s *Server) MinimizeNfa(w http.ResponseWriter, r *http.Request, params MinimizeParams) {
	var raw automata.RawNfa
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	conv, err := s.Engine.Convert(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := conv.Minimal
	if isSet(params.Complete) {
		if out, err = completeRaw(out); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	w.Header().Set(ConversionIDHeader, conv.ID)
	writeJSON(w, http.StatusOK, out)
}

// MinimizeDfa handles the POST /minimize/dfa request.
func (s *Server) MinimizeDfa(w http.ResponseWriter, r *http.Request, params MinimizeParams) {
	var raw automata.RawDfa
	if err := decodeBody(r, &raw); err != nil {
		s.writeError(w, r, err)
		return
	}

	dfa, err := s.Engine.MinimizeDfa(r.Context(), raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeDfa(w, r, dfa, params)
}

// MinimizeBatch handles the POST /minimize/batch request.
func (s *Server) MinimizeBatch(w http.ResponseWriter, r *http.Request) {
	var raws []automata.RawNfa
	if err := decodeBody(r, &raws); err != nil {
		s.writeError(w, r, err)
		return
	}

	convs, err := s.Engine.ConvertBatch(r.Context(), raws)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]BatchItem, len(convs))
	for i, c := range convs {
		items[i] = BatchItem{ID: c.ID, Minimal: c.Minimal, Stats: c.Stats}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetConversion handles the GET /conversions/{id} request.
func (s *Server) GetConversion(w http.ResponseWriter, r *http.Request, id string) {
	conv, err := s.Engine.Lookup(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// GetConversionGraph handles the GET /conversions/{id}/graph request.
func (s *Server) GetConversionGraph(w http.ResponseWriter, r *http.Request, id string) {
	conv, err := s.Engine.Lookup(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(conv.Minimal, nil))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "quotient-http",
		"version":     strings.TrimSpace(quotient.Version),
		"api_version": apiVersion,
	})
}

func (s *Server) writeDfa(w http.ResponseWriter, r *http.Request, dfa *automata.Dfa, params MinimizeParams) {
	if isSet(params.Complete) {
		dfa = automata.Complete(dfa)
	}
	raw, err := dfa.Raw()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// completeRaw adds the explicit dead state to a stored minimal DFA.
func completeRaw(raw automata.RawDfa) (automata.RawDfa, error) {
	dfa, err := automata.ValidateDfa(raw)
	if err != nil {
		return automata.RawDfa{}, err
	}
	return automata.Complete(dfa).Raw()
}

// decodeBody reads exactly one JSON document from the request body.
// Unknown fields are rejected.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON document", errBadBody)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// -- Helpers --

func isSet(b *bool) bool {
	return b != nil && *b
}
