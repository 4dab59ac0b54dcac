package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/quotient/pkg/automata"
	"github.com/aretw0/quotient/pkg/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

// classify maps an error to its HTTP status and response body.
func classify(err error) (int, ErrorResponse) {
	resp := ErrorResponse{Error: err.Error()}

	var unknownState *automata.UnknownStateError
	var unknownSymbol *automata.UnknownSymbolError
	var tooBig *http.MaxBytesError
	var param *paramError
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &unknownState):
		resp.Kind, resp.Value = "unknown_state", unknownState.State
		return http.StatusBadRequest, resp
	case errors.As(err, &unknownSymbol):
		resp.Kind, resp.Value = "unknown_symbol", unknownSymbol.Symbol
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrTooLarge), errors.As(err, &tooBig):
		resp.Kind = "too_large"
		return http.StatusRequestEntityTooLarge, resp
	case errors.Is(err, automata.ErrTooComplex):
		resp.Kind = "too_complex"
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, automata.ErrNameCollision):
		resp.Kind = "name_collision"
		return http.StatusUnprocessableEntity, resp
	case errors.Is(err, domain.ErrConversionNotFound):
		resp.Kind = "not_found"
		return http.StatusNotFound, resp
	case errors.As(err, &param), errors.As(err, &syntax), errors.As(err, &typeErr), errors.Is(err, errBadBody):
		resp.Kind = "bad_request"
		return http.StatusBadRequest, resp
	}

	resp.Kind, resp.Error = "internal", "internal error"
	return http.StatusInternalServerError, resp
}

// errBadBody marks a request body that is not a single JSON document.
var errBadBody = errors.New("invalid request body")

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := classify(err)
	level := slog.LevelWarn
	if status == http.StatusInternalServerError {
		level = slog.LevelError
	}
	s.logger.Log(r.Context(), level, "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"error", err,
	)
	writeJSON(w, status, resp)
}
