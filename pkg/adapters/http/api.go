package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// MinimizeParams are the query parameters shared by the conversion endpoints.
type MinimizeParams struct {
	// Complete makes the dead state explicit.
	Complete *bool `form:"complete,omitempty" json:"complete,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	ValidateNfa(w http.ResponseWriter, r *http.Request)
	DeterminizeNfa(w http.ResponseWriter, r *http.Request, params MinimizeParams)
	MinimizeNfa(w http.ResponseWriter, r *http.Request, params MinimizeParams)
	MinimizeDfa(w http.ResponseWriter, r *http.Request, params MinimizeParams)
	MinimizeBatch(w http.ResponseWriter, r *http.Request)
	GetConversion(w http.ResponseWriter, r *http.Request, id string)
	GetConversionGraph(w http.ResponseWriter, r *http.Request, id string)
	GetHealth(w http.ResponseWriter, r *http.Request)
	GetInfo(w http.ResponseWriter, r *http.Request)
}

// paramError reports a request parameter that failed to bind.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.name, e.err)
}

func (e *paramError) Unwrap() error {
	return e.err
}

// handlerFromMux mounts every operation of si on r, binding parameters first.
func handlerFromMux(si ServerInterface, r chi.Router, onError func(http.ResponseWriter, *http.Request, error)) http.Handler {
	withParams := func(op func(http.ResponseWriter, *http.Request, MinimizeParams)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var params MinimizeParams
			if err := runtime.BindQueryParameter("form", true, false, "complete", r.URL.Query(), &params.Complete); err != nil {
				onError(w, r, &paramError{name: "complete", err: err})
				return
			}
			op(w, r, params)
		}
	}
	withID := func(op func(http.ResponseWriter, *http.Request, string)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var id string
			err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
				ParamLocation: runtime.ParamLocationPath,
				Explode:       false,
				Required:      true,
			})
			if err != nil {
				onError(w, r, &paramError{name: "id", err: err})
				return
			}
			op(w, r, id)
		}
	}

	r.Post("/validate", si.ValidateNfa)
	r.Post("/determinize", withParams(si.DeterminizeNfa))
	r.Post("/minimize", withParams(si.MinimizeNfa))
	r.Post("/minimize/dfa", withParams(si.MinimizeDfa))
	r.Post("/minimize/batch", si.MinimizeBatch)
	r.Get("/conversions/{id}", withID(si.GetConversion))
	r.Get("/conversions/{id}/graph", withID(si.GetConversionGraph))
	r.Get("/health", si.GetHealth)
	r.Get("/info", si.GetInfo)
	return r
}
