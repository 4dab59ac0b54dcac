package http

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

var loadSpec = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading OpenAPI document: %w", err)
	}
	return swagger, nil
})

// GetSwagger returns the parsed OpenAPI document describing this API.
func GetSwagger() (*openapi3.T, error) {
	return loadSpec()
}
