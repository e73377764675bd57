// Package hello serves the greeting endpoint.
package hello

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type handler struct {
	greeting string
}

// Register wires GET /hello into api. Mount api under the base path with
// huma.NewGroup to get the external route.
func Register(api huma.API, greeting string) {
	h := &handler{greeting: greeting}
	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/hello",
		Summary:     "Get a greeting",
		Tags:        []string{"greeting"},
	}, h.get)
}

func (h *handler) get(_ context.Context, _ *struct{}) (*GetOutput, error) {
	return &GetOutput{Body: Data{Message: h.greeting}}, nil
}
