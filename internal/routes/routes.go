// Package routes assembles the HTTP surface: middleware, the huma API and
// both endpoints under the configured base path.
package routes

import (
	"net/http"
	"path"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/greeter/internal/config"
	"github.com/janisto/greeter/internal/http/health"
	"github.com/janisto/greeter/internal/http/hello"
	"github.com/janisto/greeter/internal/platform/logging"
	appmiddleware "github.com/janisto/greeter/internal/platform/middleware"
	"github.com/janisto/greeter/internal/platform/respond"
)

const (
	apiTitle       = "Greeter API"
	maxRequestBody = 1 << 20 // 1 MB
)

// New builds the root handler for cfg. version is reported in the OpenAPI document.
func New(cfg *config.Config, version string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	docsPath := join(cfg.BasePath, "/docs")
	var securitySkip []string
	if cfg.DocsEnabled {
		securitySkip = append(securitySkip, docsPath)
	}
	router.Use(
		appmiddleware.Security(securitySkip...),
		appmiddleware.Vary("Accept"),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; the service runs behind an ingress.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxRequestBody),
		logging.RequestLogger(cfg.ProjectID),
		logging.AccessLogger(),
		respond.Recoverer(),
		chimiddleware.GetHead,
	)

	api := humachi.New(router, apiConfig(cfg, version, docsPath))
	addCBORContent(api)

	hello.Register(mount(api, cfg.BasePath), cfg.Greeting)
	router.Get(join(cfg.BasePath, "/health"), health.Handler)

	return router
}

// apiConfig disables the OpenAPI, docs and schema routes unless docs are
// enabled. Without schema routes the link transformer would advertise
// $schema URLs that 404, so its create hook is dropped as well.
func apiConfig(cfg *config.Config, version, docsPath string) huma.Config {
	hcfg := huma.DefaultConfig(apiTitle, version)
	if !cfg.DocsEnabled {
		hcfg.OpenAPIPath = ""
		hcfg.DocsPath = ""
		hcfg.SchemasPath = ""
		hcfg.CreateHooks = nil
		return hcfg
	}
	hcfg.OpenAPIPath = join(cfg.BasePath, "/openapi")
	hcfg.DocsPath = docsPath
	hcfg.SchemasPath = join(cfg.BasePath, "/schemas")
	return hcfg
}

// addCBORContent mirrors every JSON media type in the OpenAPI document as CBOR.
func addCBORContent(api huma.API) {
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if c, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = c
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if c, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = c
				}
			}
		},
	)
}

// mount returns api scoped to base. A root base path needs no group.
func mount(api huma.API, base string) huma.API {
	if base == "/" {
		return api
	}
	return huma.NewGroup(api, base)
}

func join(base, p string) string {
	return path.Join(base, p)
}
