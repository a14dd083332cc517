// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/holywrit/ideas/internal/config"
	"github.com/holywrit/ideas/internal/infrastructure"
	"github.com/holywrit/ideas/pkg/middleware"
	"github.com/holywrit/ideas/pkg/module"
	"github.com/holywrit/ideas/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	spec, err := specBytes(cfg)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	m := module.New(runtime.BasePath, mux)
	m.Use(
		middleware.CORS(&cfg.API.CORS),
		middleware.Logger(runtime.Logger),
		middleware.Recover(runtime.Logger),
	)

	return m, nil
}
