package main

import (
	"net/http"

	"github.com/holywrit/ideas/internal/api"
	"github.com/holywrit/ideas/internal/config"
	"github.com/holywrit/ideas/internal/infrastructure"
	"github.com/holywrit/ideas/pkg/handlers"
	"github.com/holywrit/ideas/pkg/module"
)

const welcomeMessage = "Welcome to Holy Writ High School and Junior College"

type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API: apiModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{
			"message": welcomeMessage,
			"version": version,
		})
	})

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		components := infra.Lifecycle.Components()
		if !infra.Lifecycle.Ready() {
			handlers.RespondJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status":     "not ready",
				"components": components,
			})
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]any{
			"status":     "ready",
			"components": components,
		})
	})

	return router
}
