package api

import (
	"fmt"

	"github.com/holywrit/ideas/internal/config"
	"github.com/holywrit/ideas/internal/remarks"
	"github.com/holywrit/ideas/internal/roster"
	"github.com/holywrit/ideas/internal/submissions"
	"github.com/holywrit/ideas/pkg/openapi"
)

type specSource func() (map[string]*openapi.PathItem, map[string]*openapi.Schema)

// NewSpec assembles the OpenAPI document for every domain served by the module.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.SetContact(cfg.API.OpenAPI.Contact())
	spec.AddServer(cfg.API.BasePath)

	for _, source := range []specSource{roster.Spec, remarks.Spec, submissions.Spec} {
		paths, schemas := source()
		spec.AddPaths(paths)
		spec.Components.AddSchemas(schemas)
	}

	return spec
}

func specBytes(cfg *config.Config) ([]byte, error) {
	data, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
