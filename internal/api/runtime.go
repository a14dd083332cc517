package api

import (
	"github.com/holywrit/ideas/internal/config"
	"github.com/holywrit/ideas/internal/infrastructure"
)

// Runtime is the infrastructure as seen from the API module, plus the
// request limits its handlers enforce.
type Runtime struct {
	*infrastructure.Infrastructure
	BasePath      string
	MaxUploadSize int64
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: infra.Scoped("api"),
		BasePath:       cfg.API.BasePath,
		MaxUploadSize:  cfg.API.MaxUploadSizeBytes(),
	}
}
