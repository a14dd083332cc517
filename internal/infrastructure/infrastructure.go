// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, validation, AI and mail clients,
// roster storage) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/holywrit/ideas/internal/config"
	"github.com/holywrit/ideas/internal/roster"
	"github.com/holywrit/ideas/pkg/gemini"
	"github.com/holywrit/ideas/pkg/lifecycle"
	"github.com/holywrit/ideas/pkg/mail"
	"github.com/holywrit/ideas/pkg/validation"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Validator *validation.Validator
	Gemini    gemini.System
	Mail      mail.Sender
	Roster    *roster.Store
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// Missing Gemini or mail credentials do not fail initialization.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))

	store := roster.NewStore()
	if err := roster.Seed(store); err != nil {
		return nil, fmt.Errorf("roster seed failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Validator: validation.New(),
		Gemini:    gemini.New(&cfg.Gemini, logger),
		Mail:      mail.New(&cfg.Mail, logger),
		Roster:    store,
	}, nil
}

// Start registers infrastructure systems with the lifecycle coordinator.
// The Gemini client opens during startup and closes on shutdown; mail and
// Gemini configuration state is reported as readiness components.
func (i *Infrastructure) Start() error {
	if err := i.Gemini.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("gemini start failed: %w", err)
	}

	sender := i.Mail
	i.Lifecycle.Register("mail", lifecycle.CheckFunc(func() bool {
		return mail.Configured(sender)
	}))
	i.Lifecycle.Register("gemini", lifecycle.CheckFunc(i.Gemini.Configured))

	return nil
}

// Scoped returns a shallow copy whose logger carries a "module" attribute.
// The copy shares every system with i, including the lifecycle.
func (i *Infrastructure) Scoped(module string) *Infrastructure {
	scoped := *i
	scoped.Logger = i.Logger.With("module", module)
	return &scoped
}
