// Package module mounts self-contained HTTP handlers under a single path
// segment. Each module owns its middleware stack and sees request paths
// with its prefix removed.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/holywrit/ideas/pkg/middleware"
)

type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
	handler    http.Handler
}

// New creates a Module for a single-segment prefix such as "/api". It panics
// on anything else, since prefixes are fixed at wiring time.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
		handler:    router,
	}
}

// Handler returns the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.handler
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Serve dispatches req to the inner router with the prefix stripped.
// "/api" and "/api/" both arrive as "/".
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.handler.ServeHTTP(w, m.strip(req))
}

// Use appends middleware and rewraps the router. Call it before serving.
func (m *Module) Use(mws ...func(http.Handler) http.Handler) {
	m.middleware.Use(mws...)
	m.handler = m.middleware.Apply(m.router)
}

func (m *Module) strip(req *http.Request) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	u := *req.URL
	u.Path = path
	u.RawPath = ""

	out := req.WithContext(req.Context())
	out.URL = &url.URL{}
	*out.URL = u
	return out
}

func validatePrefix(prefix string) error {
	rest, ok := strings.CutPrefix(prefix, "/")
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case !ok:
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case rest == "" || strings.Contains(rest, "/"):
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}
