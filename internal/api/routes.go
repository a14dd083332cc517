package api

import (
	"net/http"

	"github.com/holywrit/ideas/pkg/routes"
)

func domainRoutes(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		domain.Roster.Handler().Routes(),
		domain.Remarks.Handler().Routes(),
		domain.Submissions.Handler(runtime.MaxUploadSize).Routes(),
	}
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) {
	routes.Register(mux, domainRoutes(domain, runtime)...)
}

// Routes returns every API route with its full pattern, relative to the
// module prefix.
func Routes(domain *Domain, runtime *Runtime) []routes.Route {
	return routes.Flatten(domainRoutes(domain, runtime)...)
}
