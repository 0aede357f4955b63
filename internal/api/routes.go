package api

import (
	"net/http"

	"github.com/fieldsafe/ramspack/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain, runtime *Runtime) {
	routes.Register(
		mux,
		domain.Library.Handler().Routes(),
		domain.Wizard.Handler().Routes(),
		domain.Exports.Handler().Routes(),
		domain.Links.Handler().Routes(),
		runtime.Auth.Handler().Routes(),
	)
}
