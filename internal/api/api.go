// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/fieldsafe/ramspack/internal/auth"
	"github.com/fieldsafe/ramspack/internal/config"
	"github.com/fieldsafe/ramspack/internal/infrastructure"
	"github.com/fieldsafe/ramspack/pkg/middleware"
	"github.com/fieldsafe/ramspack/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Login and public share links are reachable without a bearer token; every
// other route requires one when auth is enabled.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(auth.Require(
		runtime.Auth,
		auth.Exempt{Method: "POST", Prefix: "/auth/login"},
		auth.Exempt{Method: "GET", Prefix: "/links/"},
	))

	return m, nil
}
