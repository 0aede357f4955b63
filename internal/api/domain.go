package api

import (
	"github.com/fieldsafe/ramspack/internal/exports"
	"github.com/fieldsafe/ramspack/internal/library"
	"github.com/fieldsafe/ramspack/internal/links"
	"github.com/fieldsafe/ramspack/internal/render"
	"github.com/fieldsafe/ramspack/internal/store"
	"github.com/fieldsafe/ramspack/internal/wizard"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Library library.System
	Wizard  wizard.System
	Exports exports.System
	Links   links.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	libraryStore := store.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	librarySystem := library.New(
		libraryStore,
		runtime.Logger,
		runtime.Pagination,
	)

	runtime.Lifecycle.OnStartup(func() {
		librarySystem.Load(runtime.Lifecycle.Context())
	})

	wizardSystem := wizard.New(
		librarySystem,
		runtime.Logger,
	)

	renderer := render.New(runtime.Logger)

	exportsSystem := exports.New(
		librarySystem,
		renderer,
		runtime.Storage,
		runtime.Logger,
		runtime.MaxListSize,
	)

	linksSystem := links.New(
		exportsSystem,
		runtime.Storage,
		runtime.Logger,
	)

	return &Domain{
		Library: librarySystem,
		Wizard:  wizardSystem,
		Exports: exportsSystem,
		Links:   linksSystem,
	}
}
