// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "hranalytics/internal/platform/net/http"
)

// Module is what the API composes
// kept apart from modkit so a module can export its own ports type without import cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// MountAll registers each module's ports under its name and mounts its routes on r
// modules mount in order, so a module may look up ports of the ones before it
func MountAll(r phttp.Router, mods ...Module) {
	for _, m := range mods {
		if m == nil {
			continue
		}
		Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}
