// Package plugin adapts the parse-mode router to host frameworks with an
// install/uninstall plugin lifecycle. The adapter is deliberately thin: the
// router itself carries no plugin metadata and no host coupling.
package plugin

import (
	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
	"github.com/xooniverse/parsemodesetter/pkg/pipeline"
)

// Version is the plugin version reported to hosts.
const Version = "1.1.0"

// Registrar is the host-side registration surface. Middleware is keyed by
// name so uninstall does not need to compare function values.
type Registrar interface {
	Use(name string, mw pipeline.Middleware)
	Remove(name string)
}

// Plugin wraps a router with the bookkeeping hosts expect.
type Plugin struct {
	router *parsemode.Router
}

// New creates the plugin wrapper around an already-configured router.
func New(router *parsemode.Router) *Plugin {
	return &Plugin{router: router}
}

func (p *Plugin) Name() string    { return "parse_mode_setter" }
func (p *Plugin) Version() string { return Version }

func (p *Plugin) Description() string {
	return "Stamps a default parse mode into outgoing Bot API payloads"
}

// Router returns the wrapped router.
func (p *Plugin) Router() *parsemode.Router {
	return p.router
}

// Install registers the router middleware with the host.
func (p *Plugin) Install(host Registrar) {
	host.Use(p.Name(), pipeline.RouterMiddleware(p.router))
}

// Uninstall removes the router middleware from the host.
func (p *Plugin) Uninstall(host Registrar) {
	host.Remove(p.Name())
}
