// Package pipeline defines the outgoing-call interception chain the parse
// mode router plugs into. A call is (method, payload, attachments); ordered
// middleware may rewrite the payload before the terminal handler performs
// the transport call.
package pipeline

import (
	"context"
	"encoding/json"
	"io"

	"github.com/xooniverse/parsemodesetter/pkg/parsemode"
)

// Request is one outgoing Bot API call travelling through the chain.
type Request struct {
	Method  parsemode.Method
	Payload parsemode.Payload

	// Files holds binary attachments keyed by form field name. They are a
	// side channel for the transport layer only; middleware must pass them
	// through untouched.
	Files map[string]io.Reader
}

// Response is the Bot API envelope returned by the terminal handler.
type Response struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	Description string          `json:"description,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
}

// Handler executes one outgoing call, either the terminal transport call or
// the remainder of the middleware chain.
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Middleware wraps a Handler. Implementations must invoke next exactly once
// and return its result unmodified.
type Middleware func(next Handler) Handler

// Chain applies middleware to terminal in registration order: the first
// middleware given sees the request first.
func Chain(terminal Handler, middleware ...Middleware) Handler {
	h := terminal
	for i := len(middleware) - 1; i >= 0; i-- {
		h = middleware[i](h)
	}
	return h
}

// RouterMiddleware lifts a parse-mode router into the chain. The router
// itself never fails, so the middleware only ever forwards.
func RouterMiddleware(r *parsemode.Router) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *Request) (*Response, error) {
			req.Payload = r.Route(req.Method, req.Payload)
			return next(ctx, req)
		}
	}
}
